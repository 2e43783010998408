package interfaces

type PollerInterface interface {
	Run()
	Stop()
}
