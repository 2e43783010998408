package interfaces

import "context"

type SchedulerInterface interface {
	Init()
	Stop()
	// PushPartition mirrors one partition on demand, independent of the
	// daily boundary cycle.
	PushPartition(ctx context.Context, key string) error
}
