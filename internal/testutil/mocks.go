package testutil

import (
	"context"
	"io"
	"sync"
	"time"

	"bbcd/internal/models"
	"bbcd/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockRoundService implements services.RoundServiceInterface.
type MockRoundService struct {
	mu           sync.Mutex
	AppendCalls  []*models.Round
	AppendErr    error
	LatestRound  *models.Round
	LastNRounds  []*models.Round
	LastNErr     error
	CountValue   int64
	PartitionKey string
	PathByKey    func(key string) string
}

func (m *MockRoundService) Append(r *models.Round) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.AppendCalls = append(m.AppendCalls, r)
	m.LatestRound = r
	m.CountValue++
	return nil
}

func (m *MockRoundService) Latest() (*models.Round, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LatestRound == nil {
		return nil, false
	}
	return m.LatestRound, true
}

func (m *MockRoundService) LastN(_ int) ([]*models.Round, error) {
	return m.LastNRounds, m.LastNErr
}

func (m *MockRoundService) Count() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CountValue
}

func (m *MockRoundService) CurrentPartitionKey() string {
	if m.PartitionKey == "" {
		return time.Now().Format(models.PartitionKeyLayout)
	}
	return m.PartitionKey
}

func (m *MockRoundService) PartitionPath(key string) string {
	if m.PathByKey != nil {
		return m.PathByKey(key)
	}
	return "/tmp/rounds_" + key + ".csv"
}

// MockMirror implements interfaces.MirrorInterface.
type MockMirror struct {
	mu          sync.Mutex
	ExistingID  string
	ExistsErr   error
	CreateErr   error
	UpdateErr   error
	PushErr     error
	PushedPaths []string
	CreateNames []string
	UpdateIDs   []string
}

func (m *MockMirror) Exists(_ context.Context, _ string) (string, bool, error) {
	if m.ExistsErr != nil {
		return "", false, m.ExistsErr
	}
	return m.ExistingID, m.ExistingID != "", nil
}

func (m *MockMirror) Create(_ context.Context, name string, _ io.Reader) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.CreateNames = append(m.CreateNames, name)
	return nil
}

func (m *MockMirror) Update(_ context.Context, id string, _ io.Reader) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.UpdateIDs = append(m.UpdateIDs, id)
	return nil
}

func (m *MockMirror) Push(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PushErr != nil {
		return m.PushErr
	}
	m.PushedPaths = append(m.PushedPaths, path)
	return nil
}

func (m *MockMirror) Pushed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.PushedPaths...)
}

// MockScheduler implements interfaces.SchedulerInterface.
type MockScheduler struct {
	mu        sync.Mutex
	InitCalls int
	StopCalls int
	PushKeys  []string
	PushErr   error
}

func (m *MockScheduler) Init() { m.InitCalls++ }
func (m *MockScheduler) Stop() { m.StopCalls++ }

func (m *MockScheduler) PushPartition(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PushErr != nil {
		return m.PushErr
	}
	m.PushKeys = append(m.PushKeys, key)
	return nil
}

func (m *MockScheduler) Pushed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.PushKeys...)
}

// MockCompressor implements interfaces.CompressorInterface with optional overrides.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	return val, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	return val, nil
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu              sync.Mutex
	RoundsCollected int
	PollErrors      int
	MirrorSuccess   int
	MirrorFailure   int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}
func (m *MockMetrics) ObserveAppendDuration(_ time.Duration)            {}

func (m *MockMetrics) IncRoundsCollected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RoundsCollected++
}

func (m *MockMetrics) IncPollErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PollErrors++
}

func (m *MockMetrics) IncMirrorPushes(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if success {
		m.MirrorSuccess++
	} else {
		m.MirrorFailure++
	}
}
