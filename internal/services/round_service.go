package services

import (
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"bbcd/internal/models"
	"bbcd/internal/structures"
)

type RoundServiceInterface interface {
	Append(r *models.Round) error
	Latest() (*models.Round, bool)
	LastN(n int) ([]*models.Round, error)
	Count() int64
	CurrentPartitionKey() string
	PartitionPath(key string) string
}

// RoundService owns the round log and the derived in-memory view used by
// the health endpoint: the latest appended round and a running count for
// the current day partition. It is the single writer of the log; the
// poller and the register endpoint both append through it.
type RoundService struct {
	log      *models.RoundLog
	mu       sync.RWMutex
	countKey string
	count    atomic.Int64
	latest   *models.Round
}

func NewRoundService(conf *structures.Config) (RoundServiceInterface, error) {
	log, err := models.NewRoundLog(conf.Storage.DataDir, conf.Storage.HistoryFile)
	if err != nil {
		return nil, err
	}

	s := &RoundService{log: log}
	if err := s.restore(); err != nil {
		return nil, fmt.Errorf("restore round log state: %w", err)
	}
	return s, nil
}

// restore rebuilds the count and latest-round view from today's partition
// after a process restart. Note the poller's last-seen id is not restored
// here; that state lives only inside the poll loop, so the final
// pre-restart round can be appended a second time.
func (s *RoundService) restore() error {
	key := s.log.CurrentPartitionKey()
	rounds, err := s.log.ReadAll(key)
	if err != nil {
		return err
	}
	s.countKey = key
	s.count.Store(int64(len(rounds)))
	if len(rounds) > 0 {
		s.latest = rounds[len(rounds)-1]
	}
	return nil
}

func (s *RoundService) Append(r *models.Round) error {
	r.ComputeTotals()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.log.Append(r); err != nil {
		return err
	}

	if key := r.PartitionKey(); key != s.countKey {
		s.countKey = key
		s.count.Store(0)
	}
	s.count.Inc()
	s.latest = r
	return nil
}

// Latest returns the most recently appended round of the current day
// partition. Right after midnight, before any new round, it reports no
// data even though yesterday's partition has records.
func (s *RoundService) Latest() (*models.Round, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil || s.latest.PartitionKey() != s.log.CurrentPartitionKey() {
		return nil, false
	}
	return s.latest, true
}

func (s *RoundService) LastN(n int) ([]*models.Round, error) {
	return s.log.ReadLast(s.log.CurrentPartitionKey(), n)
}

func (s *RoundService) Count() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.countKey != s.log.CurrentPartitionKey() {
		return 0
	}
	return s.count.Load()
}

func (s *RoundService) CurrentPartitionKey() string {
	return s.log.CurrentPartitionKey()
}

func (s *RoundService) PartitionPath(key string) string {
	return s.log.PartitionPath(key)
}
