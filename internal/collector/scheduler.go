package collector

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"bbcd/internal/collector/interfaces"
	"bbcd/internal/models"
	"bbcd/internal/providers"
	"bbcd/internal/services"
	"bbcd/internal/structures"
)

var ErrMirrorDisabled = errors.New("mirror is disabled")

type schedulerState int

const (
	stateWaiting schedulerState = iota
	stateFiring
)

// Scheduler fires the daily mirror push once per boundary crossing. It
// polls the wall clock on a coarse interval instead of arming a one-shot
// timer, so clock drift and process suspension cannot strand it; the
// cooldown after a firing guarantees the same boundary minute is not seen
// twice. A failed push is logged and dropped; the next attempt is the
// next day's boundary or a manual trigger.
//
// It also hosts the cron-driven archive sweep for old partitions.
type Scheduler struct {
	config   *structures.Config
	logger   providers.Logger
	service  services.RoundServiceInterface
	mirror   interfaces.MirrorInterface
	archiver *Archiver
	metrics  providers.MetricsProviderInterface
	cron     *cron.Cron
	state    schedulerState
	stop     chan struct{}
	done     chan struct{}
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.RoundServiceInterface, mirror interfaces.MirrorInterface, archiver *Archiver, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:   config,
		logger:   logger,
		service:  service,
		mirror:   mirror,
		archiver: archiver,
		metrics:  metrics,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *Scheduler) Init() {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.config.Storage.ArchiveCron, func() {
		if err := s.archiver.Sweep(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Archive sweep failed: %s", err)
		}
	})
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Invalid archive schedule %q: %s", s.config.Storage.ArchiveCron, err)
	} else {
		s.cron.Start()
	}

	go s.run()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
	close(s.stop)
	<-s.done
}

func (s *Scheduler) run() {
	defer close(s.done)
	s.logger.Infof(providers.TypeApp, "Mirror scheduler started, boundary %02d:%02d",
		s.config.Mirror.BoundaryHour, s.config.Mirror.BoundaryMinute)

	ticker := time.NewTicker(s.config.Mirror.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			s.logger.Infof(providers.TypeApp, "Mirror scheduler stopped")
			return
		case <-ticker.C:
			now := time.Now()
			if s.state != stateWaiting || !s.atBoundary(now) {
				continue
			}
			s.state = stateFiring
			s.fire(now)
			s.sleep(s.config.Mirror.Cooldown)
			s.state = stateWaiting
		}
	}
}

// atBoundary reports whether the wall clock sits inside the configured
// boundary minute.
func (s *Scheduler) atBoundary(now time.Time) bool {
	return now.Hour() == s.config.Mirror.BoundaryHour &&
		now.Minute() == s.config.Mirror.BoundaryMinute
}

// fire pushes the most recently completed partition: the day that ended at
// the boundary just crossed.
func (s *Scheduler) fire(now time.Time) {
	key := now.AddDate(0, 0, -1).Format(models.PartitionKeyLayout)
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Mirror.RequestTimeout)
	defer cancel()

	if err := s.PushPartition(ctx, key); err != nil {
		s.logger.Errorf(providers.TypeMirror, "Daily mirror push for %s failed: %s", key, err)
		return
	}
	s.logger.Infof(providers.TypeMirror, "Daily mirror push for %s complete", key)
}

// PushPartition mirrors one partition synchronously. Manual triggers come
// through here as well and leave the boundary state machine alone. A
// partition with no file yet is not an error, there is nothing to back
// up.
func (s *Scheduler) PushPartition(ctx context.Context, key string) error {
	if !s.config.Mirror.Enabled {
		return ErrMirrorDisabled
	}

	path := s.service.PartitionPath(key)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		s.logger.Warnf(providers.TypeMirror, "No partition file for %s, nothing to push", key)
		return nil
	}

	err := s.mirror.Push(ctx, path)
	s.metrics.IncMirrorPushes(err == nil)
	return err
}

func (s *Scheduler) sleep(d time.Duration) {
	select {
	case <-s.stop:
	case <-time.After(d):
	}
}
