package collector

import (
	"context"
	"time"

	"bbcd/internal/collector/interfaces"
	"bbcd/internal/providers"
	"bbcd/internal/services"
	"bbcd/internal/structures"
)

// Poller runs the unbounded upstream poll loop. Dedup state is one field:
// the id of the last round this instance emitted. Comparing against the
// single last-seen id (and nothing else) is the intended behavior: after
// a restart the id is gone and the final already-logged round may be
// appended once more.
type Poller struct {
	config  *structures.Config
	logger  providers.Logger
	client  SourceClientInterface
	service services.RoundServiceInterface
	metrics providers.MetricsProviderInterface
	stop    chan struct{}
	done    chan struct{}
}

func NewPoller(config *structures.Config, logger providers.Logger, client SourceClientInterface, service services.RoundServiceInterface, metrics providers.MetricsProviderInterface) interfaces.PollerInterface {
	return &Poller{
		config:  config,
		logger:  logger,
		client:  client,
		service: service,
		metrics: metrics,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Run loops until Stop. No iteration failure is fatal: upstream errors,
// malformed payloads and storage errors all log, back off and retry.
func (p *Poller) Run() {
	defer close(p.done)
	p.logger.Infof(providers.TypeCollector, "Poller started, source %s", p.config.Collector.SourceURL)

	var lastID string
	for {
		select {
		case <-p.stop:
			p.logger.Infof(providers.TypeCollector, "Poller stopped")
			return
		default:
		}

		lastID = p.iterate(lastID)
	}
}

func (p *Poller) Stop() {
	close(p.stop)
	<-p.done
}

// iterate performs one poll cycle and returns the new last-seen id.
func (p *Poller) iterate(lastID string) string {
	ctx, cancel := context.WithTimeout(context.Background(), p.config.Collector.RequestTimeout)
	up, err := p.client.Latest(ctx)
	cancel()
	if err != nil {
		p.metrics.IncPollErrors()
		p.logger.Warnf(providers.TypeCollector, "Poll failed: %s", err)
		p.sleep(p.config.Collector.ErrorBackoff)
		return lastID
	}

	id := up.RoundID()
	if id == "" || id == lastID {
		p.sleep(p.config.Collector.PollInterval)
		return lastID
	}

	round := up.ToRound(time.Now())
	start := time.Now()
	if err := p.service.Append(round); err != nil {
		// Keep lastID as is so the next cycle retries this round.
		p.metrics.IncPollErrors()
		p.logger.Errorf(providers.TypeCollector, "Failed to append round %s: %s", id, err)
		p.sleep(p.config.Collector.ErrorBackoff)
		return lastID
	}
	p.metrics.ObserveAppendDuration(time.Since(start))
	p.metrics.IncRoundsCollected()

	p.logger.Infof(providers.TypeCollector, "Round %s: %s (%dx%d)",
		id, round.Outcome, round.SideATotal, round.SideBTotal)

	p.sleep(p.config.Collector.PollInterval)
	return id
}

func (p *Poller) sleep(d time.Duration) {
	select {
	case <-p.stop:
	case <-time.After(d):
	}
}
