package jobs

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper drops per-client state that is no longer in use.
type Sweeper interface {
	CleanupLimiters()
	Len() int
}

// LimiterCleanupJob periodically sweeps idle rate limiter buckets
type LimiterCleanupJob struct {
	sweeper  Sweeper
	interval time.Duration
	log      zerolog.Logger
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewLimiterCleanupJob(sweeper Sweeper, interval time.Duration, log zerolog.Logger) *LimiterCleanupJob {
	return &LimiterCleanupJob{
		sweeper:  sweeper,
		interval: interval,
		log:      log,
		done:     make(chan struct{}),
	}
}

// Start spawns the ticker goroutine that sweeps idle limiters; Stop ends it.
func (j *LimiterCleanupJob) Start() {
	j.log.Info().Dur("interval", j.interval).Msg("Limiter cleanup job started")

	j.wg.Add(1)
	go func() {
		defer j.wg.Done()

		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				j.cleanup()
			case <-j.done:
				j.log.Info().Msg("Limiter cleanup job stopped")
				return
			}
		}
	}()
}

// Stop is safe to call more than once; it waits for the loop to exit.
func (j *LimiterCleanupJob) Stop() {
	j.stopOnce.Do(func() { close(j.done) })
	j.wg.Wait()
}

func (j *LimiterCleanupJob) cleanup() {
	before := j.sweeper.Len()
	j.sweeper.CleanupLimiters()
	j.log.Debug().
		Int("before", before).
		Int("after", j.sweeper.Len()).
		Msg("Limiter cleanup completed")
}
