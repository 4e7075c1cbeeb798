package service

import (
	"context"
	"log"
	"sync/atomic"
	"time"
)

// Scheduler drives the periodic evaluation. Ticks are allowed to overlap up
// to maxConcurrent runs; a tick delivered later than the grace window past
// its scheduled instant is skipped rather than run stale.
type Scheduler struct {
	engine        ReplenishmentServiceInterface
	interval      time.Duration
	grace         time.Duration
	maxConcurrent int32

	running atomic.Int32
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewScheduler creates a scheduler; call Start to begin ticking.
func NewScheduler(engine ReplenishmentServiceInterface, interval, grace time.Duration, maxConcurrent int) *Scheduler {
	return &Scheduler{
		engine:        engine,
		interval:      interval,
		grace:         grace,
		maxConcurrent: int32(maxConcurrent),
	}
}

// Start launches the tick loop in the background.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(ctx)
	log.Printf("Scheduler started — evaluating every %s (grace %s, max %d concurrent runs)",
		s.interval, s.grace, s.maxConcurrent)
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	next := time.Now().Add(s.interval)
	for {
		select {
		case <-ctx.Done():
			return
		case tick := <-ticker.C:
			scheduled := next
			next = next.Add(s.interval)

			if s.tooLate(scheduled, tick) {
				log.Printf("⏭ tick %s late (grace %s), skipping",
					tick.Sub(scheduled).Round(time.Millisecond), s.grace)
				// Resynchronize against the observed fire time.
				next = tick.Add(s.interval)
				continue
			}

			if s.running.Load() >= s.maxConcurrent {
				log.Printf("⏭ %d evaluations already running, skipping tick", s.running.Load())
				continue
			}

			s.running.Add(1)
			go func() {
				defer s.running.Add(-1)
				if _, err := s.engine.EvaluateAll(ctx); err != nil {
					log.Printf("❌ scheduled evaluation failed: %v", err)
				}
			}()
		}
	}
}

// tooLate reports whether a tick fired beyond the grace window past its
// scheduled instant. Such ticks are skipped rather than run stale.
func (s *Scheduler) tooLate(scheduled, fired time.Time) bool {
	return fired.Sub(scheduled) > s.grace
}

// Running reports how many evaluations are currently in flight.
func (s *Scheduler) Running() int {
	return int(s.running.Load())
}

// Stop cancels the loop and any in-flight evaluations and waits for the
// loop to exit. Abandoning a sweep mid-scan is safe: every item update is
// self-contained and idempotent.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	log.Printf("Scheduler stopped")
}
