package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lounge-inventory/models"
)

// recordingEngine counts evaluations and can be made to block until its
// context is cancelled, to exercise the overlap bound.
type recordingEngine struct {
	mu    sync.Mutex
	count int
	block chan struct{}
}

var _ ReplenishmentServiceInterface = (*recordingEngine)(nil)

func (e *recordingEngine) EvaluateAll(ctx context.Context) (*EvaluationSummary, error) {
	e.mu.Lock()
	e.count++
	e.mu.Unlock()

	if e.block != nil {
		select {
		case <-e.block:
		case <-ctx.Done():
		}
	}
	return &EvaluationSummary{}, nil
}

func (e *recordingEngine) CreateOrder(ctx context.Context, itemID int64, triggeredBy models.TriggerSource) (*models.RestockOrder, error) {
	return nil, nil
}

func (e *recordingEngine) FulfillOrder(ctx context.Context, orderID int64) (*models.RestockOrder, *models.InventoryItem, error) {
	return nil, nil, models.ErrOrderNotFound
}

func (e *recordingEngine) calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.count
}

func TestScheduler_TicksInvokeEngine(t *testing.T) {
	engine := &recordingEngine{}
	s := NewScheduler(engine, 10*time.Millisecond, time.Hour, 2)

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return engine.calls() >= 3 },
		2*time.Second, 5*time.Millisecond, "ticker should keep invoking the engine")
}

func TestScheduler_StopHaltsTicking(t *testing.T) {
	engine := &recordingEngine{}
	s := NewScheduler(engine, 10*time.Millisecond, time.Hour, 2)

	s.Start()
	assert.Eventually(t, func() bool { return engine.calls() >= 1 }, 2*time.Second, 5*time.Millisecond)
	s.Stop()

	after := engine.calls()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, engine.calls(), "no evaluations after Stop")
}

func TestScheduler_OverlapIsBounded(t *testing.T) {
	block := make(chan struct{})
	engine := &recordingEngine{block: block}
	s := NewScheduler(engine, 10*time.Millisecond, time.Hour, 2)

	s.Start()
	defer close(block)
	defer s.Stop()

	// Two runs may overlap; further ticks are skipped while both hang.
	assert.Eventually(t, func() bool { return engine.calls() == 2 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 2, engine.calls(), "ticks beyond the overlap bound must be skipped")
	assert.Equal(t, 2, s.Running())
}

func TestScheduler_LateTickDecision(t *testing.T) {
	s := NewScheduler(&recordingEngine{}, time.Minute, 30*time.Second, 1)

	scheduled := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.False(t, s.tooLate(scheduled, scheduled), "on-time tick runs")
	assert.False(t, s.tooLate(scheduled, scheduled.Add(29*time.Second)), "within grace runs")
	assert.False(t, s.tooLate(scheduled, scheduled.Add(30*time.Second)), "grace boundary is inclusive")
	assert.True(t, s.tooLate(scheduled, scheduled.Add(31*time.Second)), "beyond grace is skipped")
}
