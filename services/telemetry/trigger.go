package telemetry

import (
	"context"
	"time"
)

// DefaultPeriod is the telemetry cycle period.
const DefaultPeriod = 1000 * time.Millisecond

// Trigger fires on a fixed period and does exactly one thing: enqueue
// the aggregation work item into the external scheduler. It performs no
// bus I/O and never blocks; if the scheduler refuses the item the cycle
// is simply skipped.
type Trigger struct {
	sched  Scheduler
	work   func()
	period time.Duration
}

// NewTrigger builds a trigger; period <= 0 selects DefaultPeriod.
func NewTrigger(sched Scheduler, work func(), period time.Duration) *Trigger {
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Trigger{sched: sched, work: work, period: period}
}

// Start runs the trigger loop until ctx is cancelled.
func (t *Trigger) Start(ctx context.Context) {
	go func() {
		tick := time.NewTicker(t.period)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				if !t.sched.Enqueue(t.work) {
					println("Warn: telemetry cycle dropped, scheduler full")
				}
			}
		}
	}()
}
