package telemetry

import (
	"context"
	"testing"
	"time"
)

// Inline scheduler: runs work immediately in the caller's goroutine,
// which matches the single-task cooperative model.
type fakeSched struct{}

func (fakeSched) Enqueue(fn func()) bool {
	fn()
	return true
}

func TestServicePeriodicCycles(t *testing.T) {
	sched := fakeSched{}
	radio := &fakeRadio{}
	store := &fakeStorage{}

	svc := New(sched, radio, store, Config{
		VehicleID: 0x42,
		Snapshot:  testSnapshot,
		Period:    10 * time.Millisecond,
	})

	for i := 0; i < len(ggaLine); i++ {
		svc.Feed(ggaLine[i])
	}

	ctx, cancel := context.WithCancel(context.Background())
	svc.Start(ctx)
	time.Sleep(100 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)

	if len(radio.sent) < 2 {
		t.Fatalf("expected at least 2 cycles, got %d", len(radio.sent))
	}
	for i, pkt := range radio.sent {
		if len(pkt) != PacketSize {
			t.Fatalf("packet %d has %d bytes", i, len(pkt))
		}
		if pkt[4] != 0x42 {
			t.Fatalf("packet %d vid = %#x", i, pkt[4])
		}
		if pkt[10] != 12 || pkt[11] != 35 || pkt[12] != 19 {
			t.Fatalf("packet %d utc = %v", i, pkt[10:13])
		}
	}
	if len(store.recs) != len(radio.sent) {
		t.Fatalf("storage records %d != packets %d", len(store.recs), len(radio.sent))
	}
}
