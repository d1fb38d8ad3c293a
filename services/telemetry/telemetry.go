// Package telemetry implements the hat's telemetry pipeline: an
// interrupt-context GGA sentence framer, a periodic trigger that hands
// aggregation work to the cooperative scheduler, and a task-context
// packet assembler that transmits over the radio link and archives the
// fix to storage.
//
// Division of labour is strict: interrupt context only touches bytes
// and enqueues work; every bus transaction and the whole assembly run
// in task context.
package telemetry

import (
	"context"
	"time"

	"hatcode-go/x/mailbox"
)

// Scheduler is the cooperative task-list collaborator. Enqueue must be
// callable from interrupt context and never block; it reports whether
// the work item was accepted.
type Scheduler interface {
	Enqueue(fn func()) bool
}

// Radio is the link-layer collaborator. The signature matches the
// tinygo sx127x driver so the hardware radio satisfies it directly.
// The packet is sent as one opaque buffer; no chunking, no ack wait.
type Radio interface {
	Tx(pkt []uint8, timeoutMs uint32) error
}

// RecordCategory tags records handed to the storage collaborator.
type RecordCategory uint8

const CategoryPosition RecordCategory = 1

// Storage is the persistent circular-log collaborator.
type Storage interface {
	Append(rec []byte, cat RecordCategory) error
}

// BaroSample is the cached barometric reading. Fixed-point only.
type BaroSample struct {
	Pressure uint32 // Pa
	Temp     int32  // centidegrees
}

// IMUSample is the cached inertial reading, copied verbatim into the
// packet. Units are whatever the inertial driver produces; this
// pipeline does not validate freshness.
type IMUSample struct {
	Accel [3]int16
	Gyro  [3]int16
}

// Snapshot carries the externally maintained sensor state into one
// assembly cycle. The assembler is a pure function of a Snapshot, the
// latest captured sentence, and its own sequence counter.
type Snapshot struct {
	Baro  BaroSample
	IMU   IMUSample
	State byte
}

// FoldVehicleID derives the single-byte vehicle identifier from the
// 8-byte hardware-unique ID. Computed once at bring-up.
func FoldVehicleID(uid [8]byte) uint8 {
	var v uint8
	for _, b := range uid {
		v ^= b
	}
	return v
}

// Config for the telemetry service.
type Config struct {
	// VehicleID is the folded hardware ID.
	VehicleID uint8
	// Snapshot supplies the cached sensor state at each cycle.
	Snapshot func() Snapshot
	// Period between cycles. Default 1000 ms.
	Period time.Duration
	// NowMs returns the boot-relative timestamp. Default timex.SinceBootMs.
	NowMs func() uint32
	// TxTimeoutMs bounds the radio transmit. Default 1000.
	TxTimeoutMs uint32
}

// Service wires capture, trigger and assembler together.
type Service struct {
	capture   *Capture
	trigger   *Trigger
	assembler *Assembler
	snapshot  func() Snapshot
}

// New builds the service. The scheduler, radio and storage
// collaborators are supplied by bring-up.
func New(sched Scheduler, radio Radio, store Storage, cfg Config) *Service {
	if cfg.Snapshot == nil {
		cfg.Snapshot = func() Snapshot { return Snapshot{} }
	}

	frames := mailbox.New(SentenceMax)
	s := &Service{
		capture:  NewCapture(frames),
		snapshot: cfg.Snapshot,
	}
	s.assembler = NewAssembler(frames, radio, store, AssemblerConfig{
		VehicleID:   cfg.VehicleID,
		NowMs:       cfg.NowMs,
		TxTimeoutMs: cfg.TxTimeoutMs,
	})
	s.trigger = NewTrigger(sched, s.runOnce, cfg.Period)
	return s
}

// Feed is the serial RX entry point. Interrupt-safe: byte handling
// only, no allocation, no blocking.
func (s *Service) Feed(b byte) { s.capture.Feed(b) }

// Start launches the periodic trigger.
func (s *Service) Start(ctx context.Context) { s.trigger.Start(ctx) }

// runOnce executes one aggregation cycle in task context. Collaborator
// failures are reported by the assembler but deliberately ignored here:
// the telemetry link is best-effort, fire-and-forget.
func (s *Service) runOnce() {
	_ = s.assembler.RunCycle(s.snapshot())
}
