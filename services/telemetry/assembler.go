package telemetry

import (
	"hatcode-go/gga"
	"hatcode-go/x/mailbox"
	"hatcode-go/x/mathx"
	"hatcode-go/x/timex"
)

// CycleResult reports what one assembly cycle did. The pipeline itself
// never retries; callers decide what, if anything, to do with the
// errors. The shipped wiring ignores them (fire-and-forget link).
type CycleResult struct {
	Seq uint32
	// ElapsedSec is the fix time-of-day folded to seconds, a derived
	// convenience value for downstream consumers; it is not part of
	// the packet.
	ElapsedSec uint32

	ParseErr   error
	RadioErr   error
	StorageErr error
}

// AssemblerConfig tunes the assembler. Zero values select defaults.
type AssemblerConfig struct {
	VehicleID   uint8
	NowMs       func() uint32
	TxTimeoutMs uint32
}

// Assembler builds and transmits telemetry packets in task context. It
// owns the boot-session sequence counter: monotonically incremented
// once per cycle, never persisted, never reset mid-session.
type Assembler struct {
	frames *mailbox.Box
	radio  Radio
	store  Storage

	vid       uint8
	nowMs     func() uint32
	txTimeout uint32

	seq     uint32
	scratch [SentenceMax]byte
}

// NewAssembler wires the assembler to the frame mailbox and the radio
// and storage collaborators.
func NewAssembler(frames *mailbox.Box, radio Radio, store Storage, cfg AssemblerConfig) *Assembler {
	if cfg.NowMs == nil {
		cfg.NowMs = timex.SinceBootMs
	}
	if cfg.TxTimeoutMs == 0 {
		cfg.TxTimeoutMs = 1000
	}
	return &Assembler{
		frames:    frames,
		radio:     radio,
		store:     store,
		vid:       cfg.VehicleID,
		nowMs:     cfg.NowMs,
		txTimeout: cfg.TxTimeoutMs,
	}
}

// RunCycle assembles, transmits and archives one packet from the given
// snapshot and the latest captured sentence. The output is a pure
// function of its inputs plus the sequence counter.
//
// The assembler always uses whatever sentence was last captured,
// including one from a prior cycle; staleness is not tracked, and a
// missing or unparseable sentence yields a packet with zeroed fix
// fields rather than a skipped cycle.
func (a *Assembler) RunCycle(snap Snapshot) CycleResult {
	var res CycleResult

	var fix gga.Sentence
	if n, ok := a.frames.Take(a.scratch[:]); ok {
		fix, res.ParseErr = gga.Parse(a.scratch[:n])
	}

	res.ElapsedSec = uint32(fix.Hours)*3600 + uint32(fix.Minutes)*60 + uint32(fix.Seconds)

	p := Packet{
		Seq:        a.seq,
		VehicleID:  a.vid,
		State:      snap.State,
		TimeMs:     a.nowMs(),
		UTC:        [3]uint8{fix.Hours, fix.Minutes, fix.Seconds},
		Lat:        fix.Latitude.Rescale(1000),
		Lng:        fix.Longitude.Rescale(1000),
		Satellites: fix.Satellites,
		Pressure:   snap.Baro.Pressure,
		Temp:       int16(mathx.Clamp(snap.Baro.Temp, -32768, 32767)),
		Accel:      snap.IMU.Accel,
		Gyro:       snap.IMU.Gyro,
	}
	res.Seq = a.seq
	a.seq++

	wire := p.Marshal()
	res.RadioErr = a.radio.Tx(wire[:], a.txTimeout)

	rec := PositionRecord{
		TimeMs:     p.TimeMs,
		Lat:        p.Lat,
		Lng:        p.Lng,
		Satellites: p.Satellites,
		UTC:        p.UTC,
	}
	stored := rec.Marshal()
	res.StorageErr = a.store.Append(stored[:], CategoryPosition)

	return res
}
