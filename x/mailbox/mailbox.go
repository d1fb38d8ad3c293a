package mailbox

import "sync/atomic"

// Box is a single-producer, single-consumer, single-slot frame mailbox.
// The producer replaces the slot wholesale; the consumer always observes
// a complete frame, never a torn one. Intended for interrupt-to-task
// handoff: Publish is wait-free and allocation-free.
//
// The slot is guarded by a sequence counter: odd while a publish is in
// flight, even when stable. A reader that observes a change retries.
type Box struct {
	seq atomic.Uint32
	n   int
	buf []byte
}

// New creates a mailbox holding frames of at most size bytes.
func New(size int) *Box {
	if size <= 0 {
		panic("mailbox: size must be positive")
	}
	return &Box{buf: make([]byte, size)}
}

// Cap returns the maximum frame size.
func (b *Box) Cap() int { return len(b.buf) }

// Generation returns the number of frames published so far.
func (b *Box) Generation() uint32 { return b.seq.Load() / 2 }

// Publish replaces the slot with src, truncated to the mailbox capacity.
// Returns the number of bytes stored. Producer side only.
func (b *Box) Publish(src []byte) int {
	n := len(src)
	if n > len(b.buf) {
		n = len(b.buf)
	}
	s := b.seq.Load()
	b.seq.Store(s + 1) // odd: publish in flight
	copy(b.buf, src[:n])
	b.n = n
	b.seq.Store(s + 2) // even: stable
	return n
}

// Take copies the latest frame into dst and returns its length.
// Returns ok=false if nothing has been published yet. Consumer side
// only. The same frame may be taken repeatedly; the mailbox does not
// track staleness.
func (b *Box) Take(dst []byte) (n int, ok bool) {
	for {
		s1 := b.seq.Load()
		if s1 == 0 {
			return 0, false
		}
		if s1&1 == 1 {
			// Publish in flight; the producer runs to completion.
			continue
		}
		n = b.n
		if n > len(dst) {
			n = len(dst)
		}
		copy(dst, b.buf[:n])
		if b.seq.Load() == s1 {
			return n, true
		}
	}
}
