package telemetry

import "hatcode-go/x/mailbox"

// SentenceMax bounds a captured sentence, matching the NMEA maximum.
const SentenceMax = 80

const (
	startByte      = '$'
	terminatorByte = '\n'
)

// Sentences of interest carry this marker ("GGA" fix reports).
var marker = [3]byte{'G', 'G', 'A'}

// Capture is the interrupt-context sentence framer. Feed is called per
// received byte from the serial ISR; completed sentences of interest
// are published whole into the frame mailbox for the assembler.
//
// Two states: idle until the first start byte, then capturing. A start
// byte always restarts capture, discarding anything collected so far —
// including mid-sentence, so garbage or a nested '$' restarts rather
// than erroring. Bytes beyond SentenceMax are dropped silently; this
// bounded truncation is a deliberate policy, not an error condition.
type Capture struct {
	out     *mailbox.Box
	buf     [SentenceMax]byte
	idx     int
	copying bool
}

// NewCapture creates a framer publishing into out.
func NewCapture(out *mailbox.Box) *Capture {
	return &Capture{out: out}
}

// Feed consumes one byte from the serial stream. ISR-safe: no
// allocation, no blocking, bounded work.
func (c *Capture) Feed(b byte) {
	if b == startByte {
		c.copying = true
		c.idx = 0
	}

	if !c.copying || c.idx >= SentenceMax {
		return
	}
	c.buf[c.idx] = b
	c.idx++

	if b == terminatorByte && c.hasMarker() {
		c.out.Publish(c.buf[:c.idx])
	}
}

// hasMarker searches the bytes of the current sentence only, so a
// stale tail from a longer previous sentence can never match.
func (c *Capture) hasMarker() bool {
	for i := 0; i+len(marker) <= c.idx; i++ {
		if c.buf[i] == marker[0] && c.buf[i+1] == marker[1] && c.buf[i+2] == marker[2] {
			return true
		}
	}
	return false
}
