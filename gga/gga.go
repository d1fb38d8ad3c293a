// Package gga parses NMEA GGA fix-report sentences into integer-only
// values. Coordinates keep the wire's ddmm.mmm shape as a value/scale
// pair so downstream consumers can rescale without floating point.
//
// Only the fields the telemetry pipeline consumes are extracted:
// time-of-day, latitude/longitude, and satellite count. Empty fields
// (no fix yet) decode to zero values rather than errors.
package gga

import (
	"errors"

	"hatcode-go/x/mathx"
)

var (
	ErrNotGGA    = errors.New("gga: not a GGA sentence")
	ErrChecksum  = errors.New("gga: checksum mismatch")
	ErrMalformed = errors.New("gga: malformed field")
)

// Coord is a fixed-point coordinate in the sentence's native ddmm.mmm
// representation: Value carries all digits, Scale the fraction weight.
type Coord struct {
	Value int32
	Scale int32
}

// Rescale converts the coordinate to a new fractional scale with
// round-half-away-from-zero, e.g. "4807.038" rescaled to 1000 is
// 4807038. A zero coordinate (empty field) rescales to 0.
func (c Coord) Rescale(newScale int32) int32 {
	if c.Scale == 0 || newScale == 0 {
		return 0
	}
	if c.Scale == newScale {
		return c.Value
	}
	if c.Scale > newScale {
		div := c.Scale / newScale
		half := div / 2
		if c.Value < 0 {
			half = -half
		}
		return (c.Value + half) / div
	}
	return c.Value * (newScale / c.Scale)
}

// Sentence is one parsed GGA fix report.
type Sentence struct {
	Hours   uint8
	Minutes uint8
	Seconds uint8

	Latitude  Coord
	Longitude Coord

	Satellites uint8
}

// Parse decodes one complete sentence, "$...GGA,...*hh\r\n". The
// leading '$' and trailing CRLF are optional; the checksum is verified
// when present.
func Parse(raw []byte) (Sentence, error) {
	var s Sentence

	body, err := frame(raw)
	if err != nil {
		return s, err
	}

	f := fields{rest: body}
	tag := f.next()
	if len(tag) < 5 || string(tag[len(tag)-3:]) != "GGA" {
		return s, ErrNotGGA
	}

	if err := parseTime(f.next(), &s); err != nil {
		return s, err
	}

	lat, err := parseCoord(f.next(), f.next(), 'S')
	if err != nil {
		return s, err
	}
	s.Latitude = lat

	lng, err := parseCoord(f.next(), f.next(), 'W')
	if err != nil {
		return s, err
	}
	s.Longitude = lng

	f.next() // fix quality, unused

	sats, err := parseUint(f.next())
	if err != nil {
		return s, err
	}
	s.Satellites = uint8(mathx.Clamp(sats, 0, 255))

	return s, nil
}

// frame strips '$', CR/LF and the '*hh' checksum, verifying the latter
// against the XOR of the payload bytes.
func frame(raw []byte) ([]byte, error) {
	// Trim trailing CR/LF and any NUL padding from fixed buffers.
	end := len(raw)
	for end > 0 && (raw[end-1] == '\n' || raw[end-1] == '\r' || raw[end-1] == 0) {
		end--
	}
	raw = raw[:end]
	if len(raw) > 0 && raw[0] == '$' {
		raw = raw[1:]
	}
	if len(raw) == 0 {
		return nil, ErrNotGGA
	}

	star := -1
	var sum byte
	for i, b := range raw {
		if b == '*' {
			star = i
			break
		}
		sum ^= b
	}
	if star < 0 {
		return raw, nil
	}
	if len(raw) != star+3 {
		return nil, ErrChecksum
	}
	hi, ok1 := unhex(raw[star+1])
	lo, ok2 := unhex(raw[star+2])
	if !ok1 || !ok2 || sum != hi<<4|lo {
		return nil, ErrChecksum
	}
	return raw[:star], nil
}

func unhex(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	}
	return 0, false
}

// fields walks comma-separated fields without allocating.
type fields struct {
	rest []byte
	done bool
}

func (f *fields) next() []byte {
	if f.done {
		return nil
	}
	for i, b := range f.rest {
		if b == ',' {
			out := f.rest[:i]
			f.rest = f.rest[i+1:]
			return out
		}
	}
	f.done = true
	return f.rest
}

// parseTime decodes hhmmss with an optional fractional part.
func parseTime(b []byte, s *Sentence) error {
	if len(b) == 0 {
		return nil
	}
	if dot := indexByte(b, '.'); dot >= 0 {
		b = b[:dot]
	}
	if len(b) != 6 {
		return ErrMalformed
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return ErrMalformed
		}
	}
	s.Hours = (b[0]-'0')*10 + (b[1] - '0')
	s.Minutes = (b[2]-'0')*10 + (b[3] - '0')
	s.Seconds = (b[4]-'0')*10 + (b[5] - '0')
	return nil
}

// parseCoord decodes a ddmm.mmm field with its hemisphere indicator;
// neg is the hemisphere letter that flips the sign.
func parseCoord(b, hemi []byte, neg byte) (Coord, error) {
	if len(b) == 0 {
		return Coord{}, nil
	}
	var c Coord
	c.Scale = 1
	seenDot := false
	for _, ch := range b {
		switch {
		case ch == '.':
			if seenDot {
				return Coord{}, ErrMalformed
			}
			seenDot = true
		case ch >= '0' && ch <= '9':
			c.Value = c.Value*10 + int32(ch-'0')
			if seenDot {
				c.Scale *= 10
			}
		default:
			return Coord{}, ErrMalformed
		}
	}
	if len(hemi) == 1 && hemi[0] == neg {
		c.Value = -c.Value
	}
	return c, nil
}

func parseUint(b []byte) (int32, error) {
	var v int32
	for _, ch := range b {
		if ch < '0' || ch > '9' {
			return 0, ErrMalformed
		}
		v = v*10 + int32(ch-'0')
	}
	return v, nil
}

func indexByte(b []byte, c byte) int {
	for i := range b {
		if b[i] == c {
			return i
		}
	}
	return -1
}
