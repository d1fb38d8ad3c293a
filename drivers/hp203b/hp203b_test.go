package hp203b

import (
	"testing"

	"tinygo.org/x/drivers"

	"hatcode-go/errcode"
)

// Compile-time check.
var _ drivers.I2C = (*fakeHP203)(nil)

// Scripted HP203B-like fake.
type fakeHP203 struct {
	intSrc   byte
	pres     uint32
	temp     int32
	failWith error // injected on every transaction when non-nil
}

func newFakeHP203() *fakeHP203 {
	return &fakeHP203{
		intSrc: 0x40, // DEV_RDY
		pres:   101325,
		temp:   2500,
	}
}

func put20(dst []byte, v uint32) {
	dst[0] = byte(v >> 16 & 0x0F)
	dst[1] = byte(v >> 8)
	dst[2] = byte(v)
}

func (f *fakeHP203) Tx(addr uint16, w, r []byte) error {
	if f.failWith != nil {
		return f.failWith
	}
	if addr != Address {
		return errcode.Generic
	}
	if len(w) != 1 {
		return errcode.Generic
	}
	switch {
	case w[0] == cmdReset:
		return nil
	case w[0] == cmdReadReg|regINTSrc && len(r) == 1:
		r[0] = f.intSrc
		return nil
	case w[0]&0xC0 == cmdADCSet:
		return nil
	case w[0] == cmdReadP && len(r) == 3:
		put20(r, f.pres)
		return nil
	case w[0] == cmdReadT && len(r) == 3:
		put20(r, uint32(f.temp)&0xFFFFF)
		return nil
	case w[0] == cmdReadPT && len(r) == 6:
		put20(r[0:3], uint32(f.temp)&0xFFFFF)
		put20(r[3:6], f.pres)
		return nil
	}
	return errcode.Generic
}

func TestSelfTest(t *testing.T) {
	f := newFakeHP203()
	d := New(f)

	if code := d.SelfTest(); code != errcode.OK {
		t.Fatalf("SelfTest = %v, want OK", code)
	}

	f.intSrc = 0x00 // not ready
	if code := d.SelfTest(); code != errcode.BadChip {
		t.Fatalf("SelfTest with DEV_RDY clear = %v, want BadChip", code)
	}

	f.intSrc = 0xC0 // reserved bit set
	if code := d.SelfTest(); code != errcode.BadChip {
		t.Fatalf("SelfTest with reserved bit = %v, want BadChip", code)
	}

	f.failWith = errcode.Timeout
	if code := d.SelfTest(); code != errcode.Timeout {
		t.Fatalf("SelfTest with bus timeout = %v, want Timeout", code)
	}
}

func TestStartMeasurementDelayTable(t *testing.T) {
	f := newFakeHP203()
	d := New(f)

	for _, ch := range []Channel{ChanPresTemp, ChanTempOnly} {
		var prev int64
		// Iterate from lowest oversample rate (OSR128) upwards; the
		// delay must be positive and non-decreasing in the rate.
		for osr := OSR128; ; osr-- {
			wait, code := d.StartMeasurement(ch, osr)
			if code != errcode.OK {
				t.Fatalf("StartMeasurement(%d, %d) = %v", ch, osr, code)
			}
			if wait <= 0 {
				t.Fatalf("delay for osr %d must be positive", osr)
			}
			if wait.Microseconds() < prev {
				t.Fatalf("delay decreased at osr %d", osr)
			}
			prev = wait.Microseconds()
			if osr == OSR4096 {
				break
			}
		}
	}

	// Combined channel takes twice the temp-only conversion time.
	both, _ := d.StartMeasurement(ChanPresTemp, OSR1024)
	single, _ := d.StartMeasurement(ChanTempOnly, OSR1024)
	if both != 2*single {
		t.Fatalf("combined delay %v, want 2x %v", both, single)
	}

	if _, code := d.StartMeasurement(ChanPresTemp, OSR(9)); code != errcode.Generic {
		t.Fatal("out-of-range OSR must be rejected")
	}
}

func TestReads(t *testing.T) {
	f := newFakeHP203()
	d := New(f)

	p, code := d.ReadPressure()
	if code != errcode.OK || p != 101325 {
		t.Fatalf("ReadPressure = %d, %v", p, code)
	}

	c, code := d.ReadTemperature()
	if code != errcode.OK || c != 2500 {
		t.Fatalf("ReadTemperature = %d, %v", c, code)
	}

	data, code := d.ReadBoth()
	if code != errcode.OK || data.Pressure != 101325 || data.Temp != 2500 {
		t.Fatalf("ReadBoth = %+v, %v", data, code)
	}
}

func TestNegativeTemperature(t *testing.T) {
	f := newFakeHP203()
	f.temp = -1250 // -12.5 degrees
	d := New(f)

	c, code := d.ReadTemperature()
	if code != errcode.OK || c != -1250 {
		t.Fatalf("ReadTemperature = %d, %v; want -1250", c, code)
	}
}

func TestReadErrorClassification(t *testing.T) {
	f := newFakeHP203()
	d := New(f)

	f.failWith = errcode.Timeout
	if _, code := d.ReadBoth(); code != errcode.Timeout {
		t.Fatalf("want Timeout, got %v", code)
	}
	f.failWith = errcode.Generic
	if _, code := d.ReadPressure(); code != errcode.Generic {
		t.Fatalf("want Generic, got %v", code)
	}
}
