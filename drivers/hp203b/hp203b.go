// Package hp203b provides a driver for the HP203B barometric
// pressure/temperature sensor. It exposes a two-phase measurement API:
//
//	wait, code := d.StartMeasurement(hp203b.ChanPresTemp, hp203b.OSR1024)
//	// ... defer at least `wait`, then:
//	data, code := d.ReadBoth()
//
// The driver never sleeps between start and read; scheduling the read
// after the returned delay is the caller's responsibility. Reading
// early yields stale or undefined data.
//
// Values are returned in whole pascals and centidegrees. Floating
// point is kept out of the data path.
package hp203b

import (
	"time"

	"tinygo.org/x/drivers"

	"hatcode-go/errcode"
)

// I2C address.
const Address = 0x76

// Commands (per datasheet).
const (
	cmdReset    = 0x06
	cmdReadPT   = 0x10
	cmdReadP    = 0x30
	cmdReadT    = 0x32
	cmdADCSet   = 0x40
	cmdReadReg  = 0x80
	cmdWriteReg = 0xC0
)

// Registers.
const regINTSrc = 0x0D

// INT_SRC bits used by SelfTest.
const (
	intSrcDevRdy   = 0x40
	intSrcReserved = 0x80
)

const osrShift = 2

// Channel selects what the ADC converts.
type Channel uint8

const (
	ChanPresTemp Channel = 0x00
	ChanTempOnly Channel = 0x01
)

// OSR is the oversample-rate setting, trading conversion time for noise.
type OSR uint8

const (
	OSR4096 OSR = 0x00
	OSR2048 OSR = 0x01
	OSR1024 OSR = 0x02
	OSR512  OSR = 0x03
	OSR256  OSR = 0x04
	OSR128  OSR = 0x05
)

// Conversion time per channel, indexed by OSR (datasheet table 8).
var convTimeUS = [6]int32{65600, 32800, 16400, 8200, 4100, 2100}

// Data holds one combined measurement.
type Data struct {
	Pressure uint32 // Pa
	Temp     int32  // centidegrees
}

// Device wraps an I2C connection to an HP203B.
type Device struct {
	bus     drivers.I2C
	Address uint16

	buf [6]byte // reuse buffer to avoid allocations
}

// New creates a driver instance on an already-configured bus.
// It does not touch the device.
func New(bus drivers.I2C) Device {
	return Device{bus: bus, Address: Address}
}

// SelfTest soft-resets the chip and checks that it reports ready.
// Takes roughly 10 ms; callers must not treat it as instantaneous.
// Returns OK, Timeout, BadChip, or Generic.
func (d *Device) SelfTest() errcode.Code {
	if err := d.bus.Tx(d.Address, []byte{cmdReset}, nil); err != nil {
		return errcode.Classify(err)
	}
	time.Sleep(10 * time.Millisecond)

	r := d.buf[:1]
	if err := d.bus.Tx(d.Address, []byte{cmdReadReg | regINTSrc}, r); err != nil {
		return errcode.Classify(err)
	}
	if r[0]&intSrcReserved != 0 || r[0]&intSrcDevRdy == 0 {
		return errcode.BadChip
	}
	return errcode.OK
}

// StartMeasurement writes the composite ADC_CVT command and returns the
// expected conversion delay. The delay is table-derived per OSR and
// doubled for the combined pressure+temperature channel.
func (d *Device) StartMeasurement(ch Channel, osr OSR) (time.Duration, errcode.Code) {
	if osr > OSR128 || ch > ChanTempOnly {
		return 0, errcode.Generic
	}
	cmd := byte(cmdADCSet) | byte(osr)<<osrShift | byte(ch)
	if err := d.bus.Tx(d.Address, []byte{cmd}, nil); err != nil {
		return 0, errcode.Classify(err)
	}
	us := convTimeUS[osr]
	if ch == ChanPresTemp {
		us *= 2
	}
	return time.Duration(us) * time.Microsecond, errcode.OK
}

// ReadPressure fetches the latest pressure conversion in pascals.
// Only valid after the StartMeasurement delay has elapsed.
func (d *Device) ReadPressure() (uint32, errcode.Code) {
	r := d.buf[:3]
	if err := d.bus.Tx(d.Address, []byte{cmdReadP}, r); err != nil {
		return 0, errcode.Classify(err)
	}
	return decodeU20(r), errcode.OK
}

// ReadTemperature fetches the latest temperature conversion in
// centidegrees. Only valid after the StartMeasurement delay has elapsed.
func (d *Device) ReadTemperature() (int32, errcode.Code) {
	r := d.buf[:3]
	if err := d.bus.Tx(d.Address, []byte{cmdReadT}, r); err != nil {
		return 0, errcode.Classify(err)
	}
	return decodeS20(r), errcode.OK
}

// ReadBoth fetches temperature and pressure in a single transaction.
// The chip returns temperature first, then pressure, big-endian.
func (d *Device) ReadBoth() (Data, errcode.Code) {
	r := d.buf[:6]
	if err := d.bus.Tx(d.Address, []byte{cmdReadPT}, r); err != nil {
		return Data{}, errcode.Classify(err)
	}
	return Data{
		Temp:     decodeS20(r[0:3]),
		Pressure: decodeU20(r[3:6]),
	}, errcode.OK
}

// decodeU20 parses a big-endian 24-bit field with 20 significant bits.
func decodeU20(b []byte) uint32 {
	return (uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])) & 0xFFFFF
}

// decodeS20 parses a big-endian 20-bit two's-complement field.
func decodeS20(b []byte) int32 {
	v := decodeU20(b)
	if v&0x80000 != 0 {
		v |= 0xFFF00000
	}
	return int32(v)
}
