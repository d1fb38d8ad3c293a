// Package qmc5883l provides a driver for the QMC5883L magnetometer.
//
// The chip does not auto-increment its register pointer across the
// control and temperature registers, so configuration and die
// temperature are always two discrete single-register transactions.
// When the two sub-transactions disagree, the driver reports the more
// severe (numerically smaller) of the two codes and never caches
// partial state.
//
// Axis and temperature values are raw signed 16-bit counts; no
// floating point anywhere.
package qmc5883l

import (
	"tinygo.org/x/drivers"

	"hatcode-go/errcode"
)

// Config mirrors the two control registers. Control holds the raw
// bytes actually written or read back; the typed fields are the
// decoded view. The pair is always written and read as a unit: a
// partial write is a configuration failure and is never applied.
type Config struct {
	Mode            Mode
	ODR             ODR
	OSR             OSR
	Scale           Scale
	PointerRoll     bool
	EnableInterrupt bool

	Control [2]byte
}

// Status is a transient snapshot of the status register. It is decoded
// on every read and never cached.
type Status struct {
	DataReady    bool
	DataOverflow bool
	DataSkip     bool
}

// Device represents a QMC5883L on an I2C bus.
type Device struct {
	bus  drivers.I2C
	addr uint16

	config Config

	// Fixed buffers to avoid per-call heap allocations.
	w [2]byte
	r [6]byte
}

// New constructs a Device. It does not touch the hardware.
func New(bus drivers.I2C) *Device {
	return &Device{bus: bus, addr: Address}
}

// Initialize issues the SET/RESET calibration pulse and then attempts
// to read back the current configuration. The read-back is best-effort:
// its failure does not fail initialization.
func (d *Device) Initialize() errcode.Code {
	if code := d.writeReg(regSetReset, setResetPeriod); code != errcode.OK {
		return code
	}
	d.GetConfig()
	return errcode.OK
}

// Config returns the last successfully cached configuration.
func (d *Device) Config() Config { return d.config }

// SelfTest checks that the chip is talking and configured to produce
// data. The QMC5883L has no real self-test capability, so this is a
// configuration read: OK when the device is in a running mode, Standby
// when configured but idle, otherwise the read error verbatim.
func (d *Device) SelfTest() errcode.Code {
	cfg, code := d.GetConfig()
	switch code {
	case errcode.OK:
		if cfg.Mode != ModeStandby {
			return errcode.OK
		}
		return errcode.Standby
	default:
		return code
	}
}

// ReadStatus reads and decodes the status register.
func (d *Device) ReadStatus() (Status, errcode.Code) {
	if code := d.readReg(regStatus, d.r[:1]); code != errcode.OK {
		return Status{}, code
	}
	b := d.r[0]
	return Status{
		DataReady:    b&(1<<statusDRDY) != 0,
		DataOverflow: b&(1<<statusDOVL) != 0,
		DataSkip:     b&(1<<statusDSKIP) != 0,
	}, errcode.OK
}

// SetConfig packs cfg into the two control registers and writes them as
// two discrete transactions. The cached configuration is updated only
// when both writes succeed; otherwise the worse of the two codes is
// returned and the cache is left untouched.
func (d *Device) SetConfig(cfg Config) errcode.Code {
	cfg.Control[0] = packCtrl1(cfg)
	cfg.Control[1] = packCtrl2(cfg)

	c1 := d.writeReg(regControl1, cfg.Control[0])
	c2 := d.writeReg(regControl2, cfg.Control[1])

	if c1 == errcode.OK && c2 == errcode.OK {
		d.config = cfg
		return errcode.OK
	}
	return errcode.Worse(c1, c2)
}

// GetConfig reads both control registers as two discrete transactions
// and decodes them. A read-back with the control-1 reserved bits set is
// reported Invalid even though the transfers succeeded; the decoded
// configuration is still cached and returned. Partial transfer success
// reports the worse code and caches nothing.
func (d *Device) GetConfig() (Config, errcode.Code) {
	c1 := d.readReg(regControl1, d.r[:1])
	c2 := d.readReg(regControl2, d.r[1:2])

	if c1 != errcode.OK || c2 != errcode.OK {
		return Config{}, errcode.Worse(c1, c2)
	}

	var cfg Config
	cfg.Control[0] = d.r[0]
	cfg.Control[1] = d.r[1]
	var invalid bool
	cfg.Mode, cfg.ODR, cfg.OSR, cfg.Scale, invalid = unpackCtrl1(d.r[0])
	cfg.PointerRoll, cfg.EnableInterrupt = unpackCtrl2(d.r[1])

	d.config = cfg
	if invalid {
		return cfg, errcode.Invalid
	}
	return cfg, errcode.OK
}

// ReadField reads the three axis registers in one six-byte transaction
// and decodes little-endian signed counts.
func (d *Device) ReadField() ([3]int16, errcode.Code) {
	var field [3]int16
	if code := d.readReg(regXOutLSB, d.r[:6]); code != errcode.OK {
		return field, code
	}
	field[0] = int16(uint16(d.r[0]) | uint16(d.r[1])<<8)
	field[1] = int16(uint16(d.r[2]) | uint16(d.r[3])<<8)
	field[2] = int16(uint16(d.r[4]) | uint16(d.r[5])<<8)
	return field, errcode.OK
}

// ReadDieTemperature reads the two temperature registers as discrete
// single-byte transactions and combines them little-endian. Both reads
// must succeed.
func (d *Device) ReadDieTemperature() (int16, errcode.Code) {
	c1 := d.readReg(regTOutLSB, d.r[:1])
	c2 := d.readReg(regTOutMSB, d.r[1:2])

	if c1 == errcode.OK && c2 == errcode.OK {
		return int16(uint16(d.r[0]) | uint16(d.r[1])<<8), errcode.OK
	}
	return 0, errcode.Worse(c1, c2)
}

// Raw single-register transactions.

func (d *Device) writeReg(reg, val byte) errcode.Code {
	d.w[0], d.w[1] = reg, val
	return errcode.Classify(d.bus.Tx(d.addr, d.w[:2], nil))
}

func (d *Device) readReg(reg byte, dst []byte) errcode.Code {
	d.w[0] = reg
	return errcode.Classify(d.bus.Tx(d.addr, d.w[:1], dst))
}
