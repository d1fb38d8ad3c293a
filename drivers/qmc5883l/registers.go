package qmc5883l

// I2C address. The QMC5883L has no address pins.
const Address = 0x0D

// Register map. The chip only auto-increments its pointer across the
// output registers; control and temperature registers must be accessed
// one at a time.
const (
	regXOutLSB  = 0x00
	regStatus   = 0x06
	regTOutLSB  = 0x07
	regTOutMSB  = 0x08
	regControl1 = 0x09
	regControl2 = 0x0A
	regSetReset = 0x0B
)

// Status register bit positions.
const (
	statusDRDY  = 0 // data ready
	statusDOVL  = 1 // data overflow
	statusDSKIP = 2 // data skipped
)

// Control register 1 field positions.
const (
	modeShift  = 0
	odrShift   = 2
	scaleShift = 4
	osrShift   = 6
)

// Reserved bits in control register 1; a read-back with either set is
// structurally invalid even when the transfer itself succeeded.
const ctrl1ReservedMask = 0x22

// Control register 2 bit positions.
const (
	intEnableBit  = 0
	pointerRolBit = 6
)

// SET/RESET period recommended by the datasheet, written at init.
const setResetPeriod = 0x01

// Mode is the operating mode.
type Mode uint8

const (
	ModeStandby    Mode = 0
	ModeContinuous Mode = 1
)

// ODR is the output data rate.
type ODR uint8

const (
	ODR10Hz  ODR = 0
	ODR50Hz  ODR = 1
	ODR100Hz ODR = 2
	ODR200Hz ODR = 3
)

// OSR is the oversample ratio.
type OSR uint8

const (
	OSR512 OSR = 0
	OSR256 OSR = 1
	OSR128 OSR = 2
	OSR64  OSR = 3
)

// Scale is the full-scale field range.
type Scale uint8

const (
	Scale2G Scale = 0
	Scale8G Scale = 1
)
