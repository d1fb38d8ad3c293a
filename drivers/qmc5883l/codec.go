package qmc5883l

// Pure register pack/unpack. Kept free of bus I/O so the bit layout can
// be exercised directly by tests.

// packCtrl1 encodes mode, output-data-rate, oversample ratio and scale
// into control register 1.
func packCtrl1(c Config) byte {
	return byte(c.Mode)<<modeShift |
		byte(c.ODR)<<odrShift |
		byte(c.OSR)<<osrShift |
		byte(c.Scale)<<scaleShift
}

// packCtrl2 encodes the pointer-roll-over and interrupt-enable flags
// into control register 2.
func packCtrl2(c Config) byte {
	var b byte
	if c.PointerRoll {
		b |= 1 << pointerRolBit
	}
	if c.EnableInterrupt {
		b |= 1 << intEnableBit
	}
	return b
}

// unpackCtrl1 decodes control register 1. invalid reports reserved bits
// set in an otherwise successful read-back.
func unpackCtrl1(b byte) (mode Mode, odr ODR, osr OSR, scale Scale, invalid bool) {
	mode = Mode(b >> modeShift & 1)
	odr = ODR(b >> odrShift & 3)
	osr = OSR(b >> osrShift & 3)
	scale = Scale(b >> scaleShift & 1)
	invalid = b&ctrl1ReservedMask != 0
	return
}

// unpackCtrl2 decodes control register 2.
func unpackCtrl2(b byte) (pointerRoll, enableInterrupt bool) {
	return b&(1<<pointerRolBit) != 0, b&(1<<intEnableBit) != 0
}
