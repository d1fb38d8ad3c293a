package qmc5883l

import "testing"

func TestPackCtrl1Layout(t *testing.T) {
	cfg := Config{
		Mode:  ModeContinuous,
		ODR:   ODR200Hz,
		OSR:   OSR64,
		Scale: Scale8G,
	}
	// mode=1 @bit0, odr=3 @bit2, scale=1 @bit4, osr=3 @bit6
	want := byte(1 | 3<<2 | 1<<4 | 3<<6)
	if got := packCtrl1(cfg); got != want {
		t.Fatalf("packCtrl1 = %#02x, want %#02x", got, want)
	}
}

func TestPackCtrl2Layout(t *testing.T) {
	if got := packCtrl2(Config{PointerRoll: true}); got != 1<<6 {
		t.Fatalf("pointer roll bit = %#02x, want %#02x", got, 1<<6)
	}
	if got := packCtrl2(Config{EnableInterrupt: true}); got != 1 {
		t.Fatalf("interrupt enable bit = %#02x, want 0x01", got)
	}
	if got := packCtrl2(Config{}); got != 0 {
		t.Fatalf("empty flags = %#02x, want 0", got)
	}
}

func TestUnpackRoundTrip(t *testing.T) {
	for _, cfg := range []Config{
		{Mode: ModeStandby, ODR: ODR10Hz, OSR: OSR512, Scale: Scale2G},
		{Mode: ModeContinuous, ODR: ODR100Hz, OSR: OSR128, Scale: Scale8G},
		{Mode: ModeContinuous, ODR: ODR50Hz, OSR: OSR256, Scale: Scale2G},
	} {
		mode, odr, osr, scale, invalid := unpackCtrl1(packCtrl1(cfg))
		if invalid {
			t.Fatalf("%+v: packed config decoded as invalid", cfg)
		}
		if mode != cfg.Mode || odr != cfg.ODR || osr != cfg.OSR || scale != cfg.Scale {
			t.Fatalf("round trip mismatch for %+v", cfg)
		}
	}
}

func TestUnpackCtrl1Reserved(t *testing.T) {
	if _, _, _, _, invalid := unpackCtrl1(0x02); !invalid {
		t.Fatal("reserved bit 1 must flag invalid")
	}
	if _, _, _, _, invalid := unpackCtrl1(0x20); !invalid {
		t.Fatal("reserved bit 5 must flag invalid")
	}
	if _, _, _, _, invalid := unpackCtrl1(0xDD); invalid {
		t.Fatal("no reserved bits set must not flag invalid")
	}
}
