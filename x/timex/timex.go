package timex

import "time"

var boot = time.Now()

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// SinceBootMs returns milliseconds elapsed since package init, which on
// MCU targets coincides with boot. Wraps after ~49 days, like the
// hardware boot counter it mirrors.
func SinceBootMs() uint32 {
	return uint32(time.Since(boot).Milliseconds())
}

// PeriodFromHz returns a nanosecond period for a requested frequency.
// freqHz==0 is coerced to 1 to avoid division by zero.
func PeriodFromHz(freqHz uint32) uint64 {
	if freqHz == 0 {
		freqHz = 1
	}
	return uint64(1_000_000_000 / uint64(freqHz))
}
