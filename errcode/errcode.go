package errcode

import "context"

// Code is a stable error identifier for sensor bus transactions.
// It is an int8 newtype, comparable, allocation-free, and implements error.
// Numerically smaller means more severe; dual-transaction operations
// collapse two codes with Worse.
type Code int8

// Canonical codes. Timeout and Generic classify the transfer itself;
// the remaining codes describe device conditions and are never produced
// by a raw transfer.
const (
	OK      Code = 0
	Timeout Code = -1 // bus wait exceeded the per-byte bound
	Generic Code = -2 // unexpected transfer length or other I/O anomaly
	BadChip Code = -3 // self-test response structurally wrong
	Invalid Code = -4 // configuration read back structurally invalid
	Standby Code = -5 // device configured but idle during self-test
)

func (c Code) Error() string {
	switch c {
	case OK:
		return "ok"
	case Timeout:
		return "timeout"
	case Generic:
		return "generic"
	case BadChip:
		return "bad_chip"
	case Invalid:
		return "invalid_config"
	case Standby:
		return "standby"
	}
	return "unknown"
}

// Err converts a Code to an error, nil for OK.
func (c Code) Err() error {
	if c == OK {
		return nil
	}
	return c
}

// Worse returns the more severe of two codes (numerically smaller).
func Worse(a, b Code) Code {
	if a < b {
		return a
	}
	return b
}

// Of extracts a Code from an error, defaulting to Generic.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Generic
}

// Classify maps low-level bus errors to a Code.
// Extend the heuristics per platform/driver.
func Classify(err error) Code {
	if err == nil {
		return OK
	}
	if c := Of(err); c != Generic {
		return c
	}
	if err == context.DeadlineExceeded {
		return Timeout
	}
	type timeouter interface{ Timeout() bool }
	if t, ok := err.(timeouter); ok && t.Timeout() {
		return Timeout
	}
	return Generic
}
