package errcode

import (
	"context"
	"errors"
	"testing"
)

func TestWorsePicksSmaller(t *testing.T) {
	cases := []struct{ a, b, want Code }{
		{OK, OK, OK},
		{OK, Timeout, Timeout},
		{Timeout, Generic, Generic},
		{Generic, Timeout, Generic},
		{Generic, OK, Generic},
	}
	for _, c := range cases {
		if got := Worse(c.a, c.b); got != c.want {
			t.Errorf("Worse(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestErrIsNilForOK(t *testing.T) {
	if OK.Err() != nil {
		t.Error("OK.Err() should be nil")
	}
	if Timeout.Err() == nil {
		t.Error("Timeout.Err() should be non-nil")
	}
}

func TestOf(t *testing.T) {
	if Of(nil) != OK {
		t.Error("Of(nil) should be OK")
	}
	if Of(Timeout) != Timeout {
		t.Error("Of should pass a Code through")
	}
	if Of(errors.New("boom")) != Generic {
		t.Error("Of should default to Generic")
	}
}

func TestClassifyTimeouts(t *testing.T) {
	if Classify(context.DeadlineExceeded) != Timeout {
		t.Error("deadline exceeded should classify as Timeout")
	}
	if Classify(Timeout) != Timeout {
		t.Error("a Timeout code should stay Timeout")
	}
	if Classify(errors.New("i/o fault")) != Generic {
		t.Error("unknown errors should classify as Generic")
	}
}
