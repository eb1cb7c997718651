package util

import (
	"errors"
	"testing"
)

func TestWrapError(t *testing.T) {
	t.Parallel()

	err := WrapError("foo", errors.New("bar"))
	if s := err.Error(); s != "foo: bar" {
		t.Fatalf("unexpected error message: %s", s)
	}
}

func TestWaterfall(t *testing.T) {
	t.Parallel()

	// All pass
	var i int
	fns := []func() error{
		func() error {
			i++
			return nil
		},
		func() error {
			i++
			return nil
		},
	}
	if err := Waterfall(fns...); err != nil {
		t.Fatal(err)
	}
	if i != 2 {
		t.Fatalf("not all functions executed: %d", i)
	}

	// First fails
	i = 0
	stdErr := errors.New("foo")
	fns = []func() error{
		func() error {
			i++
			return stdErr
		},
		func() error {
			i++
			return nil
		},
	}
	if err := Waterfall(fns...); err != stdErr {
		t.Fatalf("unexpected error: %#v", err)
	}
	if i != 1 {
		t.Fatalf("execution not aborted on error: %d", i)
	}
}
