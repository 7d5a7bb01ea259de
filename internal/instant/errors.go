package instant

import (
	"errors"
	"fmt"
)

// ErrTypeMismatch is the sentinel matched by every *MismatchError.
var ErrTypeMismatch = errors.New("instant type mismatch")

// MismatchError reports an attempt to compare or combine instants of
// incompatible representations.
type MismatchError struct {
	// Op is the operation that failed: "compare", "subtract", "add" or
	// "uniform".
	Op    string
	Left  Kind
	Right Kind
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: cannot %s %s with %s", ErrTypeMismatch, e.Op, e.Left, e.Right)
}

// Unwrap lets errors.Is(err, ErrTypeMismatch) match.
func (e *MismatchError) Unwrap() error {
	return ErrTypeMismatch
}

func mustMatch(op string, left, right Kind) {
	if left != right {
		panic(&MismatchError{Op: op, Left: left, Right: right})
	}
}

// Guard runs fn and converts a *MismatchError panic raised inside it into a
// returned error. Any other panic propagates unchanged.
func Guard(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if me, ok := r.(*MismatchError); ok {
			err = me
			return
		}
		panic(r)
	}()
	fn()
	return nil
}

// Uniform returns a *MismatchError if values do not all share one valid
// kind.
func Uniform(values ...Value) error {
	if len(values) == 0 {
		return nil
	}
	want := values[0].Kind()
	for _, v := range values {
		if v.Kind() == KindInvalid {
			return &MismatchError{Op: "uniform", Left: want, Right: KindInvalid}
		}
		if v.Kind() != want {
			return &MismatchError{Op: "uniform", Left: want, Right: v.Kind()}
		}
	}
	return nil
}
