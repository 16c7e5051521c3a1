package cornflakes

import (
	"fmt"

	errors "gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrCapacity is returned when a header buffer, a scatter-gather array
	// or a list is too small for the object being serialized. It is always
	// detected before any byte of the output is written.
	ErrCapacity = errors.NewKind("insufficient capacity: %s")

	// ErrMalformed is returned when a received buffer cannot be decoded,
	// typically because a forward pointer or a scalar read would run past
	// the end of the buffer.
	ErrMalformed = errors.NewKind("malformed buffer: %s")
)

// checkBounds returns ErrMalformed if [off, off+n) does not fit in a
// buffer of the given length.
func checkBounds(what string, length, off, n int) error {
	if !inBounds(length, off, n) {
		return ErrMalformed.New(fmt.Sprintf("%s [%d:%d] out of range for length %d", what, off, off+n, length))
	}
	return nil
}

// checkForward returns ErrMalformed unless a nested header at off lies past
// the slot at slot that points to it. Serialization always lays nested
// headers out after their slot, so every step of a decode moves forward.
func checkForward(what string, slot, off int) error {
	if off <= slot {
		return ErrMalformed.New(fmt.Sprintf("%s pointer at %d leads back to %d", what, slot, off))
	}
	return nil
}

// CheckHeader verifies that the window [off, off+n) of a header buffer is
// writable. Generated code calls it once before writing the fixed part of a
// message header so that the individual writes can skip their own checks.
func CheckHeader(header []byte, off, n int) error {
	if !inBounds(len(header), off, n) {
		return ErrCapacity.New(fmt.Sprintf("header [%d:%d] exceeds length %d", off, off+n, len(header)))
	}
	return nil
}

func inBounds(length, off, n int) bool {
	return off >= 0 && n >= 0 && off <= length && n <= length-off
}
