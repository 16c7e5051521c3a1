package cornflakes

import (
	"encoding/binary"
	"math"
)

// Scalar is the set of fixed-width types stored inline in a message header
// or packed in a List.
type Scalar interface {
	int32 | int64 | uint32 | uint64 | float32 | float64
}

// ScalarSize returns the encoded width of T in bytes.
func ScalarSize[T Scalar]() int {
	var v T
	switch any(v).(type) {
	case int32, uint32, float32:
		return 4
	default:
		return 8
	}
}

// PutScalar encodes v in little-endian order at the start of b.
func PutScalar[T Scalar](b []byte, v T) {
	switch x := any(v).(type) {
	case int32:
		binary.LittleEndian.PutUint32(b, uint32(x))
	case uint32:
		binary.LittleEndian.PutUint32(b, x)
	case float32:
		binary.LittleEndian.PutUint32(b, math.Float32bits(x))
	case int64:
		binary.LittleEndian.PutUint64(b, uint64(x))
	case uint64:
		binary.LittleEndian.PutUint64(b, x)
	case float64:
		binary.LittleEndian.PutUint64(b, math.Float64bits(x))
	}
}

// GetScalar decodes a little-endian value from the start of b.
func GetScalar[T Scalar](b []byte) (v T) {
	switch p := any(&v).(type) {
	case *int32:
		*p = int32(binary.LittleEndian.Uint32(b))
	case *uint32:
		*p = binary.LittleEndian.Uint32(b)
	case *float32:
		*p = math.Float32frombits(binary.LittleEndian.Uint32(b))
	case *int64:
		*p = int64(binary.LittleEndian.Uint64(b))
	case *uint64:
		*p = binary.LittleEndian.Uint64(b)
	case *float64:
		*p = math.Float64frombits(binary.LittleEndian.Uint64(b))
	}
	return
}

// ReadScalar decodes the value stored at buf[offset:].
func ReadScalar[T Scalar](buf Buffer, offset int) (T, error) {
	b, err := buf.ContiguousSlice(offset, ScalarSize[T]())
	if err != nil {
		var zero T
		return zero, err
	}
	return GetScalar[T](b), nil
}

// ScalarEqual reports whether a and b have the same encoding. Floats are
// compared bit for bit, so a NaN equals itself once decoded.
func ScalarEqual[T Scalar](a, b T) bool {
	switch x := any(a).(type) {
	case float32:
		return math.Float32bits(x) == math.Float32bits(any(b).(float32))
	case float64:
		return math.Float64bits(x) == math.Float64bits(any(b).(float64))
	}
	return a == b
}
