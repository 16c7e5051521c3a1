package loopback

import errors "gopkg.in/src-d/go-errors.v1"

var (
	ErrInvalidConfig    = errors.NewKind("invalid loopback configuration: %s")
	ErrPacketTooLarge   = errors.NewKind("packet of %d bytes exceeds the limit of %d bytes")
	ErrTooManySegments  = errors.NewKind("packet of %d segments exceeds the limit of %d segments")
	ErrMempoolExhausted = errors.NewKind("no free buffer in the memory pool")
	ErrUnregistered     = errors.NewKind("zero-copy entry of %d bytes is not in registered memory")
	ErrUnknownConn      = errors.NewKind("unknown connection %d")
	ErrClosed           = errors.NewKind("connection closed")
)
