// Package echomsg holds the messages exchanged by the echo harness and the
// round-trip tests of the generated code.
package echomsg

//go:generate go run github.com/stealthrocket/cornflakes/cmd/cfgen echo.yaml
