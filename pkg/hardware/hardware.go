// Package hardware provides the command interface to the Touchpoint
// tactile device and a queued dispatcher that keeps slow links from
// stalling the engine loops.
//
// Delivery is fire-and-forget: once a command is accepted for send the
// engine treats it as done. Connection lifecycle and retries belong to
// the link, not to the callers.
package hardware

import "errors"

// Commander is the command surface the dispatch core and elevation
// pipeline target.
//
// Repeated identical SendElevation calls are safe no-ops at the device;
// SendVibration always triggers a new physical pulse, and a zero
// amplitude, zero duration call cancels a continuous vibration.
type Commander interface {
	SendElevation(value float64) error
	AddElevationOffset(delta float64) error
	SendVibration(amplitude, frequencyHz, durationMS float64) error
	SetMaxElevationSpeed(unitsPerSecond float64) error
}

// Link moves framed packets to the device. Implementations own the
// transport (UART, UDP to the emulator) and its connection lifecycle.
type Link interface {
	Send(pkt []byte) error
	Close() error
}

var (
	// ErrQueueFull is logged (not returned) when the send queue
	// overflows; the command is dropped.
	ErrQueueFull = errors.New("hardware: send queue full")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("hardware: commander closed")
)
