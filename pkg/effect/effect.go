// Package effect provides the executable actions handlers fire in
// response to named events: vibration pulses, elevation commands, and
// log lines, composable into ordered sequences.
package effect

import (
	"errors"
	"log/slog"

	"github.com/touchpoint-hw/go-touchpoint/pkg/ui"
)

// Hardware is the slice of the hardware command interface effects need.
// Calls are fire-and-forget: an error means the command was not accepted
// for send, not that delivery failed.
type Hardware interface {
	SendElevation(value float64) error
	AddElevationOffset(delta float64) error
	SendVibration(amplitude, frequencyHz, durationMS float64) error
}

// Params carries the event's keyword parameters, e.g. the typed
// character for typedCharacter events.
type Params map[string]any

// Context is handed to every effect application.
type Context struct {
	Hardware Hardware
	Log      *slog.Logger
}

// Logger returns the context logger, falling back to the default.
func (c *Context) Logger() *slog.Logger {
	if c != nil && c.Log != nil {
		return c.Log
	}
	return slog.Default()
}

// ErrNoHardware is returned by hardware effects when the context has no
// hardware link wired.
var ErrNoHardware = errors.New("effect: no hardware in context")

// Effect is a single executable action. obj is the subject of an object
// event or nil for global events. Implementations may perform hardware
// I/O but must not block beyond queueing a command.
type Effect interface {
	Apply(ctx *Context, obj ui.Object, params Params) error
}

// Vibration triggers a vibration pulse on each application. A zero
// amplitude, zero duration pulse is the canonical quiet command.
type Vibration struct {
	Amplitude   float64 // 0..1
	FrequencyHz float64
	DurationMS  float64 // 0 = continuous until cancelled
}

func (e *Vibration) Apply(ctx *Context, _ ui.Object, _ Params) error {
	if ctx == nil || ctx.Hardware == nil {
		return ErrNoHardware
	}
	return ctx.Hardware.SendVibration(e.Amplitude, e.FrequencyHz, e.DurationMS)
}

// StopVibration returns the quiet command.
func StopVibration() *Vibration {
	return &Vibration{}
}

// Elevation sets the absolute device elevation. Repeated identical
// applications are idempotent at the device.
type Elevation struct {
	Value float64
}

func (e *Elevation) Apply(ctx *Context, _ ui.Object, _ Params) error {
	if ctx == nil || ctx.Hardware == nil {
		return ErrNoHardware
	}
	return ctx.Hardware.SendElevation(e.Value)
}

// ElevationOffset nudges the device elevation by a delta relative to the
// current absolute setting.
type ElevationOffset struct {
	Delta float64
}

func (e *ElevationOffset) Apply(ctx *Context, _ ui.Object, _ Params) error {
	if ctx == nil || ctx.Hardware == nil {
		return ErrNoHardware
	}
	return ctx.Hardware.AddElevationOffset(e.Delta)
}

// Log writes a structured line describing the event subject. Used in the
// default configuration to trace enter/leave transitions.
type Log struct {
	Message string
}

func (e *Log) Apply(ctx *Context, obj ui.Object, _ Params) error {
	if obj == nil {
		ctx.Logger().Info(e.Message)
		return nil
	}
	name, _ := obj.Name()
	role, _ := obj.Role()
	ctx.Logger().Info(e.Message, "name", name, "role", role.String())
	return nil
}

// Func adapts a plain function to the Effect interface.
type Func func(ctx *Context, obj ui.Object, params Params) error

func (f Func) Apply(ctx *Context, obj ui.Object, params Params) error {
	return f(ctx, obj, params)
}
