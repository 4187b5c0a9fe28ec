package config

import (
	"fmt"

	"github.com/touchpoint-hw/go-touchpoint/pkg/handler"
	"github.com/touchpoint-hw/go-touchpoint/pkg/ui"
)

var knownEvents = func() map[string]bool {
	m := make(map[string]bool, len(handler.KnownEvents))
	for _, e := range handler.KnownEvents {
		m[e] = true
	}
	return m
}()

// Validate checks the whole document. Any error here is fatal at
// startup; once the loops run no configuration error can occur.
func (c *Config) Validate() error {
	switch c.Hardware.Link {
	case "udp", "none":
	default:
		return fmt.Errorf("hardware.link: unknown link %q", c.Hardware.Link)
	}
	if c.Hardware.Link == "udp" && c.Hardware.Addr == "" {
		return fmt.Errorf("hardware.addr: required for udp link")
	}
	if c.Tracker.PeriodMS <= 0 {
		return fmt.Errorf("tracker.period_ms: must be positive")
	}
	if c.Capture.FastPeriodMS <= 0 || c.Capture.IdlePeriodMS <= 0 {
		return fmt.Errorf("capture periods must be positive")
	}
	if c.Capture.KernelSize < 0 || (c.Capture.KernelSize > 1 && c.Capture.KernelSize%2 == 0) {
		return fmt.Errorf("capture.kernel_size: must be odd or zero")
	}

	for i, spec := range c.ObjectHandlers {
		if err := spec.validate(true); err != nil {
			return fmt.Errorf("object_handler[%d]: %w", i, err)
		}
	}
	for i, spec := range c.GlobalHandlers {
		if err := spec.validate(false); err != nil {
			return fmt.Errorf("global_handler[%d]: %w", i, err)
		}
	}
	return nil
}

func (s *HandlerSpec) validate(object bool) error {
	if object {
		switch s.Kind {
		case "object", "graphic":
		default:
			return fmt.Errorf("unknown object handler kind %q", s.Kind)
		}
	} else {
		switch s.Kind {
		case "global", "screen_border":
		default:
			return fmt.Errorf("unknown global handler kind %q", s.Kind)
		}
	}

	if s.Filter != nil {
		if err := s.Filter.validate(); err != nil {
			return err
		}
	}
	for event, effects := range s.Effects {
		if !knownEvents[event] {
			return fmt.Errorf("unknown event %q", event)
		}
		if len(effects) == 0 {
			return fmt.Errorf("event %q: empty effect list", event)
		}
		for i, e := range effects {
			if err := e.validate(); err != nil {
				return fmt.Errorf("event %q effect[%d]: %w", event, i, err)
			}
		}
	}
	return nil
}

func (s *FilterSpec) validate() error {
	switch s.Kind {
	case "accept_all", "graphic", "has_location":
	case "roles":
		if len(s.Roles) == 0 {
			return fmt.Errorf("roles filter: empty role list")
		}
		for _, name := range s.Roles {
			if _, ok := ui.ParseRole(name); !ok {
				return fmt.Errorf("roles filter: unknown role %q", name)
			}
		}
	case "attribute":
		if s.Key == "" {
			return fmt.Errorf("attribute filter: key is required")
		}
	case "combo":
		for i := range s.Include {
			if err := s.Include[i].validate(); err != nil {
				return fmt.Errorf("include[%d]: %w", i, err)
			}
		}
		for i := range s.Exclude {
			if err := s.Exclude[i].validate(); err != nil {
				return fmt.Errorf("exclude[%d]: %w", i, err)
			}
		}
	default:
		return fmt.Errorf("unknown filter kind %q", s.Kind)
	}
	return nil
}

func (s *EffectSpec) validate() error {
	switch s.Kind {
	case "vibration":
		if s.Amplitude < 0 || s.Amplitude > 1 {
			return fmt.Errorf("vibration amplitude %v out of [0,1]", s.Amplitude)
		}
		if s.FrequencyHz < 0 {
			return fmt.Errorf("vibration frequency %v is negative", s.FrequencyHz)
		}
		if s.DurationMS < 0 {
			return fmt.Errorf("vibration duration %v is negative", s.DurationMS)
		}
	case "elevation", "elevation_offset":
	case "log":
		if s.Message == "" {
			return fmt.Errorf("log effect: message is required")
		}
	default:
		return fmt.Errorf("unknown effect kind %q", s.Kind)
	}
	return nil
}
