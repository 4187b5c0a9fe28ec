package config

import (
	"fmt"

	"github.com/touchpoint-hw/go-touchpoint/pkg/effect"
	"github.com/touchpoint-hw/go-touchpoint/pkg/filter"
	"github.com/touchpoint-hw/go-touchpoint/pkg/handler"
	"github.com/touchpoint-hw/go-touchpoint/pkg/ui"
)

// BuildRegistry constructs the handler registry from the validated
// configuration. Graphic handlers register their capture regions with
// captures. The registry is immutable once returned.
func (c *Config) BuildRegistry(captures handler.CaptureRegistrar) (*handler.Registry, error) {
	reg := handler.NewRegistry()

	for i, spec := range c.ObjectHandlers {
		objFilter, err := buildObjectFilter(spec.Filter)
		if err != nil {
			return nil, fmt.Errorf("object_handler[%d]: %w", i, err)
		}
		effects, err := buildEffects(spec.Effects)
		if err != nil {
			return nil, fmt.Errorf("object_handler[%d]: %w", i, err)
		}

		switch spec.Kind {
		case "graphic":
			reg.AddObjectHandler(handler.NewGraphicHandler(objFilter, effects, captures))
		default:
			reg.AddObjectHandler(handler.NewObjectHandler(objFilter, effects))
		}
	}

	for i, spec := range c.GlobalHandlers {
		effects, err := buildEffects(spec.Effects)
		if err != nil {
			return nil, fmt.Errorf("global_handler[%d]: %w", i, err)
		}

		switch spec.Kind {
		case "screen_border":
			reg.AddGlobalHandler(handler.NewScreenBorderHandler(nil, effects))
		default:
			reg.AddGlobalHandler(handler.NewGlobalHandler(nil, effects, nil))
		}
	}

	return reg, nil
}

// buildObjectFilter builds the filter tree. A nil spec means the
// handler kind's default filter (accept-all, or the graphic filter for
// graphic handlers).
func buildObjectFilter(spec *FilterSpec) (filter.ObjectFilter, error) {
	if spec == nil {
		return nil, nil
	}
	switch spec.Kind {
	case "accept_all":
		return filter.AcceptAll{}, nil
	case "graphic":
		return filter.Graphic{}, nil
	case "has_location":
		return filter.HasLocation{}, nil
	case "roles":
		roles := make([]ui.Role, 0, len(spec.Roles))
		for _, name := range spec.Roles {
			role, ok := ui.ParseRole(name)
			if !ok {
				return nil, fmt.Errorf("unknown role %q", name)
			}
			roles = append(roles, role)
		}
		return filter.NewRoles(roles...), nil
	case "attribute":
		return &filter.Attribute{Key: spec.Key, Value: spec.Value}, nil
	case "combo":
		combo := &filter.Combo{}
		for i := range spec.Include {
			f, err := buildObjectFilter(&spec.Include[i])
			if err != nil {
				return nil, err
			}
			combo.Include = append(combo.Include, f)
		}
		for i := range spec.Exclude {
			f, err := buildObjectFilter(&spec.Exclude[i])
			if err != nil {
				return nil, err
			}
			combo.Exclude = append(combo.Exclude, f)
		}
		return combo, nil
	}
	return nil, fmt.Errorf("unknown filter kind %q", spec.Kind)
}

// buildEffects builds the event-to-effect map; multi-effect bindings
// become sequential combos.
func buildEffects(specs map[string][]EffectSpec) (map[string]effect.Effect, error) {
	out := make(map[string]effect.Effect, len(specs))
	for event, list := range specs {
		built := make([]effect.Effect, 0, len(list))
		for _, spec := range list {
			e, err := buildEffect(spec)
			if err != nil {
				return nil, fmt.Errorf("event %q: %w", event, err)
			}
			built = append(built, e)
		}
		if len(built) == 1 {
			out[event] = built[0]
		} else {
			out[event] = effect.NewCombo(built...)
		}
	}
	return out, nil
}

func buildEffect(spec EffectSpec) (effect.Effect, error) {
	switch spec.Kind {
	case "vibration":
		return &effect.Vibration{
			Amplitude:   spec.Amplitude,
			FrequencyHz: spec.FrequencyHz,
			DurationMS:  spec.DurationMS,
		}, nil
	case "elevation":
		return &effect.Elevation{Value: spec.Value}, nil
	case "elevation_offset":
		return &effect.ElevationOffset{Delta: spec.Delta}, nil
	case "log":
		return &effect.Log{Message: spec.Message}, nil
	}
	return nil, fmt.Errorf("unknown effect kind %q", spec.Kind)
}
