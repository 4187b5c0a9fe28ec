package config

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/touchpoint-hw/go-touchpoint/pkg/handler"
	"github.com/touchpoint-hw/go-touchpoint/pkg/ui"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestParseOverridesDefaults(t *testing.T) {
	doc := `
log_level = "debug"

[hardware]
link = "none"

[capture]
kernel_size = 5
invert = true

[[object_handler]]
kind = "object"

[object_handler.filter]
kind = "roles"
roles = ["button", "link"]

[object_handler.effects]
enter = [{kind = "vibration", amplitude = 0.2, frequency_hz = 120, duration_ms = 5}]
`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "none", cfg.Hardware.Link)
	assert.Equal(t, 5, cfg.Capture.KernelSize)
	assert.True(t, cfg.Capture.Invert)
	// Untouched sections keep their defaults.
	assert.Equal(t, 10, cfg.Tracker.PeriodMS)
	assert.Equal(t, 0.5, cfg.Capture.ElevationScale)

	require.Len(t, cfg.ObjectHandlers, 1)
	require.NotNil(t, cfg.ObjectHandlers[0].Filter)
	assert.Equal(t, []string{"button", "link"}, cfg.ObjectHandlers[0].Filter.Roles)
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown link", func(c *Config) { c.Hardware.Link = "serial" }},
		{"udp without addr", func(c *Config) { c.Hardware.Addr = "" }},
		{"zero tracker period", func(c *Config) { c.Tracker.PeriodMS = 0 }},
		{"even kernel", func(c *Config) { c.Capture.KernelSize = 4 }},
		{"unknown handler kind", func(c *Config) {
			c.ObjectHandlers[0].Kind = "radial"
		}},
		{"global kind on object list", func(c *Config) {
			c.ObjectHandlers[0].Kind = "screen_border"
		}},
		{"unknown event", func(c *Config) {
			c.ObjectHandlers[0].Effects["hover"] = []EffectSpec{{Kind: "log", Message: "x"}}
		}},
		{"empty effect list", func(c *Config) {
			c.ObjectHandlers[0].Effects["enter"] = nil
		}},
		{"amplitude out of range", func(c *Config) {
			c.ObjectHandlers[0].Effects["enter"] = []EffectSpec{
				{Kind: "vibration", Amplitude: 1.5},
			}
		}},
		{"log without message", func(c *Config) {
			c.ObjectHandlers[0].Effects["enter"] = []EffectSpec{{Kind: "log"}}
		}},
		{"unknown role", func(c *Config) {
			c.ObjectHandlers[0].Filter = &FilterSpec{Kind: "roles", Roles: []string{"widget"}}
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Default()
			c.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

type nopRegistrar struct{}

func (nopRegistrar) AddRegion(uuid.UUID, ui.Rect) {}
func (nopRegistrar) RemoveRegion(uuid.UUID)       {}

func TestBuildRegistryFromDefaults(t *testing.T) {
	reg, err := Default().BuildRegistry(nopRegistrar{})
	require.NoError(t, err)
	require.NotNil(t, reg)
}

func TestBuildRegistryComboFilter(t *testing.T) {
	doc := `
[hardware]
link = "none"

[[object_handler]]
kind = "object"

[object_handler.filter]
kind = "combo"
include = [{kind = "graphic"}, {kind = "attribute", key = "tag", value = "canvas"}]
exclude = [{kind = "roles", roles = ["window"]}]

[object_handler.effects]
enter = [{kind = "elevation", value = 0.3}, {kind = "log", message = "in"}]
`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)

	reg, err := cfg.BuildRegistry(nopRegistrar{})
	require.NoError(t, err)

	// The include filters match graphics; a plain window must not fire.
	graphic := &ui.FakeObject{Handle: 1, Nm: "chart", Rl: ui.RoleGraphic,
		Loc: ui.Rect{Left: 0, Top: 0, Right: 10, Bottom: 10}}
	window := &ui.FakeObject{Handle: 2, Nm: "shell", Rl: ui.RoleWindow,
		Loc: ui.Rect{Left: 0, Top: 0, Right: 10, Bottom: 10}}

	assert.True(t, anyMatches(reg, graphic))
	assert.False(t, anyMatches(reg, window))
}

func anyMatches(reg *handler.Registry, obj ui.Object) bool {
	for _, h := range reg.ObjectHandlers() {
		if h.Matches(obj) {
			return true
		}
	}
	return false
}
