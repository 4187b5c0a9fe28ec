// Package engine assembles the full feedback engine: configuration in,
// three cooperating loops out. The host integration hands it the
// accessibility collaborators and forwards UI events into HandleEvent.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/touchpoint-hw/go-touchpoint/internal/config"
	"github.com/touchpoint-hw/go-touchpoint/internal/log"
	"github.com/touchpoint-hw/go-touchpoint/pkg/depth"
	"github.com/touchpoint-hw/go-touchpoint/pkg/effect"
	"github.com/touchpoint-hw/go-touchpoint/pkg/handler"
	"github.com/touchpoint-hw/go-touchpoint/pkg/hardware"
	"github.com/touchpoint-hw/go-touchpoint/pkg/track"
	"github.com/touchpoint-hw/go-touchpoint/pkg/ui"
	"github.com/touchpoint-hw/go-touchpoint/pkg/web"
)

// statePublishPeriod paces debug feed snapshots. The feed is advisory;
// it never needs loop-rate updates.
const statePublishPeriod = 100 * time.Millisecond

// Collaborators are the host-provided external interfaces.
type Collaborators struct {
	Pointer  ui.PointerSource
	Resolver ui.PointResolver
	Screen   ui.ScreenInfo
	Grabber  depth.Grabber

	// Hardware overrides the configured link when non-nil (tests, the
	// emulator harness).
	Hardware hardware.Commander

	// Convert overrides the frame conversion when non-nil, for hosts
	// built without OpenCV.
	Convert depth.Converter
}

// Engine wires the registry, tracker, capture pipeline, and hardware
// shim together and owns their lifecycles.
type Engine struct {
	cfg      *config.Config
	hw       hardware.Commander
	registry *handler.Registry
	tracker  *track.Tracker
	pipeline *depth.Pipeline
	web      *web.Server
	effects  *effect.Context

	ownsHW bool
}

// New builds an engine from configuration and collaborators. Handler
// construction errors are fatal; nothing is retried.
func New(cfg *config.Config, collab Collaborators) (*Engine, error) {
	if collab.Pointer == nil || collab.Resolver == nil || collab.Screen == nil {
		return nil, fmt.Errorf("engine: pointer, resolver, and screen collaborators are required")
	}

	e := &Engine{cfg: cfg}

	switch {
	case collab.Hardware != nil:
		e.hw = collab.Hardware
	case cfg.Hardware.Link == "udp":
		link, err := hardware.DialUDP(cfg.Hardware.Addr)
		if err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
		e.hw = hardware.NewQueuedCommander(link, log.L())
		e.ownsHW = true
	default:
		e.hw = hardware.Nop{}
	}

	e.effects = &effect.Context{Hardware: e.hw, Log: log.L()}

	pipelineCfg := depth.Config{
		FastPeriod:     time.Duration(cfg.Capture.FastPeriodMS) * time.Millisecond,
		IdlePeriod:     time.Duration(cfg.Capture.IdlePeriodMS) * time.Millisecond,
		ElevationScale: cfg.Capture.ElevationScale,
		Convert: depth.ConvertOptions{
			KernelSize: cfg.Capture.KernelSize,
			Invert:     cfg.Capture.Invert,
		},
	}
	grabber := collab.Grabber
	if grabber == nil {
		grabber = noGrabber{}
	}

	// The pipeline reads pointer position from the tracker, which does
	// not exist yet; route through the engine to break the cycle.
	e.pipeline = depth.New(pipelineCfg, grabber, e.hw, func() ui.Point {
		return e.tracker.Position()
	}, log.L())
	if collab.Convert != nil {
		e.pipeline.SetConverter(collab.Convert)
	}

	registry, err := cfg.BuildRegistry(e.pipeline)
	if err != nil {
		return nil, fmt.Errorf("engine: build handlers: %w", err)
	}
	e.registry = registry

	trackerCfg := track.Config{Period: time.Duration(cfg.Tracker.PeriodMS) * time.Millisecond}
	e.tracker = track.New(trackerCfg, collab.Pointer, collab.Resolver, collab.Screen, registry, e.effects, log.L())

	if cfg.Web.Enabled {
		e.web = web.NewServer(cfg.Web.Port, log.L())
	}

	return e, nil
}

// Registry exposes the handler registry for host wiring and tests.
func (e *Engine) Registry() *handler.Registry { return e.registry }

// Pipeline exposes the capture pipeline.
func (e *Engine) Pipeline() *depth.Pipeline { return e.pipeline }

// Tracker exposes the identity tracker.
func (e *Engine) Tracker() *track.Tracker { return e.tracker }

// Hardware exposes the active commander.
func (e *Engine) Hardware() hardware.Commander { return e.hw }

// HandleEvent is the host event entry point. It routes synchronously
// and returns promptly: effects only queue hardware commands.
func (e *Engine) HandleEvent(event string, obj ui.Object, params effect.Params) {
	e.registry.HandleObjectEvent(e.effects, event, obj, params)
}

// Run starts the loops and blocks until ctx is cancelled. All loops
// observe cancellation within one polling period. In-flight hardware
// commands are not guaranteed to be delivered after return.
func (e *Engine) Run(ctx context.Context) error {
	if e.cfg.Hardware.MaxElevationSpeed > 0 {
		if err := e.hw.SetMaxElevationSpeed(e.cfg.Hardware.MaxElevationSpeed); err != nil {
			log.Warn("set max elevation speed failed", "err", err)
		}
	}

	if e.web != nil {
		e.web.StartAsync()
		go e.publishState(ctx)
	}

	go e.pipeline.Run(ctx)
	e.tracker.Run(ctx)

	if e.web != nil {
		if err := e.web.Shutdown(); err != nil {
			log.Warn("debug feed shutdown failed", "err", err)
		}
	}
	if e.ownsHW {
		if closer, ok := e.hw.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				log.Warn("hardware close failed", "err", err)
			}
		}
	}
	return nil
}

// publishState pushes periodic snapshots to the debug feed.
func (e *Engine) publishState(ctx context.Context) {
	ticker := time.NewTicker(statePublishPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.web.UpdateState(e.snapshot())
		}
	}
}

func (e *Engine) snapshot() web.EngineState {
	pos := e.tracker.Position()
	identity, _ := e.tracker.Current()

	state := web.EngineState{
		PointerX:      pos.X,
		PointerY:      pos.Y,
		ObjectName:    identity.Name,
		ObjectRole:    identity.Role.String(),
		ActiveRegions: len(e.pipeline.Regions()),
	}
	if q, ok := e.hw.(*hardware.QueuedCommander); ok {
		state.Elevation = q.Elevation()
		state.DroppedCmds = q.Dropped()
	}
	return state
}

// noGrabber fails every capture; used when the host provides no pixel
// source. Regions still register, elevation updates are skipped.
type noGrabber struct{}

func (noGrabber) Grab(ui.Rect) ([]byte, error) {
	return nil, fmt.Errorf("no pixel capture collaborator configured")
}
