package depth

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/touchpoint-hw/go-touchpoint/pkg/ui"
)

// Grabber captures the pixels of a screen rectangle as an encoded
// frame. It is an external collaborator: a failed capture (offscreen,
// permission) must return an error, never an empty frame.
type Grabber interface {
	Grab(rect ui.Rect) ([]byte, error)
}

// ElevationSender is the slice of the hardware commander the pipeline
// drives.
type ElevationSender interface {
	SendElevation(value float64) error
}

// Region is an active capture region owned by a graphic handler. The
// owner reference only keys the entry; the pipeline does not manage the
// handler's lifecycle.
type Region struct {
	Owner uuid.UUID
	Rect  ui.Rect
}

// Pipeline cadence and calibration defaults, matching the original
// device tuning.
const (
	DefaultFastPeriod     = 10 * time.Millisecond
	DefaultIdlePeriod     = 50 * time.Millisecond
	DefaultElevationScale = 0.5
)

// Config tunes the capture pipeline.
type Config struct {
	// FastPeriod is the poll period while at least one region is
	// active; IdlePeriod applies when none are. The switch is checked
	// every cycle.
	FastPeriod time.Duration
	IdlePeriod time.Duration

	// ElevationScale maps centered depth to the device elevation range:
	// elevation = (depth - 0.5) * 2 * ElevationScale.
	ElevationScale float64

	Convert ConvertOptions
}

// DefaultConfig returns the original device calibration.
func DefaultConfig() Config {
	return Config{
		FastPeriod:     DefaultFastPeriod,
		IdlePeriod:     DefaultIdlePeriod,
		ElevationScale: DefaultElevationScale,
		Convert:        DefaultConvertOptions(),
	}
}

// Pipeline runs the capture loop: for every active region it grabs the
// pixels, derives a depth map, samples it under the pointer, and
// forwards the elevation to the hardware. Regions are independent; one
// region failing to capture never aborts the others.
//
// The pipeline is the only writer of the region set and the depth maps.
// Each is guarded by its own lock, never held across a capture or
// hardware call.
type Pipeline struct {
	cfg      Config
	grabber  Grabber
	hw       ElevationSender
	position func() ui.Point
	convert  Converter
	log      *slog.Logger

	regionMu sync.Mutex
	regions  []Region

	depthMu sync.Mutex
	depth   map[uuid.UUID]*Map
}

// New creates a pipeline. position reads the tracker's current pointer
// position; convert may be nil to use the OpenCV path.
func New(cfg Config, grabber Grabber, hw ElevationSender, position func() ui.Point, logger *slog.Logger) *Pipeline {
	if cfg.FastPeriod <= 0 {
		cfg.FastPeriod = DefaultFastPeriod
	}
	if cfg.IdlePeriod <= 0 {
		cfg.IdlePeriod = DefaultIdlePeriod
	}
	if cfg.ElevationScale == 0 {
		cfg.ElevationScale = DefaultElevationScale
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:      cfg,
		grabber:  grabber,
		hw:       hw,
		position: position,
		convert:  FromEncoded,
		log:      logger,
		depth:    make(map[uuid.UUID]*Map),
	}
}

// SetConverter overrides the frame conversion, e.g. FromEncodedImage on
// hosts without OpenCV. Call before Run.
func (p *Pipeline) SetConverter(c Converter) {
	if c != nil {
		p.convert = c
	}
}

// AddRegion activates capture for a rectangle. Re-adding for the same
// owner replaces the rectangle.
func (p *Pipeline) AddRegion(owner uuid.UUID, rect ui.Rect) {
	p.regionMu.Lock()
	defer p.regionMu.Unlock()
	for i := range p.regions {
		if p.regions[i].Owner == owner {
			p.regions[i].Rect = rect
			return
		}
	}
	p.regions = append(p.regions, Region{Owner: owner, Rect: rect})
}

// RemoveRegion deactivates the owner's region and discards its map.
func (p *Pipeline) RemoveRegion(owner uuid.UUID) {
	p.regionMu.Lock()
	for i := range p.regions {
		if p.regions[i].Owner == owner {
			p.regions = append(p.regions[:i], p.regions[i+1:]...)
			break
		}
	}
	p.regionMu.Unlock()

	p.depthMu.Lock()
	delete(p.depth, owner)
	p.depthMu.Unlock()
}

// Regions returns a snapshot of the active regions.
func (p *Pipeline) Regions() []Region {
	p.regionMu.Lock()
	defer p.regionMu.Unlock()
	out := make([]Region, len(p.regions))
	copy(out, p.regions)
	return out
}

// DepthMap returns the owner's latest depth map, if any.
func (p *Pipeline) DepthMap(owner uuid.UUID) (*Map, bool) {
	p.depthMu.Lock()
	defer p.depthMu.Unlock()
	m, ok := p.depth[owner]
	return m, ok
}

// Period returns the cadence the next cycle will use.
func (p *Pipeline) Period() time.Duration {
	p.regionMu.Lock()
	active := len(p.regions) > 0
	p.regionMu.Unlock()
	if active {
		return p.cfg.FastPeriod
	}
	return p.cfg.IdlePeriod
}

// Run executes the capture loop until ctx is cancelled. The cadence is
// re-evaluated every cycle so adding the first region switches to the
// fast period on the very next cycle.
func (p *Pipeline) Run(ctx context.Context) {
	timer := time.NewTimer(p.Period())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			p.Cycle()
			timer.Reset(p.Period())
		}
	}
}

// Cycle captures every active region once.
func (p *Pipeline) Cycle() {
	for _, region := range p.Regions() {
		p.captureRegion(region)
	}
}

// captureRegion processes one region: grab, convert, publish the map,
// sample under the pointer, send elevation. Any failure skips this
// region for this cycle only.
func (p *Pipeline) captureRegion(region Region) {
	frame, err := p.grabber.Grab(region.Rect)
	if err != nil {
		p.log.Debug("capture failed", "owner", region.Owner, "err", err)
		return
	}

	m, err := p.convert(frame, p.cfg.Convert)
	if err != nil {
		p.log.Debug("frame conversion failed", "owner", region.Owner, "err", err)
		return
	}

	p.depthMu.Lock()
	p.depth[region.Owner] = m
	p.depthMu.Unlock()

	pos := p.position()
	if !region.Rect.Contains(pos.X, pos.Y) {
		return
	}
	sample := m.SampleAt(region.Rect, pos)
	elevation := (sample - 0.5) * 2 * p.cfg.ElevationScale

	if err := p.hw.SendElevation(elevation); err != nil {
		p.log.Debug("elevation send failed", "owner", region.Owner, "err", err)
	}
}
