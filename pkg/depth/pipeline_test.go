package depth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/touchpoint-hw/go-touchpoint/pkg/ui"
)

// stubGrabber returns a fixed intensity per region, or fails for rects
// listed in failFor.
type stubGrabber struct {
	mu        sync.Mutex
	intensity map[ui.Rect]float64
	failFor   map[ui.Rect]bool
}

func newStubGrabber() *stubGrabber {
	return &stubGrabber{
		intensity: make(map[ui.Rect]float64),
		failFor:   make(map[ui.Rect]bool),
	}
}

func (g *stubGrabber) Grab(rect ui.Rect) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failFor[rect] {
		return nil, errors.New("capture denied")
	}
	// Encode the intensity in one byte; the stub converter expands it.
	return []byte{byte(g.intensity[rect] * 255)}, nil
}

// stubConvert expands a one-byte frame into a uniform 10x10 map.
func stubConvert(encoded []byte, _ ConvertOptions) (*Map, error) {
	if len(encoded) != 1 {
		return nil, errors.New("bad frame")
	}
	return Uniform(10, 10, float64(encoded[0])/255.0), nil
}

type elevationRecorder struct {
	mu     sync.Mutex
	values []float64
}

func (r *elevationRecorder) SendElevation(v float64) error {
	r.mu.Lock()
	r.values = append(r.values, v)
	r.mu.Unlock()
	return nil
}

func (r *elevationRecorder) recorded() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, len(r.values))
	copy(out, r.values)
	return out
}

func newTestPipeline(g Grabber, hw ElevationSender, pos ui.Point) *Pipeline {
	p := New(DefaultConfig(), g, hw, func() ui.Point { return pos }, nil)
	p.SetConverter(stubConvert)
	return p
}

func TestCadenceSwitchesWithRegionSet(t *testing.T) {
	p := newTestPipeline(newStubGrabber(), &elevationRecorder{}, ui.Point{})

	if p.Period() != DefaultIdlePeriod {
		t.Fatalf("idle period expected with no regions, got %v", p.Period())
	}

	owner := uuid.New()
	p.AddRegion(owner, ui.Rect{Left: 0, Top: 0, Right: 10, Bottom: 10})
	if p.Period() != DefaultFastPeriod {
		t.Fatalf("fast period expected immediately after first region, got %v", p.Period())
	}

	p.RemoveRegion(owner)
	if p.Period() != DefaultIdlePeriod {
		t.Fatalf("idle period expected after last region removed, got %v", p.Period())
	}
}

func TestCycleDerivesElevationFromDepth(t *testing.T) {
	grabber := newStubGrabber()
	hw := &elevationRecorder{}
	region := ui.Rect{Left: 100, Top: 100, Right: 200, Bottom: 200}
	grabber.intensity[region] = 1.0 // fully bright region

	p := newTestPipeline(grabber, hw, ui.Point{X: 150, Y: 150})
	p.AddRegion(uuid.New(), region)
	p.Cycle()

	got := hw.recorded()
	if len(got) != 1 {
		t.Fatalf("elevations = %v; want one send", got)
	}
	// (1.0 - 0.5) * 2 * 0.5 = 0.5
	if got[0] != 0.5 {
		t.Errorf("elevation = %v; want 0.5", got[0])
	}
}

func TestPointerOutsideRegionSkipsElevation(t *testing.T) {
	grabber := newStubGrabber()
	hw := &elevationRecorder{}
	region := ui.Rect{Left: 100, Top: 100, Right: 200, Bottom: 200}

	p := newTestPipeline(grabber, hw, ui.Point{X: 10, Y: 10})
	owner := uuid.New()
	p.AddRegion(owner, region)
	p.Cycle()

	if len(hw.recorded()) != 0 {
		t.Fatal("no elevation when the pointer is outside the region")
	}
	// The depth map is still published for the region.
	if _, ok := p.DepthMap(owner); !ok {
		t.Fatal("depth map must be captured regardless of pointer position")
	}
}

func TestRegionFailureIsolation(t *testing.T) {
	grabber := newStubGrabber()
	hw := &elevationRecorder{}
	bad := ui.Rect{Left: 0, Top: 0, Right: 10, Bottom: 10}
	good := ui.Rect{Left: 100, Top: 0, Right: 200, Bottom: 100}
	grabber.failFor[bad] = true
	grabber.intensity[good] = 0.42

	p := newTestPipeline(grabber, hw, ui.Point{X: 150, Y: 50})
	badOwner, goodOwner := uuid.New(), uuid.New()
	p.AddRegion(badOwner, bad)
	p.AddRegion(goodOwner, good)
	p.Cycle()

	if len(hw.recorded()) != 1 {
		t.Fatalf("the failing region must not abort the other, elevations = %v", hw.recorded())
	}
	if _, ok := p.DepthMap(badOwner); ok {
		t.Fatal("failed capture must not publish a map")
	}
	if _, ok := p.DepthMap(goodOwner); !ok {
		t.Fatal("healthy region must publish its map")
	}

	// The failing region stays registered until a leave removes it.
	if len(p.Regions()) != 2 {
		t.Fatalf("regions = %v; capture failure must not deregister", p.Regions())
	}
}

func TestAddRegionReplacesSameOwner(t *testing.T) {
	p := newTestPipeline(newStubGrabber(), &elevationRecorder{}, ui.Point{})
	owner := uuid.New()

	first := ui.Rect{Left: 0, Top: 0, Right: 10, Bottom: 10}
	second := ui.Rect{Left: 20, Top: 20, Right: 40, Bottom: 40}
	p.AddRegion(owner, first)
	p.AddRegion(owner, second)

	regions := p.Regions()
	if len(regions) != 1 || regions[0].Rect != second {
		t.Fatalf("regions = %v; re-adding must replace the rect", regions)
	}
}

func TestRemoveRegionDiscardsDepthMap(t *testing.T) {
	grabber := newStubGrabber()
	region := ui.Rect{Left: 0, Top: 0, Right: 10, Bottom: 10}
	grabber.intensity[region] = 0.5

	p := newTestPipeline(grabber, &elevationRecorder{}, ui.Point{X: 50, Y: 50})
	owner := uuid.New()
	p.AddRegion(owner, region)
	p.Cycle()

	if _, ok := p.DepthMap(owner); !ok {
		t.Fatal("map expected after capture")
	}
	p.RemoveRegion(owner)
	if _, ok := p.DepthMap(owner); ok {
		t.Fatal("map must be discarded with its region")
	}
}

func TestRunExitsOnCancel(t *testing.T) {
	p := newTestPipeline(newStubGrabber(), &elevationRecorder{}, ui.Point{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop must observe cancellation within one period")
	}
}
