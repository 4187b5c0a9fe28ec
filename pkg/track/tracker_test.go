package track

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/touchpoint-hw/go-touchpoint/pkg/effect"
	"github.com/touchpoint-hw/go-touchpoint/pkg/filter"
	"github.com/touchpoint-hw/go-touchpoint/pkg/ui"
)

// recordingDispatch captures routed events in order.
type recordingDispatch struct {
	mu     sync.Mutex
	events []string // "event:name"
	ticks  int
}

func (d *recordingDispatch) HandleObjectEvent(_ *effect.Context, event string, obj ui.Object, _ effect.Params) {
	name := ""
	if obj != nil {
		name, _ = obj.Name()
	}
	d.mu.Lock()
	d.events = append(d.events, event+":"+name)
	d.mu.Unlock()
}

func (d *recordingDispatch) GlobalTick(*effect.Context, filter.GlobalState) {
	d.mu.Lock()
	d.ticks++
	d.mu.Unlock()
}

func (d *recordingDispatch) recorded() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.events))
	copy(out, d.events)
	return out
}

func newTestTracker(d *recordingDispatch) (*Tracker, *ui.FakeDesktop) {
	desktop := ui.NewFakeDesktop(1000, 800)
	tr := New(Config{}, desktop, desktop, desktop, d, &effect.Context{}, nil)
	return tr, desktop
}

func TestEnterOnFirstObject(t *testing.T) {
	d := &recordingDispatch{}
	tr, desktop := newTestTracker(d)
	desktop.Place(&ui.FakeObject{Handle: 1, Nm: "pic", Rl: ui.RoleGraphic, Loc: ui.Rect{Left: 100, Top: 100, Right: 200, Bottom: 200}})

	desktop.MoveTo(50, 50) // empty desktop
	tr.Cycle()
	desktop.MoveTo(150, 150) // onto the graphic
	tr.Cycle()

	got := d.recorded()
	// No previous object: first transition is enter-only.
	if len(got) != 1 || got[0] != "enter:pic" {
		t.Fatalf("events = %v; want [enter:pic]", got)
	}
	if d.ticks != 2 {
		t.Errorf("global tick must run every cycle, got %d", d.ticks)
	}
}

func TestLeaveBeforeEnter(t *testing.T) {
	d := &recordingDispatch{}
	tr, desktop := newTestTracker(d)
	desktop.Place(&ui.FakeObject{Handle: 1, Nm: "a", Rl: ui.RoleGraphic, Loc: ui.Rect{Left: 0, Top: 0, Right: 100, Bottom: 100}})
	desktop.Place(&ui.FakeObject{Handle: 1, Child: 1, Nm: "b", Rl: ui.RoleGraphic, Loc: ui.Rect{Left: 100, Top: 0, Right: 200, Bottom: 100}})

	desktop.MoveTo(50, 50)
	tr.Cycle()
	desktop.MoveTo(150, 50)
	tr.Cycle()

	got := d.recorded()
	want := []string{"enter:a", "leave:a", "enter:b"}
	if len(got) != len(want) {
		t.Fatalf("events = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v; leave must strictly precede enter", got)
		}
	}
}

func TestNoTransitionWhenIdentityUnchanged(t *testing.T) {
	d := &recordingDispatch{}
	tr, desktop := newTestTracker(d)
	desktop.Place(&ui.FakeObject{Handle: 1, Nm: "a", Rl: ui.RoleGraphic, Loc: ui.Rect{Left: 0, Top: 0, Right: 100, Bottom: 100}})

	desktop.MoveTo(10, 10)
	tr.Cycle()
	desktop.MoveTo(20, 20) // moved, same object
	tr.Cycle()

	if got := d.recorded(); len(got) != 1 {
		t.Fatalf("same identity must not re-fire, events = %v", got)
	}
}

func TestResolutionFailureReadsAsUnoccupied(t *testing.T) {
	d := &recordingDispatch{}
	tr, desktop := newTestTracker(d)
	desktop.Place(&ui.FakeObject{Handle: 1, Nm: "a", Rl: ui.RoleGraphic, Loc: ui.Rect{Left: 0, Top: 0, Right: 100, Bottom: 100}})

	desktop.MoveTo(10, 10)
	tr.Cycle()

	desktop.FailResolution(errors.New("object destroyed"))
	tr.Cycle()

	got := d.recorded()
	if len(got) != 2 || got[1] != "leave:a" {
		t.Fatalf("events = %v; resolution failure must fire a leave with no enter", got)
	}

	// Failure persists: no further events.
	tr.Cycle()
	if got := d.recorded(); len(got) != 2 {
		t.Fatalf("unoccupied state must be stable, events = %v", got)
	}

	// Recovery produces a fresh enter.
	desktop.FailResolution(nil)
	tr.Cycle()
	got = d.recorded()
	if len(got) != 3 || got[2] != "enter:a" {
		t.Fatalf("events = %v; want trailing enter:a after recovery", got)
	}
}

func TestPositionIsPublished(t *testing.T) {
	d := &recordingDispatch{}
	tr, desktop := newTestTracker(d)

	desktop.MoveTo(123, 456)
	tr.Cycle()

	if pos := tr.Position(); pos.X != 123 || pos.Y != 456 {
		t.Errorf("Position() = %+v", pos)
	}
	if w, h := tr.ScreenSize(); w != 1000 || h != 800 {
		t.Errorf("ScreenSize() = %d,%d", w, h)
	}
}

func TestCurrentIdentity(t *testing.T) {
	d := &recordingDispatch{}
	tr, desktop := newTestTracker(d)
	desktop.Place(&ui.FakeObject{Handle: 2, Nm: "pic", Rl: ui.RoleGraphic, Loc: ui.Rect{Left: 0, Top: 0, Right: 50, Bottom: 50}})

	desktop.MoveTo(25, 25)
	tr.Cycle()

	id, obj := tr.Current()
	if id.IsZero() || id.Name != "pic" {
		t.Fatalf("identity = %+v", id)
	}
	if obj == nil {
		t.Fatal("current object must be retained")
	}
}

func TestRunExitsOnCancel(t *testing.T) {
	d := &recordingDispatch{}
	tr, _ := newTestTracker(d)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tr.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop must observe cancellation within one period")
	}
}
