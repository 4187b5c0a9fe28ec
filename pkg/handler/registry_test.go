package handler

import (
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/touchpoint-hw/go-touchpoint/pkg/effect"
	"github.com/touchpoint-hw/go-touchpoint/pkg/filter"
	"github.com/touchpoint-hw/go-touchpoint/pkg/ui"
)

// firedRecorder is an effect that appends a tag to a shared log.
type firedRecorder struct {
	mu  sync.Mutex
	log []string
}

func (r *firedRecorder) effect(tag string) effect.Effect {
	return effect.Func(func(*effect.Context, ui.Object, effect.Params) error {
		r.mu.Lock()
		r.log = append(r.log, tag)
		r.mu.Unlock()
		return nil
	})
}

func (r *firedRecorder) fired() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.log))
	copy(out, r.log)
	return out
}

type rejectAll struct{}

func (rejectAll) Matches(ui.Object) bool                { return false }
func (rejectAll) MatchesGlobal(filter.GlobalState) bool { return false }

func graphicObj() *ui.FakeObject {
	return &ui.FakeObject{
		Handle: 7, Nm: "pic", Rl: ui.RoleGraphic,
		Loc: ui.Rect{Left: 10, Top: 10, Right: 110, Bottom: 110},
	}
}

func TestAllMatchingHandlersFireInOrder(t *testing.T) {
	rec := &firedRecorder{}
	reg := NewRegistry()
	reg.AddObjectHandler(NewObjectHandler(nil, map[string]effect.Effect{
		EventEnter: rec.effect("first"),
	}))
	reg.AddObjectHandler(NewObjectHandler(rejectAll{}, map[string]effect.Effect{
		EventEnter: rec.effect("filtered-out"),
	}))
	reg.AddObjectHandler(NewObjectHandler(nil, map[string]effect.Effect{
		EventEnter: rec.effect("third"),
	}))

	reg.HandleObjectEvent(&effect.Context{}, EventEnter, graphicObj(), nil)

	got := rec.fired()
	if len(got) != 2 || got[0] != "first" || got[1] != "third" {
		t.Fatalf("fired = %v; want [first third] in registration order", got)
	}
}

func TestUnboundEventIsSilent(t *testing.T) {
	rec := &firedRecorder{}
	reg := NewRegistry()
	reg.AddObjectHandler(NewObjectHandler(nil, map[string]effect.Effect{
		EventEnter: rec.effect("enter"),
	}))

	reg.HandleObjectEvent(&effect.Context{}, EventLeave, graphicObj(), nil)

	if len(rec.fired()) != 0 {
		t.Fatal("events with no bound effect must be a no-op")
	}
}

func TestFailingEffectDoesNotStopLaterHandlers(t *testing.T) {
	rec := &firedRecorder{}
	reg := NewRegistry()
	reg.AddObjectHandler(NewObjectHandler(nil, map[string]effect.Effect{
		// No hardware in context: this effect fails.
		EventEnter: &effect.Vibration{Amplitude: 0.5},
	}))
	reg.AddObjectHandler(NewObjectHandler(nil, map[string]effect.Effect{
		EventEnter: rec.effect("survivor"),
	}))

	reg.HandleObjectEvent(&effect.Context{}, EventEnter, graphicObj(), nil)

	if got := rec.fired(); len(got) != 1 || got[0] != "survivor" {
		t.Fatalf("fired = %v; a failing effect must not stop routing", got)
	}
}

// fakeRegistrar records region add/remove calls.
type fakeRegistrar struct {
	mu      sync.Mutex
	added   map[uuid.UUID]ui.Rect
	removed []uuid.UUID
}

func newFakeRegistrar() *fakeRegistrar {
	return &fakeRegistrar{added: make(map[uuid.UUID]ui.Rect)}
}

func (f *fakeRegistrar) AddRegion(owner uuid.UUID, rect ui.Rect) {
	f.mu.Lock()
	f.added[owner] = rect
	f.mu.Unlock()
}

func (f *fakeRegistrar) RemoveRegion(owner uuid.UUID) {
	f.mu.Lock()
	f.removed = append(f.removed, owner)
	f.mu.Unlock()
}

func TestGraphicHandlerRegistersRegionOnEnter(t *testing.T) {
	rec := &firedRecorder{}
	captures := newFakeRegistrar()
	h := NewGraphicHandler(nil, map[string]effect.Effect{
		EventEnter: rec.effect("enter"),
		EventLeave: rec.effect("leave"),
	}, captures)

	obj := graphicObj()
	h.HandleEvent(&effect.Context{}, EventEnter, obj, nil)

	if rect, ok := captures.added[h.ID()]; !ok || rect != obj.Loc {
		t.Fatalf("enter must register the object rect, got %v", captures.added)
	}
	if got := rec.fired(); len(got) != 1 || got[0] != "enter" {
		t.Fatalf("enter effect must still fire, got %v", got)
	}

	h.HandleEvent(&effect.Context{}, EventLeave, obj, nil)
	if len(captures.removed) != 1 || captures.removed[0] != h.ID() {
		t.Fatalf("leave must deregister the region, got %v", captures.removed)
	}
}

func TestGraphicHandlerSkipsEnterWithoutRect(t *testing.T) {
	rec := &firedRecorder{}
	captures := newFakeRegistrar()
	h := NewGraphicHandler(filter.AcceptAll{}, map[string]effect.Effect{
		EventEnter: rec.effect("enter"),
	}, captures)

	noRect := &ui.FakeObject{Handle: 9, Nm: "bare", Rl: ui.RoleGraphic}
	h.HandleEvent(&effect.Context{}, EventEnter, noRect, nil)

	if len(captures.added) != 0 {
		t.Fatal("no region without a valid rectangle")
	}
	if len(rec.fired()) != 0 {
		t.Fatal("no feedback without a capturable rectangle")
	}
}

// staticState is a fixed global state for tests.
type staticState struct {
	pos  ui.Point
	w, h int
}

func (s staticState) PointerPosition() ui.Point { return s.pos }
func (s staticState) ScreenSize() (int, int)    { return s.w, s.h }

func TestGlobalTickRespectsFilter(t *testing.T) {
	ran := 0
	reg := NewRegistry()
	reg.AddGlobalHandler(NewGlobalHandler(rejectAll{}, nil, func(*Tick) { ran++ }))
	reg.AddGlobalHandler(NewGlobalHandler(nil, nil, func(*Tick) { ran++ }))

	reg.GlobalTick(&effect.Context{}, staticState{w: 100, h: 100})

	if ran != 1 {
		t.Fatalf("only active handlers run their check, ran = %d", ran)
	}
}

func TestScreenBorderHandlerTransitions(t *testing.T) {
	rec := &firedRecorder{}
	h := NewScreenBorderHandler(nil, map[string]effect.Effect{
		EventBorderEnter: rec.effect("border_enter"),
		EventBorderLeave: rec.effect("border_leave"),
	})
	ctx := &effect.Context{}

	inside := staticState{pos: ui.Point{X: 50, Y: 50}, w: 100, h: 100}
	edge := staticState{pos: ui.Point{X: 0, Y: 50}, w: 100, h: 100}

	h.RunCheck(ctx, inside) // no transition yet
	h.RunCheck(ctx, edge)   // enter
	h.RunCheck(ctx, edge)   // still on border, no repeat
	h.RunCheck(ctx, inside) // leave

	got := rec.fired()
	want := []string{"border_enter", "border_leave"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("fired = %v; want %v", got, want)
	}
}

func TestTickTriggerUnboundEventIsSilent(t *testing.T) {
	h := NewGlobalHandler(nil, nil, func(t *Tick) {
		t.Trigger("somethingUnbound", nil)
	})
	// Must not panic or error.
	h.RunCheck(&effect.Context{}, staticState{w: 10, h: 10})
}
