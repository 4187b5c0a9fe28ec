package ui

import (
	"errors"
	"sync"
)

// ErrObjectGone is returned by fake accessors after Destroy, simulating
// an element that disappeared between polls.
var ErrObjectGone = errors.New("ui: object no longer exists")

// FakeObject is an in-memory Object for tests and the emulator harness.
type FakeObject struct {
	Handle uintptr
	Child  int
	Nm     string
	Rl     Role
	Loc    Rect
	Attrs  map[string]string

	mu   sync.Mutex
	gone bool
}

// Destroy makes all subsequent accessor calls fail, as if the host
// element was torn down.
func (f *FakeObject) Destroy() {
	f.mu.Lock()
	f.gone = true
	f.mu.Unlock()
}

func (f *FakeObject) dead() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gone
}

func (f *FakeObject) WindowHandle() uintptr { return f.Handle }
func (f *FakeObject) ChildID() int          { return f.Child }

func (f *FakeObject) Name() (string, error) {
	if f.dead() {
		return "", ErrObjectGone
	}
	return f.Nm, nil
}

func (f *FakeObject) Role() (Role, error) {
	if f.dead() {
		return RoleUnknown, ErrObjectGone
	}
	return f.Rl, nil
}

func (f *FakeObject) Location() (Rect, error) {
	if f.dead() {
		return Rect{}, ErrObjectGone
	}
	return f.Loc, nil
}

func (f *FakeObject) Attribute(key string) (string, bool) {
	if f.dead() || f.Attrs == nil {
		return "", false
	}
	v, ok := f.Attrs[key]
	return v, ok
}

// FakeDesktop is a PointResolver + PointerSource + ScreenInfo backed by a
// static object list. Tests move the pointer with MoveTo.
type FakeDesktop struct {
	W, H int

	mu      sync.Mutex
	pointer Point
	objects []*FakeObject
	err     error
}

// NewFakeDesktop creates a desktop of the given size with no objects.
func NewFakeDesktop(w, h int) *FakeDesktop {
	return &FakeDesktop{W: w, H: h}
}

// Place adds an object to the desktop. Later objects win on overlap.
func (d *FakeDesktop) Place(obj *FakeObject) {
	d.mu.Lock()
	d.objects = append(d.objects, obj)
	d.mu.Unlock()
}

// MoveTo positions the fake pointer.
func (d *FakeDesktop) MoveTo(x, y int) {
	d.mu.Lock()
	d.pointer = Point{X: x, Y: y}
	d.mu.Unlock()
}

// FailResolution makes ObjectAt return err until called with nil.
func (d *FakeDesktop) FailResolution(err error) {
	d.mu.Lock()
	d.err = err
	d.mu.Unlock()
}

func (d *FakeDesktop) Position() (Point, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pointer, nil
}

func (d *FakeDesktop) Size() (int, int) { return d.W, d.H }

func (d *FakeDesktop) ObjectAt(x, y int) (Object, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	for i := len(d.objects) - 1; i >= 0; i-- {
		if d.objects[i].Loc.Contains(x, y) && !d.objects[i].dead() {
			return d.objects[i], nil
		}
	}
	return nil, nil
}
