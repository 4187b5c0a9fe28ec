// Package filter provides boolean predicates over UI objects and global
// engine state. Filters are evaluated on every tracker poll for every
// handler, so implementations must be cheap and side-effect free.
//
// Attribute reads fail closed: an unreadable role, name, or location on
// the subject evaluates to non-match rather than an error.
package filter

import "github.com/touchpoint-hw/go-touchpoint/pkg/ui"

// GlobalState is the read-only view of engine state that global filters
// evaluate against.
type GlobalState interface {
	PointerPosition() ui.Point
	ScreenSize() (width, height int)
}

// ObjectFilter decides whether a UI object is of interest.
type ObjectFilter interface {
	Matches(obj ui.Object) bool
}

// GlobalFilter decides whether a global handler is currently active.
type GlobalFilter interface {
	MatchesGlobal(state GlobalState) bool
}

// AcceptAll matches every object and every global state. It is the
// default filter for handlers that want to see everything.
type AcceptAll struct{}

func (AcceptAll) Matches(ui.Object) bool         { return true }
func (AcceptAll) MatchesGlobal(GlobalState) bool { return true }

// Roles matches objects whose role is in the allowed set.
type Roles struct {
	Allowed []ui.Role
}

// NewRoles builds a role filter from the given roles.
func NewRoles(roles ...ui.Role) *Roles {
	return &Roles{Allowed: roles}
}

func (f *Roles) Matches(obj ui.Object) bool {
	if obj == nil {
		return false
	}
	role, err := obj.Role()
	if err != nil {
		return false
	}
	for _, allowed := range f.Allowed {
		if role == allowed {
			return true
		}
	}
	return false
}

// HasLocation matches objects exposing a valid bounding rectangle.
// Graphic handlers require this before registering a capture region.
type HasLocation struct{}

func (HasLocation) Matches(obj ui.Object) bool {
	if obj == nil {
		return false
	}
	loc, err := obj.Location()
	if err != nil {
		return false
	}
	return loc.Valid()
}

// Attribute matches objects carrying an implementation attribute with an
// exact value, e.g. tag=video on HTML video elements.
type Attribute struct {
	Key   string
	Value string
}

func (f *Attribute) Matches(obj ui.Object) bool {
	if obj == nil {
		return false
	}
	v, ok := obj.Attribute(f.Key)
	return ok && v == f.Value
}
