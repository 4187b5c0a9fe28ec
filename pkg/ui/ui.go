// Package ui models the accessible UI surface the engine reacts to.
//
// The engine never talks to the host accessibility API directly. It sees
// UI elements through the Object interface and resolves the element under
// the pointer through a PointResolver. Both are supplied by the host
// integration at startup.
package ui

import "fmt"

// Role classifies an accessible UI element.
type Role int

const (
	RoleUnknown Role = iota
	RoleWindow
	RoleButton
	RoleCheckbox
	RoleEditableText
	RoleDocument
	RoleGraphic
	RoleImageMap
	RoleLink
	RoleList
	RoleListItem
	RoleMenu
	RoleMenuItem
	RoleSlider
	RoleStaticText
	RoleVideo
)

var roleNames = map[Role]string{
	RoleUnknown:      "unknown",
	RoleWindow:       "window",
	RoleButton:       "button",
	RoleCheckbox:     "checkbox",
	RoleEditableText: "editableText",
	RoleDocument:     "document",
	RoleGraphic:      "graphic",
	RoleImageMap:     "imageMap",
	RoleLink:         "link",
	RoleList:         "list",
	RoleListItem:     "listItem",
	RoleMenu:         "menu",
	RoleMenuItem:     "menuItem",
	RoleSlider:       "slider",
	RoleStaticText:   "staticText",
	RoleVideo:        "video",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// ParseRole maps a role name from configuration to a Role.
// Unrecognized names return RoleUnknown and false.
func ParseRole(name string) (Role, bool) {
	for role, n := range roleNames {
		if n == name {
			return role, true
		}
	}
	return RoleUnknown, false
}

// Rect is a screen rectangle in absolute pixel coordinates.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Width returns the rectangle width in pixels.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the rectangle height in pixels.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Valid reports whether the rectangle has positive area.
func (r Rect) Valid() bool { return r.Width() > 0 && r.Height() > 0 }

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Point is an absolute screen coordinate.
type Point struct {
	X, Y int
}

// Object is a live accessible UI element as exposed by the host.
// Implementations wrap whatever handle the accessibility API hands out.
// All accessors may fail when the underlying element has been destroyed;
// failed reads surface as zero values plus an error, never as panics.
type Object interface {
	// WindowHandle identifies the native window owning the element.
	WindowHandle() uintptr

	// ChildID is the accessible child id within the window (0 for self).
	ChildID() int

	// Name returns the accessible name ("" when unnamed).
	Name() (string, error)

	// Role returns the accessible role.
	Role() (Role, error)

	// Location returns the element's bounding rectangle on screen.
	Location() (Rect, error)

	// Attribute looks up an implementation-specific attribute such as the
	// IAccessible2 "tag" attribute. ok is false when the attribute does
	// not exist or cannot be read.
	Attribute(key string) (value string, ok bool)
}

// Identity is the stable key deciding whether the element under the
// pointer changed between polls. Two identities are equal iff all four
// fields match exactly.
type Identity struct {
	Window  uintptr
	ChildID int
	Name    string
	Role    Role
}

// IdentityOf derives the identity key for an object. Unreadable name or
// role fields fold to their zero values so a flaky element still yields
// a stable key rather than an error.
func IdentityOf(obj Object) Identity {
	if obj == nil {
		return Identity{}
	}
	name, _ := obj.Name()
	role, _ := obj.Role()
	return Identity{
		Window:  obj.WindowHandle(),
		ChildID: obj.ChildID(),
		Name:    name,
		Role:    role,
	}
}

// IsZero reports whether the identity is the "no object" sentinel.
func (id Identity) IsZero() bool {
	return id == Identity{}
}

func (id Identity) String() string {
	return fmt.Sprintf("%s %q win=%#x child=%d", id.Role, id.Name, id.Window, id.ChildID)
}

// snapshot caches an object's identity and location at resolution time.
// The tracker dispatches events through snapshots so filters still see
// the element as it was when resolved, even after the host tears the
// element down mid-hover. Attribute reads fall through to the live
// element since attributes are keyed and cannot be enumerated up front.
type snapshot struct {
	id     Identity
	loc    Rect
	locErr error
	src    Object
}

// NewSnapshot freezes an object's identity and location. A nil object
// stays nil.
func NewSnapshot(obj Object) Object {
	if obj == nil {
		return nil
	}
	s := &snapshot{id: IdentityOf(obj), src: obj}
	s.loc, s.locErr = obj.Location()
	return s
}

func (s *snapshot) WindowHandle() uintptr   { return s.id.Window }
func (s *snapshot) ChildID() int            { return s.id.ChildID }
func (s *snapshot) Name() (string, error)   { return s.id.Name, nil }
func (s *snapshot) Role() (Role, error)     { return s.id.Role, nil }
func (s *snapshot) Location() (Rect, error) { return s.loc, s.locErr }

func (s *snapshot) Attribute(key string) (string, bool) {
	return s.src.Attribute(key)
}

// PointResolver resolves the UI element at a screen coordinate.
// Returning (nil, nil) means no addressable element is at that point.
type PointResolver interface {
	ObjectAt(x, y int) (Object, error)
}

// PointerSource reports the current pointer position.
type PointerSource interface {
	Position() (Point, error)
}

// ScreenInfo reports the full desktop dimensions, used for screen-edge
// detection.
type ScreenInfo interface {
	Size() (width, height int)
}
