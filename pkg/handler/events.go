package handler

// Event names recognized by the dispatch core. Host-originated events
// mirror the accessibility event source; enter/leave are synthesized by
// the identity tracker; border events come from the screen border
// handler.
const (
	EventEnter = "enter"
	EventLeave = "leave"

	EventGainFocus       = "gainFocus"
	EventLoseFocus       = "loseFocus"
	EventForeground      = "foreground"
	EventNameChange      = "nameChange"
	EventValueChange     = "valueChange"
	EventStateChange     = "stateChange"
	EventSelection       = "selection"
	EventMouseMove       = "mouseMove"
	EventTypedCharacter  = "typedCharacter"
	EventCaret           = "caret"
	EventMenuStart       = "menuStart"
	EventMenuEnd         = "menuEnd"
	EventAlert           = "alert"
	EventDocLoadComplete = "documentLoadComplete"

	EventBorderEnter = "border_enter"
	EventBorderLeave = "border_leave"
)

// KnownEvents lists every event name the configuration may bind effects
// to. Validation rejects bindings outside this set.
var KnownEvents = []string{
	EventEnter, EventLeave,
	EventGainFocus, EventLoseFocus, EventForeground,
	EventNameChange, EventValueChange, EventStateChange,
	EventSelection, EventMouseMove, EventTypedCharacter,
	EventCaret, EventMenuStart, EventMenuEnd, EventAlert,
	EventDocLoadComplete,
	EventBorderEnter, EventBorderLeave,
}
