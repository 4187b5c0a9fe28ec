package filter

import "github.com/touchpoint-hw/go-touchpoint/pkg/ui"

// Combo composes object filters with include/exclude semantics:
// a subject matches iff it matches at least one include filter and no
// exclude filter. An empty include list matches all subjects, so a
// Combo with only excludes reads as "everything except".
type Combo struct {
	Include []ObjectFilter
	Exclude []ObjectFilter
}

func (f *Combo) Matches(obj ui.Object) bool {
	included := len(f.Include) == 0
	for _, inc := range f.Include {
		if inc.Matches(obj) {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, exc := range f.Exclude {
		if exc.Matches(obj) {
			return false
		}
	}
	return true
}

// GlobalCombo is Combo over global filters.
type GlobalCombo struct {
	Include []GlobalFilter
	Exclude []GlobalFilter
}

func (f *GlobalCombo) MatchesGlobal(state GlobalState) bool {
	included := len(f.Include) == 0
	for _, inc := range f.Include {
		if inc.MatchesGlobal(state) {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, exc := range f.Exclude {
		if exc.MatchesGlobal(state) {
			return false
		}
	}
	return true
}
