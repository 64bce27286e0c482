package gen

import (
	"slices"

	"github.com/syssam/patterngen/pattern"
	"github.com/syssam/patterngen/schema"
)

// Ambiguity reports whether the class is targeted by more than one
// distinct pattern. Under ambiguity, rule markers without an affects
// list cannot be attributed to a pattern and are excluded from every
// resolution.
func Ambiguity(t *Type) bool {
	return len(t.Patterns) > 1
}

// ValidateAffects checks that every rule marker on an ambiguous class
// names its affected patterns, and reports an AmbiguityError diagnostic
// for each one that doesn't. Aliased markers carry no affects list and
// are exempt. Validation never stops resolution: offending markers are
// silently skipped by the classification that follows.
func ValidateAffects(t *Type, ambiguous bool, rep *Reporter) {
	if !ambiguous {
		return
	}
	for _, f := range t.Fields {
		for _, m := range f.Markers {
			if offending(m) {
				rep.Errorf(t.Name, f.Name, NewAmbiguityError(t.Name, f.Name, markerKind(m)),
					"%s marker must name its affected patterns", markerKind(m))
			}
		}
	}
	for _, tm := range t.Methods {
		for _, m := range tm.Markers {
			if offending(m) {
				rep.Errorf(t.Name, tm.Name, NewAmbiguityError(t.Name, tm.Name, markerKind(m)),
					"%s marker must name its affected patterns", markerKind(m))
			}
		}
	}
}

// offending reports whether the marker is a rule marker with an empty
// affects list.
func offending(m schema.Marker) bool {
	if _, ok := m.(schema.Aliased); ok {
		return false
	}
	return len(m.Affected()) == 0
}

// applies reports whether a marker participates in the resolution for
// the given pattern. A marker with an explicit affects list applies
// only to the patterns it names. A marker without one applies to the
// single pattern targeting the class, and to nothing when the class is
// ambiguous.
func applies(m schema.Marker, p pattern.Pattern, ambiguous bool) bool {
	affects := m.Affected()
	if len(affects) == 0 {
		return !ambiguous
	}
	return slices.Contains(affects, p)
}

// markerKind returns the marker name used in diagnostics.
func markerKind(m schema.Marker) string {
	switch m.(type) {
	case schema.Ignore:
		return "ignore"
	case schema.Immutable:
		return "immutable"
	case schema.Include:
		return "include"
	case schema.Replace:
		return "replace"
	case schema.Aliased:
		return "aliased"
	default:
		return "unknown"
	}
}
