package schema

import "github.com/syssam/patterngen/pattern"

// Marker is implemented by every rule that can be attached to a field or
// method description.
type Marker interface {
	// Affected returns the patterns the marker names. An empty set means
	// the marker addresses whichever single pattern targets the class;
	// when several patterns target one class, an empty set is rejected
	// during generation.
	Affected() []pattern.Pattern

	marker()
}

// Ignore excludes the marked field from generated companions.
type Ignore struct {
	Affects []pattern.Pattern
}

// NewIgnore returns an Ignore marker scoped to the given patterns.
func NewIgnore(affects ...pattern.Pattern) Ignore {
	return Ignore{Affects: affects}
}

// Affected implements Marker.
func (m Ignore) Affected() []pattern.Pattern { return m.Affects }

func (Ignore) marker() {}

// Immutable keeps the marked field out of the generated mutation surface.
// The field contributes no setter and no builder state.
type Immutable struct {
	Affects []pattern.Pattern
}

// NewImmutable returns an Immutable marker scoped to the given patterns.
func NewImmutable(affects ...pattern.Pattern) Immutable {
	return Immutable{Affects: affects}
}

// Affected implements Marker.
func (m Immutable) Affected() []pattern.Pattern { return m.Affects }

func (Immutable) marker() {}

// Include carries a hand-written method into generated companions. Code is
// the method body as opaque source text, emitted verbatim.
type Include struct {
	Code    string
	Affects []pattern.Pattern
}

// NewInclude returns an Include marker carrying the given body.
func NewInclude(code string, affects ...pattern.Pattern) Include {
	return Include{Code: code, Affects: affects}
}

// Affected implements Marker.
func (m Include) Affected() []pattern.Pattern { return m.Affects }

func (Include) marker() {}

// Replace substitutes the marked method for the generated setters of the
// fields it names. The named fields keep their builder state so the body can
// assign them, but no automatic setter is emitted for them.
type Replace struct {
	Code     string
	Replaces []string
	Affects  []pattern.Pattern
}

// NewReplace returns a Replace marker carrying the given body. At least one
// replaced field name is required.
func NewReplace(code string, replaces []string, affects ...pattern.Pattern) (Replace, error) {
	if len(replaces) == 0 {
		return Replace{}, ErrEmptyReplaces
	}
	return Replace{Code: code, Replaces: replaces, Affects: affects}, nil
}

// Affected implements Marker.
func (m Replace) Affected() []pattern.Pattern { return m.Affects }

func (Replace) marker() {}

// Aliased renames the marked member in generated narration, such as doc
// comments. It never creates a setter and never renames emitted identifiers.
type Aliased struct {
	Alias string
}

// NewAliased returns an Aliased marker with the given narration name.
func NewAliased(alias string) Aliased {
	return Aliased{Alias: alias}
}

// Affected implements Marker. Aliased addresses no pattern and is exempt
// from affects validation.
func (Aliased) Affected() []pattern.Pattern { return nil }

func (Aliased) marker() {}
