// Package pattern defines the design patterns the code generator can emit
// and a registry for extending the set at runtime.
package pattern

import "fmt"

// A Pattern identifies one generable design pattern. Values are handles into
// the registry; the zero value is Builder.
type Pattern int

// Builder is the built-in pattern: a companion type that accumulates state
// through chained setter calls and assembles the target with a final Build.
const Builder Pattern = 0

// Info describes a registered pattern.
type Info struct {
	// Name is the marker tag class descriptions use to request the
	// pattern, e.g. "builder".
	Name string

	// A Description of the generated companion.
	Description string
}

var patterns = []Info{
	{
		Name:        "builder",
		Description: "Builder generates a companion type with chained setters and a final Build method",
	},
}

// Register adds a pattern under the given marker name and returns its handle.
// Registering an existing name returns the original handle and leaves its
// description unchanged. Register is not safe for concurrent use; register
// extensions before generation starts.
func Register(name, description string) Pattern {
	if p, ok := ByMarkerName(name); ok {
		return p
	}
	patterns = append(patterns, Info{Name: name, Description: description})
	return Pattern(len(patterns) - 1)
}

// ByMarkerName resolves a marker tag to its registered pattern.
func ByMarkerName(name string) (Pattern, bool) {
	for i := range patterns {
		if patterns[i].Name == name {
			return Pattern(i), true
		}
	}
	return 0, false
}

// Patterns returns a copy of the registry in registration order.
func Patterns() []Info {
	return append([]Info(nil), patterns...)
}

// Count returns the number of registered patterns.
func Count() int { return len(patterns) }

// Valid reports whether p refers to a registered pattern.
func (p Pattern) Valid() bool { return p >= 0 && int(p) < len(patterns) }

// MarkerName returns the marker tag of p.
func (p Pattern) MarkerName() string {
	if !p.Valid() {
		return fmt.Sprintf("pattern(%d)", int(p))
	}
	return patterns[p].Name
}

// Describe returns the registered description of p.
func (p Pattern) Describe() string {
	if !p.Valid() {
		return ""
	}
	return patterns[p].Description
}

func (p Pattern) String() string { return p.MarkerName() }
