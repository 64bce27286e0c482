package gen

import (
	"github.com/syssam/patterngen/pattern"
	"github.com/syssam/patterngen/schema"
)

type (
	// MemberSets holds the outcome of classifying a class's members for
	// one pattern: which fields the builder exposes, which methods it
	// includes, and which replacements supersede generated setters.
	MemberSets struct {
		// Exposed fields in declaration order: every declared field not
		// claimed by an applying ignore marker.
		Exposed []*Field
		// Included methods in declaration order, emitted with their
		// marker bodies after the generated members.
		Included []*Inclusion
		// Replacements in declaration order, emitted last.
		Replacements []*Replacement

		immutable map[string]bool
		replaced  map[string]bool
	}

	// Inclusion couples a method with the body its include marker carries.
	Inclusion struct {
		*Method
		// Code of the method body, emitted verbatim.
		Code string
	}

	// Replacement couples a method with the exposed fields whose setters
	// it supersedes.
	Replacement struct {
		*Method
		// Code of the method body, emitted verbatim.
		Code string
		// Replaces holds the exposed field names the replacement claims.
		// Claims that did not resolve are dropped during classification.
		Replaces []string
	}
)

// Classify resolves the class's markers for the given pattern and splits
// its members into the sets the synthesizer consumes. Precedence between
// markers claiming the same member: ignore excludes the field from every
// other set, and a replacement supersedes both an immutable marker on the
// fields it claims and an include marker on its own method. Markers that
// don't apply to the pattern are skipped, including the offenders already
// reported by ValidateAffects.
func Classify(t *Type, p pattern.Pattern, ambiguous bool, rep *Reporter) *MemberSets {
	sets := &MemberSets{
		immutable: make(map[string]bool),
		replaced:  make(map[string]bool),
	}
	exposed := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		var ignored, immutable bool
		for _, m := range f.Markers {
			if !applies(m, p, ambiguous) {
				continue
			}
			switch m.(type) {
			case schema.Ignore:
				ignored = true
			case schema.Immutable:
				immutable = true
			}
		}
		if ignored {
			continue
		}
		sets.Exposed = append(sets.Exposed, f)
		exposed[f.Name] = true
		if immutable {
			sets.immutable[f.Name] = true
		}
	}
	for _, tm := range t.Methods {
		var (
			include *schema.Include
			replace *schema.Replace
		)
		for _, m := range tm.Markers {
			if !applies(m, p, ambiguous) {
				continue
			}
			switch m := m.(type) {
			case schema.Include:
				include = &m
			case schema.Replace:
				replace = &m
			}
		}
		if include != nil && replace != nil {
			rep.Warnf(t.Name, tm.Name, nil, "method carries both include and replace markers, the replacement wins")
			include = nil
		}
		if include != nil {
			sets.Included = append(sets.Included, &Inclusion{Method: tm, Code: include.Code})
		}
		if replace == nil {
			continue
		}
		r := &Replacement{Method: tm, Code: replace.Code}
		if len(replace.Replaces) == 0 {
			rep.Errorf(t.Name, tm.Name, schema.ErrEmptyReplaces, "replace marker must claim at least one field")
		}
		seen := make(map[string]bool, len(replace.Replaces))
		for _, name := range replace.Replaces {
			switch {
			case seen[name]:
			case exposed[name]:
				seen[name] = true
				r.Replaces = append(r.Replaces, name)
				sets.replaced[name] = true
			case t.HasField(name):
				rep.Warnf(t.Name, tm.Name, nil, "replace marker claims ignored field %q", name)
			default:
				rep.Warnf(t.Name, tm.Name, nil, "replace marker claims unknown field %q", name)
			}
		}
		sets.Replacements = append(sets.Replacements, r)
	}
	return sets
}

// StateFields returns the fields carried as builder state: every exposed
// field except immutable ones no replacement claims. The generated Build
// method copies each state field into the product.
func (s *MemberSets) StateFields() []*Field {
	fields := make([]*Field, 0, len(s.Exposed))
	for _, f := range s.Exposed {
		if s.immutable[f.Name] && !s.replaced[f.Name] {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// SetterFields returns the fields that gain a generated setter: every
// exposed field that is neither immutable nor claimed by a replacement.
func (s *MemberSets) SetterFields() []*Field {
	fields := make([]*Field, 0, len(s.Exposed))
	for _, f := range s.Exposed {
		if s.immutable[f.Name] || s.replaced[f.Name] {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// Immutable reports whether an applying immutable marker claims the field.
func (s *MemberSets) Immutable(name string) bool {
	return s.immutable[name]
}

// Replaced reports whether a replacement claims the field.
func (s *MemberSets) Replaced(name string) bool {
	return s.replaced[name]
}
