package gen

// DetectConflicts compares the methods classification kept with the
// members the synthesizer is about to generate and reports a warning for
// every collision. Conflicts never stop emission: colliding members are
// still written best-effort and the diagnostics keep the condition
// observable to callers and tests.
func DetectConflicts(t *Type, sets *MemberSets, rep *Reporter) {
	setters := sets.SetterFields()
	states := sets.StateFields()
	for _, in := range sets.Included {
		for _, f := range setters {
			if collides(in.Method, f) {
				rep.Warnf(t.Name, in.Name, nil,
					"included method %s already exists, consider a replace marker instead", in.Signature())
			}
		}
	}
	methods := make([]*Method, 0, len(sets.Included)+len(sets.Replacements))
	for _, in := range sets.Included {
		methods = append(methods, in.Method)
	}
	for _, r := range sets.Replacements {
		methods = append(methods, r.Method)
	}
	for _, m := range methods {
		switch m.Name {
		case "Build":
			rep.Warnf(t.Name, m.Name, nil,
				"method %s collides with the generated Build method", m.Signature())
		case t.FactoryName():
			rep.Warnf(t.Name, m.Name, nil,
				"method %s collides with the generated factory function", m.Signature())
		}
		for _, f := range setters {
			if f.HasAppender() && m.Name == f.AppenderName() {
				rep.Warnf(t.Name, m.Name, nil,
					"method %s collides with the generated appender for field %q", m.Signature(), f.Name)
			}
		}
		for _, f := range states {
			if m.Name == f.StateName() {
				rep.Warnf(t.Name, m.Name, nil,
					"method %q collides with the builder state field of the same name", m.Name)
			}
		}
	}
}

// collides reports whether an included method's signature exactly matches
// the setter generated for the field: same name, one parameter of the
// field's type.
func collides(m *Method, f *Field) bool {
	if m.Name != f.SetterName() || len(m.Params) != 1 {
		return false
	}
	return m.Params[0].Type.String() == f.Type.String()
}
