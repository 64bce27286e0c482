package builder

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/patterngen/caseconv"
	"github.com/syssam/patterngen/compiler/gen"
	"github.com/syssam/patterngen/pattern"
)

// Synthesizer assembles fluent builder companions. It implements
// gen.Synthesizer for the builder pattern.
type Synthesizer struct{}

// New returns the builder-pattern synthesizer.
func New() *Synthesizer {
	return &Synthesizer{}
}

// Pattern returns the pattern this synthesizer realizes.
func (s *Synthesizer) Pattern() pattern.Pattern {
	return pattern.Builder
}

// FileName returns the name of the file generated for the class.
func (s *Synthesizer) FileName(t *gen.Type) string {
	return caseconv.Snake(t.Name) + "_builder.go"
}

// Synthesize assembles the builder companion of one class. Members are
// emitted in a fixed order: builder struct, setters with appenders,
// Build, factory, included methods, replacement methods.
func (s *Synthesizer) Synthesize(t *gen.Type, sets *gen.MemberSets, rep *gen.Reporter) (*jen.File, error) {
	if t == nil || sets == nil {
		return nil, gen.NewStructuralError("", "", "synthesize called without a classified type", nil)
	}
	f := jen.NewFile(t.Package())
	f.HeaderComment(t.Header())

	local, known := t.LocalName()
	if !known {
		rep.Warnf(t.Name, "", nil, "unknown name case format for %q, lowering the first character", t.Name)
	}
	if local == t.Receiver() {
		local = "_" + local
	}

	s.defineStruct(f, t, sets)
	s.setters(f, t, sets)
	s.build(f, t, sets, local)
	s.factory(f, t, sets, rep)
	for _, in := range sets.Included {
		s.method(f, t, in.Method, in.Code,
			fmt.Sprintf("%s is copied from the %s description.", in.Name, t.Name))
	}
	for _, r := range sets.Replacements {
		s.method(f, t, r.Method, r.Code, replacementDoc(r))
	}
	return f, nil
}

// defineStruct emits the builder struct with one private state field per
// settable or replaced class field.
func (s *Synthesizer) defineStruct(f *jen.File, t *gen.Type, sets *gen.MemberSets) {
	f.Commentf("%s assembles %s values step by step.", t.BuilderName(), t.Name)
	f.Type().Id(t.BuilderName()).StructFunc(func(g *jen.Group) {
		for _, fl := range sets.StateFields() {
			st := g.Id(fl.StateName()).Add(typeCode(fl.Type))
			if fl.Comment != "" {
				st.Comment(fl.Comment)
			}
		}
	})
}

// setters emits one fluent setter per settable field, plus a variadic
// appender next to every slice-typed one.
func (s *Synthesizer) setters(f *jen.File, t *gen.Type, sets *gen.MemberSets) {
	recv := t.Receiver()
	for _, fl := range sets.SetterFields() {
		param := paramName(recv, fl.ParamName())
		f.Commentf("%s sets the %s state and returns the builder.", fl.SetterName(), fl.Narration())
		f.Func().Params(jen.Id(recv).Op("*").Id(t.BuilderName())).Id(fl.SetterName()).
			Params(jen.Id(param).Add(typeCode(fl.Type))).
			Op("*").Id(t.BuilderName()).
			Block(
				jen.Id(recv).Dot(fl.StateName()).Op("=").Id(param),
				jen.Return(jen.Id(recv)),
			)
		if !fl.HasAppender() {
			continue
		}
		elem, ok := fl.Type.Elem()
		if !ok {
			continue
		}
		ap := paramName(recv, fl.AppenderParamName())
		f.Commentf("%s appends to the %s state and returns the builder.", fl.AppenderName(), fl.Narration())
		f.Func().Params(jen.Id(recv).Op("*").Id(t.BuilderName())).Id(fl.AppenderName()).
			Params(jen.Id(ap).Op("...").Add(typeCode(&elem))).
			Op("*").Id(t.BuilderName()).
			Block(
				jen.Id(recv).Dot(fl.StateName()).Op("=").Append(jen.Id(recv).Dot(fl.StateName()), jen.Id(ap).Op("...")),
				jen.Return(jen.Id(recv)),
			)
	}
}

// build emits the Build method. Struct companions copy every state field
// into a fresh instance; interface companions return the zero value, as
// their members come from included and replacement methods only.
func (s *Synthesizer) build(f *jen.File, t *gen.Type, sets *gen.MemberSets, local string) {
	recv := t.Receiver()
	if t.IsInterface() {
		f.Commentf("Build returns the assembled %s.", t.Name)
		f.Func().Params(jen.Id(recv).Op("*").Id(t.BuilderName())).Id("Build").Params().
			Id(t.Name).
			Block(
				jen.Var().Id(local).Id(t.Name),
				jen.Return(jen.Id(local)),
			)
		return
	}
	f.Commentf("Build assembles and returns the %s.", t.Name)
	f.Func().Params(jen.Id(recv).Op("*").Id(t.BuilderName())).Id("Build").Params().
		Op("*").Id(t.Name).
		BlockFunc(func(g *jen.Group) {
			g.Id(local).Op(":=").Op("&").Id(t.Name).Values()
			for _, fl := range sets.StateFields() {
				g.Id(local).Dot(fl.Name).Op("=").Id(recv).Dot(fl.StateName())
			}
			g.Return(jen.Id(local))
		})
}

// factory emits the package-level factory returning a fresh builder with
// declared defaults applied.
func (s *Synthesizer) factory(f *jen.File, t *gen.Type, sets *gen.MemberSets, rep *gen.Reporter) {
	states := sets.StateFields()
	stateSet := make(map[string]bool, len(states))
	for _, fl := range states {
		stateSet[fl.Name] = true
	}
	for _, fl := range t.Fields {
		if fl.HasDefault() && !stateSet[fl.Name] {
			rep.Warnf(t.Name, fl.Name, nil, "default on field %q is never applied", fl.Name)
		}
	}
	f.Commentf("%s returns a fresh builder for %s with declared defaults applied.", t.FactoryName(), t.Name)
	f.Func().Id(t.FactoryName()).Params().Op("*").Id(t.BuilderName()).
		Block(
			jen.Return(jen.Op("&").Id(t.BuilderName()).ValuesFunc(func(g *jen.Group) {
				for _, fl := range states {
					if fl.HasDefault() {
						g.Id(fl.StateName()).Op(":").Id(fl.Default)
					}
				}
			})),
		)
}

// method emits one included or replacement method with its opaque body.
// Bodies are placed verbatim; the emission sink's goimports pass resolves
// any imports they reference.
func (s *Synthesizer) method(f *jen.File, t *gen.Type, m *gen.Method, code, doc string) {
	if m.Comment != "" {
		f.Comment(m.Comment)
	} else {
		f.Comment(doc)
	}
	stmt := f.Func().Params(jen.Id(t.Receiver()).Op("*").Id(t.BuilderName())).Id(m.Name).
		ParamsFunc(func(g *jen.Group) {
			for _, p := range m.Params {
				g.Id(p.Name).Add(typeCode(p.Type))
			}
		})
	if m.Returns != nil {
		stmt.Add(typeCode(m.Returns))
	}
	if code == "" {
		stmt.Block()
		return
	}
	stmt.Block(jen.Id(code))
}

// replacementDoc renders the fallback doc comment of a replacement method.
func replacementDoc(r *gen.Replacement) string {
	switch len(r.Replaces) {
	case 0:
		return fmt.Sprintf("%s is declared as a replacement.", r.Name)
	case 1:
		return fmt.Sprintf("%s replaces the generated setter for %s.", r.Name, r.Replaces[0])
	default:
		return fmt.Sprintf("%s replaces the generated setters for %s.", r.Name, strings.Join(r.Replaces, ", "))
	}
}
