package gen

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Severity grades a diagnostic.
type Severity uint8

// Severity levels, ordered from least to most severe.
const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// A Diagnostic is one finding reported against a class while it compiles:
// classification notes, ambiguity violations, conflict warnings, and
// structural or emission failures.
type Diagnostic struct {
	Class    string   // class under compilation
	Element  string   // field or method name, empty for class-level findings
	Severity Severity // finding grade
	Message  string   // human-readable description
	Err      error    // underlying error, if any
}

// String renders the diagnostic in "severity: class.element: message" form.
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(d.Severity.String())
	b.WriteString(": ")
	if d.Class != "" {
		b.WriteString(d.Class)
		if d.Element != "" {
			b.WriteString(".")
			b.WriteString(d.Element)
		}
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	return b.String()
}

// A Reporter collects the diagnostics of one generation run. Classes are
// compiled concurrently, so all methods are safe for concurrent use. Each
// reporter carries a run ID that tags every log line it emits.
type Reporter struct {
	mu    sync.Mutex
	run   uuid.UUID
	log   *zap.SugaredLogger
	diags []Diagnostic
}

// NewReporter returns a reporter logging through the given logger. A nil
// logger collects diagnostics without emitting them.
func NewReporter(log *zap.SugaredLogger) *Reporter {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Reporter{run: uuid.New(), log: log}
}

// RunID returns the identifier of this generation run.
func (r *Reporter) RunID() uuid.UUID {
	return r.run
}

// Add records a diagnostic.
func (r *Reporter) Add(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diags = append(r.diags, d)
}

// Infof records an info finding for the given class element.
func (r *Reporter) Infof(class, element, format string, args ...any) {
	r.Add(Diagnostic{
		Class:    class,
		Element:  element,
		Severity: SeverityInfo,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Warnf records a warning for the given class element.
func (r *Reporter) Warnf(class, element string, err error, format string, args ...any) {
	r.Add(Diagnostic{
		Class:    class,
		Element:  element,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		Err:      err,
	})
}

// Errorf records an error for the given class element.
func (r *Reporter) Errorf(class, element string, err error, format string, args ...any) {
	r.Add(Diagnostic{
		Class:    class,
		Element:  element,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Err:      err,
	})
}

// Diagnostics returns a copy of the collected diagnostics in report order.
// Report order is deterministic within a class and unspecified across
// classes; use Sorted for stable cross-class output.
func (r *Reporter) Diagnostics() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.diags)
}

// Sorted returns the collected diagnostics ordered by class, element and
// message, independent of the interleaving of concurrent classes.
func (r *Reporter) Sorted() []Diagnostic {
	diags := r.Diagnostics()
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		if c := cmp.Compare(a.Class, b.Class); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Element, b.Element); c != 0 {
			return c
		}
		return cmp.Compare(a.Message, b.Message)
	})
	return diags
}

// HasErrors reports whether any error-grade diagnostic was collected.
func (r *Reporter) HasErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics with the given severity.
func (r *Reporter) Count(s Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, d := range r.diags {
		if d.Severity == s {
			n++
		}
	}
	return n
}

// FailedClasses returns the sorted, distinct names of classes that
// collected error-grade diagnostics.
func (r *Reporter) FailedClasses() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]struct{})
	var failed []string
	for _, d := range r.diags {
		if d.Severity != SeverityError {
			continue
		}
		if _, ok := seen[d.Class]; ok {
			continue
		}
		seen[d.Class] = struct{}{}
		failed = append(failed, d.Class)
	}
	slices.Sort(failed)
	return failed
}

// Log emits every collected diagnostic through the reporter's logger at
// its severity level, tagged with the run ID.
func (r *Reporter) Log() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.diags {
		kv := []any{"run", r.run.String(), "class", d.Class}
		if d.Element != "" {
			kv = append(kv, "element", d.Element)
		}
		if d.Err != nil {
			kv = append(kv, "error", d.Err)
		}
		switch d.Severity {
		case SeverityError:
			r.log.Errorw(d.Message, kv...)
		case SeverityWarning:
			r.log.Warnw(d.Message, kv...)
		default:
			r.log.Infow(d.Message, kv...)
		}
	}
}
