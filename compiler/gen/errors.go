package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidClass indicates a class description error.
	ErrInvalidClass = errors.New("patterngen: invalid class description")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("patterngen: missing configuration")
	// ErrMissingAffects indicates a marker without an affects list on a
	// class targeted by more than one pattern.
	ErrMissingAffects = errors.New("patterngen: marker must name its affected patterns")
	// ErrEmissionFailed indicates a render, format or write failure.
	ErrEmissionFailed = errors.New("patterngen: emission failed")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("patterngen: code generation failed")
)

// StructuralError reports a class description the compiler cannot work
// with: a kind other than struct or interface, an invalid name, a broken
// field or method, or an unusable marker.
type StructuralError struct {
	Class   string // class name
	Element string // field or method name (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	var b strings.Builder
	b.WriteString("patterngen: structural error")
	if e.Class != "" {
		b.WriteString(" on class ")
		b.WriteString(e.Class)
	}
	if e.Element != "" {
		b.WriteString(" element ")
		b.WriteString(e.Element)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *StructuralError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for StructuralError.
func (e *StructuralError) Is(target error) bool {
	return target == ErrInvalidClass
}

// NewStructuralError creates a new StructuralError.
func NewStructuralError(class, element, message string, cause error) *StructuralError {
	return &StructuralError{
		Class:   class,
		Element: element,
		Message: message,
		Cause:   cause,
	}
}

// AmbiguityError reports a rule marker that omits its affects list on a
// class targeted by more than one pattern. The offending rule is excluded
// from classification; processing continues.
type AmbiguityError struct {
	Class   string
	Element string // field or method carrying the marker
	Marker  string // marker kind, e.g. "ignore"
}

// Error implements the error interface.
func (e *AmbiguityError) Error() string {
	var b strings.Builder
	b.WriteString("patterngen: ambiguity error")
	if e.Class != "" {
		b.WriteString(" on class ")
		b.WriteString(e.Class)
	}
	if e.Element != "" {
		b.WriteString(" element ")
		b.WriteString(e.Element)
	}
	b.WriteString(": ")
	if e.Marker != "" {
		b.WriteString(e.Marker)
		b.WriteString(" ")
	}
	b.WriteString("marker must name its affected patterns when multiple patterns target the class")
	return b.String()
}

// Is reports whether the target matches the sentinel error for AmbiguityError.
func (e *AmbiguityError) Is(target error) bool {
	return target == ErrMissingAffects
}

// NewAmbiguityError creates a new AmbiguityError.
func NewAmbiguityError(class, element, marker string) *AmbiguityError {
	return &AmbiguityError{
		Class:   class,
		Element: element,
		Marker:  marker,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("patterngen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("patterngen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// EmissionError reports a companion that could not be rendered, formatted
// or written. It fails the class it belongs to and never halts the run.
type EmissionError struct {
	Class   string
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *EmissionError) Error() string {
	var b strings.Builder
	b.WriteString("patterngen: emission error")
	if e.Class != "" {
		b.WriteString(" on class ")
		b.WriteString(e.Class)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *EmissionError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for EmissionError.
func (e *EmissionError) Is(target error) bool {
	return target == ErrEmissionFailed
}

// NewEmissionError creates a new EmissionError.
func NewEmissionError(class, file, message string, cause error) *EmissionError {
	return &EmissionError{
		Class:   class,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// GenerationError is returned by Generate after the run completes when
// one or more classes failed. Successful classes keep their output.
type GenerationError struct {
	Failed  []string // names of the classes that failed
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("patterngen: generation error")
	if len(e.Failed) > 0 {
		fmt.Fprintf(&b, " (%d classes: %s)", len(e.Failed), strings.Join(e.Failed, ", "))
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(failed []string, message string, cause error) *GenerationError {
	return &GenerationError{
		Failed:  failed,
		Message: message,
		Cause:   cause,
	}
}

// IsStructuralError reports whether the error is a StructuralError.
func IsStructuralError(err error) bool {
	var structErr *StructuralError
	return errors.As(err, &structErr)
}

// IsAmbiguityError reports whether the error is an AmbiguityError.
func IsAmbiguityError(err error) bool {
	var ambErr *AmbiguityError
	return errors.As(err, &ambErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsEmissionError reports whether the error is an EmissionError.
func IsEmissionError(err error) bool {
	var emitErr *EmissionError
	return errors.As(err, &emitErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
