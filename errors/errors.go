package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRegister    Phase = "register"    // synthetic member registration
	PhaseDrain       Phase = "drain"       // context finalization
	PhaseEmit        Phase = "emit"        // applying emission operations
	PhaseMaterialize Phase = "materialize" // auxiliary type construction
	PhaseEncode      Phase = "encode"      // class file writing
	PhaseDecode      Phase = "decode"      // class file reading
)

// Kind categorizes the error
type Kind string

const (
	KindIllegalState     Kind = "illegal_state"
	KindInvalidOperation Kind = "invalid_operation"
	KindMaterialization  Kind = "materialization"
	KindInvalidInput     Kind = "invalid_input"
	KindUnsupported      Kind = "unsupported"
	KindInvalidData      Kind = "invalid_data"
	KindOverflow         Kind = "overflow"
)

// Error is the structured error type used throughout the module
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Type   string
	Member string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Type != "" {
		b.WriteString(" in ")
		b.WriteString(e.Type)
		if e.Member != "" {
			b.WriteByte('.')
			b.WriteString(e.Member)
		}
	} else if e.Member != "" {
		b.WriteString(" at ")
		b.WriteString(e.Member)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target with an empty Phase matches on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Sentinels for errors.Is checks that only care about the error category.
var (
	ErrIllegalState     = &Error{Kind: KindIllegalState}
	ErrInvalidOperation = &Error{Kind: KindInvalidOperation}
	ErrMaterialization  = &Error{Kind: KindMaterialization}
	ErrInvalidInput     = &Error{Kind: KindInvalidInput}
	ErrUnsupported      = &Error{Kind: KindUnsupported}
	ErrInvalidData      = &Error{Kind: KindInvalidData}
)

// KindOf returns the Kind of the first *Error in err's chain.
// Errors from outside this package are reported as KindInvalidInput.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindInvalidInput
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Type sets the internal name of the type being generated
func (b *Builder) Type(name string) *Builder {
	b.err.Type = name
	return b
}

// Member sets the member name the error refers to
func (b *Builder) Member(name string) *Builder {
	b.err.Member = name
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// IllegalState creates an error for an operation attempted in the wrong lifecycle state
func IllegalState(phase Phase, typeName, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIllegalState,
		Type:   typeName,
		Detail: detail,
	}
}

// InvalidOperation creates an error for applying an operation flagged invalid
func InvalidOperation(op any) *Error {
	return &Error{
		Phase:  PhaseEmit,
		Kind:   KindInvalidOperation,
		Detail: fmt.Sprintf("cannot apply invalid operation %T", op),
	}
}

// Materialization wraps a failure raised while building an auxiliary type
func Materialization(typeName, auxName string, cause error) *Error {
	return &Error{
		Phase:  PhaseMaterialize,
		Kind:   KindMaterialization,
		Type:   typeName,
		Member: auxName,
		Detail: "materialize auxiliary type",
		Cause:  cause,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
	}
}

// Overflow creates an error for a value exceeding a format limit
func Overflow(phase Phase, what string, value, limit int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: fmt.Sprintf("%s %d exceeds limit %d", what, value, limit),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a class file parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}
