package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse    Phase = "parse"    // IDL parsing
	PhaseGenerate Phase = "generate" // binding generation
	PhaseAlloc    Phase = "alloc"    // arena operations
	PhaseDispatch Phase = "dispatch" // trampoline dispatch
	PhaseSession  Phase = "session"  // session setup and teardown
	PhaseLoad     Phase = "load"     // sandbox guest loading
)

// Kind categorizes the error
type Kind string

const (
	KindSyntax          Kind = "syntax"
	KindUnexpectedToken Kind = "unexpected_token"
	KindUnexpectedClose Kind = "unexpected_close"
	KindDuplicateName   Kind = "duplicate_name"
	KindUnresolvedRef   Kind = "unresolved_ref"
	KindExhausted       Kind = "exhausted"
	KindOutOfBounds     Kind = "out_of_bounds"
	KindOutOfMemory     Kind = "out_of_memory"
	KindNotRegistered   Kind = "not_registered"
	KindInvalidInput    Kind = "invalid_input"
	KindInstantiation   Kind = "instantiation"
	KindInternal        Kind = "internal"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Iface  string
	Member string
	Detail string
	Line   int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}

	if e.Iface != "" {
		b.WriteString(" at ")
		b.WriteString(e.Iface)
		if e.Member != "" {
			b.WriteByte('.')
			b.WriteString(e.Member)
		}
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

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
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

// Line sets the source line number
func (b *Builder) Line(n int) *Builder {
	b.err.Line = n
	return b
}

// Iface sets the interface name
func (b *Builder) Iface(name string) *Builder {
	b.err.Iface = name
	return b
}

// Member sets the member (method or attribute) name
func (b *Builder) Member(name string) *Builder {
	b.err.Member = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
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

// Syntax creates a located syntax error
func Syntax(line int, msg string, args ...any) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindSyntax,
		Line:   line,
		Detail: fmt.Sprintf(msg, args...),
	}
}

// UnexpectedToken creates an error for a token that cannot start a construct
func UnexpectedToken(line int, token string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindUnexpectedToken,
		Line:   line,
		Detail: fmt.Sprintf("unexpected token %q", token),
		Value:  token,
	}
}

// UnexpectedClose creates an error for a close marker with no open interface
func UnexpectedClose(line int) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindUnexpectedClose,
		Line:   line,
		Detail: `"};" without an open interface`,
	}
}

// DuplicateName creates an error for a name collision; iface may be empty
// when the collision is between interfaces themselves
func DuplicateName(line int, iface, what, name string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindDuplicateName,
		Line:   line,
		Iface:  iface,
		Detail: fmt.Sprintf("duplicate %s %q", what, name),
		Value:  name,
	}
}

// UnresolvedRef creates an error for an interface reference that matches no
// declared interface
func UnresolvedRef(iface, member, ref string) *Error {
	return &Error{
		Phase:  PhaseGenerate,
		Kind:   KindUnresolvedRef,
		Iface:  iface,
		Member: member,
		Detail: fmt.Sprintf("type %q does not match any interface", ref),
		Value:  ref,
	}
}

// Exhausted creates an arena exhaustion error
func Exhausted(requested, remaining uint32) *Error {
	return &Error{
		Phase:  PhaseAlloc,
		Kind:   KindExhausted,
		Detail: fmt.Sprintf("requested %d bytes, %d remaining", requested, remaining),
		Value:  requested,
	}
}

// OutOfBounds creates an error for a read outside the arena's capacity
func OutOfBounds(offset, length, capacity uint32) *Error {
	return &Error{
		Phase:  PhaseAlloc,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("range [%d, %d) exceeds capacity %d", offset, uint64(offset)+uint64(length), capacity),
		Value:  offset,
	}
}

// OutOfMemory creates a fatal backing-region error
func OutOfMemory(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseAlloc,
		Kind:   KindOutOfMemory,
		Detail: detail,
		Cause:  cause,
	}
}

// NotRegistered creates a dispatch error for a missing implementation
func NotRegistered(iface, method string) *Error {
	return &Error{
		Phase:  PhaseDispatch,
		Kind:   KindNotRegistered,
		Iface:  iface,
		Member: method,
		Detail: "no implementation registered",
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

// Instantiation creates a guest instantiation error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInstantiation,
		Detail: "instantiate guest module",
		Cause:  cause,
	}
}

// Load creates a guest loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}

// Internal wraps an error that escaped the bridge's taxonomy
func Internal(phase Phase, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInternal,
		Detail: "internal error",
		Cause:  cause,
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
