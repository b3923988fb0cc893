// Package errors provides structured error types for the wasm-bridge library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: source line for parse
// errors, interface/member names for generator and dispatch errors, and a
// cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParse, errors.KindSyntax).
//		Line(12).
//		Detail("expected interface name, got %q", tok).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnexpectedToken(3, "};")
//	err := errors.UnresolvedRef("GPUAdapter", "requestDevice", "GPUDevice")
//	err := errors.Exhausted(24, 8)
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on (Phase, Kind), so callers can branch on error category
// without inspecting message text.
package errors
