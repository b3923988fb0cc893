package boundary

import (
	"github.com/pixll/wasm-bridge/arena"
	"github.com/pixll/wasm-bridge/errors"
)

// Status is the fixed-width error code carried on the wasm wire in place
// of Go errors. Every trampoline export returns one next to its packed
// result span.
type Status uint32

const (
	StatusOK Status = iota
	StatusNotRegistered
	StatusArenaExhausted
	StatusOutOfBounds
	StatusInternal
)

var statusNames = [...]string{
	StatusOK:             "ok",
	StatusNotRegistered:  "not_registered",
	StatusArenaExhausted: "arena_exhausted",
	StatusOutOfBounds:    "out_of_bounds",
	StatusInternal:       "internal",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// PackSpan packs a span into the single i64 a trampoline returns.
func PackSpan(s arena.Span) uint64 {
	return uint64(s.Offset)<<32 | uint64(s.Length)
}

// UnpackSpan is the inverse of PackSpan.
func UnpackSpan(v uint64) arena.Span {
	return arena.Span{Offset: uint32(v >> 32), Length: uint32(v)}
}

// StatusOf maps an error to its wire status. Errors outside the bridge
// taxonomy become StatusInternal so a failure is never masked.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	be, ok := err.(*errors.Error)
	if !ok {
		return StatusInternal
	}
	switch be.Kind {
	case errors.KindNotRegistered:
		return StatusNotRegistered
	case errors.KindExhausted:
		return StatusArenaExhausted
	case errors.KindOutOfBounds:
		return StatusOutOfBounds
	}
	return StatusInternal
}

// Err reconstructs the error a status stands for. The wire carries no
// detail, so reconstructed errors name only the failure kind.
func (s Status) Err() error {
	switch s {
	case StatusOK:
		return nil
	case StatusNotRegistered:
		return errors.New(errors.PhaseDispatch, errors.KindNotRegistered).
			Detail("reported across the boundary").
			Build()
	case StatusArenaExhausted:
		return errors.New(errors.PhaseAlloc, errors.KindExhausted).
			Detail("reported across the boundary").
			Build()
	case StatusOutOfBounds:
		return errors.New(errors.PhaseAlloc, errors.KindOutOfBounds).
			Detail("reported across the boundary").
			Build()
	}
	return errors.New(errors.PhaseDispatch, errors.KindInternal).
		Detail("reported across the boundary").
		Build()
}
