package boundary

import (
	"context"

	"go.uber.org/zap"

	wasmbridge "github.com/pixll/wasm-bridge"
	"github.com/pixll/wasm-bridge/arena"
	"github.com/pixll/wasm-bridge/errors"
)

// DefaultArenaCapacity is the transfer arena size when Config leaves it
// unset.
const DefaultArenaCapacity = 1 << 20

// Config controls session creation.
type Config struct {
	// ArenaCapacity is the transfer arena size in bytes. 0 means
	// DefaultArenaCapacity. Ignored when Region is set.
	ArenaCapacity uint32

	// Region optionally backs the arena with externally owned storage,
	// such as a range of guest linear memory. The region's size becomes
	// the arena capacity.
	Region wasmbridge.Region

	// Registry optionally shares a pre-populated dispatch registry. nil
	// creates an empty one.
	Registry *Registry
}

// Session is the explicit state of one boundary: a transfer arena, a
// dispatch registry, and a handle table. Sessions are not safe for
// concurrent use; the alternating call protocol is what keeps the arena
// single-writer.
type Session struct {
	arena    *arena.Arena
	registry *Registry
	handles  *HandleTable
}

func NewSession(cfg Config) (*Session, error) {
	var a *arena.Arena
	if cfg.Region != nil {
		var err error
		a, err = arena.NewWithRegion(cfg.Region)
		if err != nil {
			return nil, err
		}
	} else {
		capacity := cfg.ArenaCapacity
		if capacity == 0 {
			capacity = DefaultArenaCapacity
		}
		a = arena.New(capacity)
	}

	registry := cfg.Registry
	if registry == nil {
		registry = NewRegistry()
	}

	s := &Session{
		arena:    a,
		registry: registry,
		handles:  NewHandleTable(),
	}

	Logger().Debug("session created",
		zap.Uint32("arena_capacity", a.Capacity()),
		zap.Int("registered", registry.Len()))
	return s, nil
}

// Dispatch resolves (iface, method) in the registry and invokes the
// implementation with the receiver handle and argument span. A missing
// registration is reported, never skipped.
func (s *Session) Dispatch(ctx context.Context, iface, method string, recv Handle, args arena.Span) (arena.Span, error) {
	impl, ok := s.registry.Lookup(iface, method)
	if !ok {
		return arena.Span{}, errors.NotRegistered(iface, method)
	}
	return impl(ctx, s, recv, args)
}

// WriteBuffer copies data into the arena and returns the covering span.
func (s *Session) WriteBuffer(data []byte) (arena.Span, error) {
	return s.arena.WriteSpan(data)
}

// ReadBuffer copies the bytes a span refers to out of the arena.
func (s *Session) ReadBuffer(span arena.Span) ([]byte, error) {
	return s.arena.ReadSpan(span)
}

// ResetArena discards every arena allocation at once. Spans handed out
// before the reset must not be used afterwards.
func (s *Session) ResetArena() {
	s.arena.Reset()
}

// Arena exposes the session's transfer arena.
func (s *Session) Arena() *arena.Arena {
	return s.arena
}

// Registry exposes the session's dispatch registry.
func (s *Session) Registry() *Registry {
	return s.registry
}

// Handles exposes the session's handle table.
func (s *Session) Handles() *HandleTable {
	return s.handles
}

// Close invalidates all handles and resets the arena. The registry is left
// alone since it may be shared with another session.
func (s *Session) Close() error {
	s.handles.Clear()
	s.arena.Reset()
	return nil
}
