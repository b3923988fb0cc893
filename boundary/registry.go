package boundary

import (
	"context"
	"sync"

	"github.com/pixll/wasm-bridge/arena"
	"github.com/pixll/wasm-bridge/errors"
)

// Impl is a registered implementation: receiver handle and encoded-args
// span in, encoded-result span out. The session gives the implementation
// arena access for decoding arguments and encoding the reply.
type Impl func(ctx context.Context, sess *Session, recv Handle, args arena.Span) (arena.Span, error)

// Registry maps (interface, method) pairs to implementations. It is
// populated at session setup and read-only during the call phase;
// registering a pair twice overwrites the earlier implementation.
type Registry struct {
	impls map[string]map[string]Impl
	mu    sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		impls: make(map[string]map[string]Impl),
	}
}

// Register binds an implementation to an (interface, method) pair.
func (r *Registry) Register(iface, method string, impl Impl) error {
	if iface == "" {
		return errors.InvalidInput(errors.PhaseDispatch, "interface name cannot be empty")
	}
	if method == "" {
		return errors.InvalidInput(errors.PhaseDispatch, "method name cannot be empty")
	}
	if impl == nil {
		return errors.InvalidInput(errors.PhaseDispatch, "implementation cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.impls[iface] == nil {
		r.impls[iface] = make(map[string]Impl)
	}
	r.impls[iface][method] = impl
	return nil
}

// RegisterInterface binds every implementation in impls under one
// interface name.
func (r *Registry) RegisterInterface(iface string, impls map[string]Impl) error {
	for method, impl := range impls {
		if err := r.Register(iface, method, impl); err != nil {
			return err
		}
	}
	return nil
}

// Lookup resolves an (interface, method) pair.
func (r *Registry) Lookup(iface, method string) (Impl, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	methods, ok := r.impls[iface]
	if !ok {
		return nil, false
	}
	impl, ok := methods[method]
	return impl, ok
}

// Len returns the number of registered implementations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, methods := range r.impls {
		count += len(methods)
	}
	return count
}
