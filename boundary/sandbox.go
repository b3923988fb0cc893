package boundary

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/pixll/wasm-bridge/arena"
	"github.com/pixll/wasm-bridge/errors"
)

// hostModuleName is the import namespace the guest reaches the host
// through.
const hostModuleName = "pixll:bridge"

// initExport is the optional guest export that receives the arena
// placement. Spans are arena-relative, so a guest that writes payloads
// itself needs the base address to turn offsets into linear-memory
// addresses.
const initExport = "bridge_init"

// pageSize is the wasm linear memory page size.
const pageSize = 65536

// SandboxConfig controls guest instantiation.
type SandboxConfig struct {
	// ArenaCapacity is the byte size of the transfer arena reserved in
	// guest linear memory. 0 means DefaultArenaCapacity.
	ArenaCapacity uint32

	// MemoryLimitPages caps guest memory in 64KB pages. 0 means the
	// wazero default.
	MemoryLimitPages uint32

	// Name names the guest module instance. Defaults to "guest".
	Name string
}

// Sandbox is a WebAssembly guest bound to a session. The session's arena
// lives in a reserved range of guest linear memory, so spans cross the
// boundary without re-encoding.
type Sandbox struct {
	runtime wazero.Runtime
	guest   api.Module
	session *Session
}

var (
	// dispatch(recv, iface_off, iface_len, method_off, method_len,
	// args_off, args_len) -> (i64 packed_span, i32 status)
	dispatchParams = []api.ValueType{
		api.ValueTypeI32, api.ValueTypeI32, api.ValueTypeI32,
		api.ValueTypeI32, api.ValueTypeI32, api.ValueTypeI32,
		api.ValueTypeI32,
	}
	dispatchResults = []api.ValueType{api.ValueTypeI64, api.ValueTypeI32}
)

// NewSandbox compiles and instantiates a guest module, reserves the arena
// range in its linear memory, and builds the session around it. The
// registry may be pre-populated; nil creates an empty one.
func NewSandbox(ctx context.Context, guest []byte, registry *Registry, cfg SandboxConfig) (*Sandbox, error) {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	runtime := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	sb := &Sandbox{runtime: runtime}

	if registry == nil {
		registry = NewRegistry()
	}

	_, err := runtime.NewHostModuleBuilder(hostModuleName).
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(sb.hostDispatch), dispatchParams, dispatchResults).
		Export("dispatch").
		Instantiate(ctx)
	if err != nil {
		runtime.Close(ctx)
		return nil, errors.Instantiation(err)
	}

	compiled, err := runtime.CompileModule(ctx, guest)
	if err != nil {
		runtime.Close(ctx)
		return nil, errors.Load("compile guest module", err)
	}

	name := cfg.Name
	if name == "" {
		name = "guest"
	}
	mod, err := runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		runtime.Close(ctx)
		return nil, errors.Instantiation(err)
	}
	sb.guest = mod

	mem := mod.Memory()
	if mem == nil {
		runtime.Close(ctx)
		return nil, errors.New(errors.PhaseLoad, errors.KindInstantiation).
			Detail("guest exports no linear memory").
			Build()
	}

	capacity := cfg.ArenaCapacity
	if capacity == 0 {
		capacity = DefaultArenaCapacity
	}
	pages := (capacity + pageSize - 1) / pageSize
	prevPages, ok := mem.Grow(pages)
	if !ok {
		runtime.Close(ctx)
		return nil, errors.OutOfMemory("guest memory cannot back the arena", nil)
	}
	base := prevPages * pageSize

	session, err := NewSession(Config{
		Region:   regionFromMemory(mem, base, capacity),
		Registry: registry,
	})
	if err != nil {
		runtime.Close(ctx)
		return nil, err
	}
	sb.session = session

	if init := mod.ExportedFunction(initExport); init != nil {
		if _, err := init.Call(ctx, uint64(base), uint64(capacity)); err != nil {
			runtime.Close(ctx)
			return nil, errors.Wrap(errors.PhaseLoad, errors.KindInstantiation, err, "guest bridge_init trapped")
		}
	}

	Logger().Debug("sandbox ready",
		zap.String("guest", name),
		zap.Uint32("arena_base", base),
		zap.Uint32("arena_capacity", capacity))
	return sb, nil
}

// Call invokes a guest-exported trampoline by symbol: receiver plus packed
// argument span in, result span out, with the wire status mapped back to
// an error.
func (sb *Sandbox) Call(ctx context.Context, symbol string, recv Handle, args arena.Span) (arena.Span, error) {
	fn := sb.guest.ExportedFunction(symbol)
	if fn == nil {
		return arena.Span{}, errors.New(errors.PhaseDispatch, errors.KindNotRegistered).
			Detail("guest exports no symbol %q", symbol).
			Build()
	}

	results, err := fn.Call(ctx, uint64(recv), uint64(args.Offset), uint64(args.Length))
	if err != nil {
		return arena.Span{}, errors.Wrap(errors.PhaseDispatch, errors.KindInternal, err, "guest trampoline trapped")
	}
	if len(results) != 2 {
		return arena.Span{}, errors.New(errors.PhaseDispatch, errors.KindInternal).
			Detail("trampoline %q returned %d results, want 2", symbol, len(results)).
			Build()
	}

	if status := Status(uint32(results[1])); status != StatusOK {
		return arena.Span{}, status.Err()
	}
	return UnpackSpan(results[0]), nil
}

// Session exposes the session bound to this sandbox.
func (sb *Sandbox) Session() *Session {
	return sb.session
}

// Close tears down the session and the wazero runtime, including the guest
// instance.
func (sb *Sandbox) Close(ctx context.Context) error {
	if sb.session != nil {
		sb.session.Close()
	}
	return sb.runtime.Close(ctx)
}

// hostDispatch is the guest-facing side of the registry: the imported
// dispatch function resolves interface and method names written into the
// arena and forwards to the registered implementation.
func (sb *Sandbox) hostDispatch(ctx context.Context, _ api.Module, stack []uint64) {
	if sb.session == nil {
		stack[0] = PackSpan(arena.Span{})
		stack[1] = uint64(StatusInternal)
		return
	}

	recv := Handle(uint32(stack[0]))
	ifaceSpan := arena.Span{Offset: uint32(stack[1]), Length: uint32(stack[2])}
	methodSpan := arena.Span{Offset: uint32(stack[3]), Length: uint32(stack[4])}
	argsSpan := arena.Span{Offset: uint32(stack[5]), Length: uint32(stack[6])}

	result, err := sb.dispatchFromGuest(ctx, recv, ifaceSpan, methodSpan, argsSpan)
	stack[0] = PackSpan(result)
	stack[1] = uint64(StatusOf(err))
}

func (sb *Sandbox) dispatchFromGuest(ctx context.Context, recv Handle, iface, method, args arena.Span) (arena.Span, error) {
	ifaceName, err := sb.session.ReadBuffer(iface)
	if err != nil {
		return arena.Span{}, err
	}
	methodName, err := sb.session.ReadBuffer(method)
	if err != nil {
		return arena.Span{}, err
	}
	return sb.session.Dispatch(ctx, string(ifaceName), string(methodName), recv, args)
}
