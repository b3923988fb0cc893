// Package wasmbridge provides an IDL-driven binding toolchain for calling
// across a host/sandbox WebAssembly boundary.
//
// The toolchain parses a small WebIDL subset into a schema, generates the
// binding surface (opaque handle types, fixed-signature trampolines, and a
// dispatch-registration contract), and supplies the bounded arena that moves
// variable-length data across the boundary as (offset, length) spans.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	wasmbridge/          Root package with the core Region interface
//	├── webidl/          WebIDL-subset parser: tokenizer, schema, type mapper
//	├── bindgen/         Binding generator: surface model and Go emission
//	├── arena/           Bounded bump allocator over a Region
//	├── boundary/        Session runtime: dispatch registry, handle table,
//	│                    wire ABI, wazero-backed sandbox
//	├── errors/          Structured error types for debugging
//	└── cmd/bindgen/     CLI for parsing IDL and emitting bindings
//
// # Quick Start
//
// Parse a schema and generate its binding surface:
//
//	schema, err := webidl.Parse(source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	surface, err := bindgen.Generate(schema)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	src := bindgen.EmitGo(surface, bindgen.EmitOptions{Package: "gpu"})
//	os.WriteFile("gpu_bindings.go", src, 0o644)
//
// Host-side dispatch goes through an explicit session:
//
//	sess, err := boundary.NewSession(boundary.Config{})
//	sess.Registry().Register("GPUAdapter", "requestDevice", requestDevice)
//
//	args, _ := sess.WriteBuffer(payload)
//	out, err := sess.Dispatch(ctx, "GPUAdapter", "requestDevice", recv, args)
//
// # Memory Model
//
// All variable-length data crosses the boundary through an arena: a bounded
// bump allocator addressed by offsets, never by raw pointers. Spans returned
// by an arena stay valid until the owning arena is reset; reset is the only
// way space is reclaimed. An arena backed by sandbox linear memory shares the
// WASM limitation that memory can grow but never shrink.
//
// # Thread Safety
//
// Parsing and generation are synchronous and deterministic. A session and its
// arena belong to one execution context at a time; the alternating host/guest
// call protocol serializes access, so the arena itself does not lock.
package wasmbridge
