// Package boundary carries calls between the host and a sandboxed guest.
//
// A Session is the explicit per-boundary state: one transfer arena, one
// dispatch registry, one handle table. Nothing in this package is process
// global; two sessions never share state unless handed the same Registry on
// purpose.
//
// The call path is registration and lookup. The host registers an Impl per
// (interface, method) pair before any call crosses the boundary; a
// trampoline resolves the pair at call time and forwards receiver handle
// plus argument span. A missing registration is a reported dispatch error,
// never a silent no-op.
//
// Handles are table keys, not addresses. The HandleTable mints them for
// host-owned objects; the guest side only ever sees the uint32 key and
// cannot fabricate a valid referent from it.
//
// Sandbox binds a Session to a WebAssembly guest run under wazero. The
// arena is placed in a reserved range of guest linear memory, so spans
// handed across the wire mean the same bytes on both sides; the guest
// reaches host implementations through the imported pixll:bridge dispatch
// function, and the host reaches guest trampolines through Call.
package boundary
