package boundary

// Handle identifies a host-owned object across the boundary. Handles are
// opaque table keys, never addresses; the sandbox cannot turn one into a
// pointer. A handle does not own its referent, so dropping one releases
// nothing.
type Handle uint32

// NullHandle is never minted by a table. Static trampolines pass it as the
// receiver.
const NullHandle Handle = 0
