package wasmbridge

// Region is a bounded byte range an arena can manage. Implementations are
// backed by host heap memory or by a reserved range of sandbox linear memory.
// Offsets are relative to the start of the region.
type Region interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	Size() uint32
}
