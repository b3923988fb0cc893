package boundary

import (
	"github.com/tetratelabs/wazero/api"

	wasmbridge "github.com/pixll/wasm-bridge"
	"github.com/pixll/wasm-bridge/errors"
)

// regionFromMemory adapts a reserved range of guest linear memory to the
// Region interface. Offsets are relative to base, so arena spans stay
// meaningful on both sides of the boundary. Reads copy out; callers never
// alias guest memory.
func regionFromMemory(mem api.Memory, base, size uint32) wasmbridge.Region {
	return &memoryRegion{mem: mem, base: base, size: size}
}

type memoryRegion struct {
	mem  api.Memory
	base uint32
	size uint32
}

func (m *memoryRegion) Read(offset uint32, length uint32) ([]byte, error) {
	if uint64(offset)+uint64(length) > uint64(m.size) {
		return nil, errors.OutOfBounds(offset, length, m.size)
	}
	data, ok := m.mem.Read(m.base+offset, length)
	if !ok {
		return nil, errors.OutOfBounds(offset, length, m.size)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *memoryRegion) Write(offset uint32, data []byte) error {
	if uint64(offset)+uint64(len(data)) > uint64(m.size) {
		return errors.OutOfBounds(offset, uint32(len(data)), m.size)
	}
	if !m.mem.Write(m.base+offset, data) {
		return errors.OutOfBounds(offset, uint32(len(data)), m.size)
	}
	return nil
}

func (m *memoryRegion) Size() uint32 {
	return m.size
}
