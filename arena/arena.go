package arena

import (
	wasmbridge "github.com/pixll/wasm-bridge"
	"github.com/pixll/wasm-bridge/errors"
)

type Region = wasmbridge.Region

// Span locates an allocation within an arena. Spans are plain values and
// carry no reference to the arena that produced them; they remain valid
// until that arena's next Reset.
type Span struct {
	Offset uint32
	Length uint32
}

// End returns the first offset past the span.
func (s Span) End() uint32 {
	return s.Offset + s.Length
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.Length == 0
}

// Arena is a bounded bump allocator over a Region it exclusively owns.
// The zero value is not usable; construct with New or NewWithRegion.
type Arena struct {
	region   Region
	capacity uint32
	used     uint32
}

// New creates an arena over a fresh heap-backed region of the given
// capacity.
func New(capacity uint32) *Arena {
	return &Arena{
		region:   sliceRegion(make([]byte, capacity)),
		capacity: capacity,
	}
}

// NewWithRegion creates an arena over an externally provided region, taking
// exclusive ownership of it. The arena's capacity is the region's size.
func NewWithRegion(r Region) (*Arena, error) {
	if r == nil {
		return nil, errors.OutOfMemory("no backing region", nil)
	}
	size := r.Size()
	if size == 0 {
		return nil, errors.OutOfMemory("backing region is empty", nil)
	}
	return &Arena{region: r, capacity: size}, nil
}

// Allocate reserves size bytes and returns their offset. It fails with an
// exhaustion error exactly when size exceeds the remaining capacity;
// requesting the whole remainder succeeds.
func (a *Arena) Allocate(size uint32) (uint32, error) {
	if size > a.capacity-a.used {
		return 0, errors.Exhausted(size, a.capacity-a.used)
	}
	offset := a.used
	a.used += size
	return offset, nil
}

// Write allocates len(data) bytes, copies data into them, and returns the
// allocation offset.
func (a *Arena) Write(data []byte) (uint32, error) {
	if uint64(len(data)) > uint64(a.capacity-a.used) {
		return 0, errors.Exhausted(uint32(len(data)), a.capacity-a.used)
	}
	offset := a.used
	if err := a.region.Write(offset, data); err != nil {
		return 0, err
	}
	a.used += uint32(len(data))
	return offset, nil
}

// Read copies length bytes starting at offset out of the arena. Reads are
// checked against capacity, not the current watermark, so a span written
// before the latest allocations is always readable.
func (a *Arena) Read(offset, length uint32) ([]byte, error) {
	if offset > a.capacity || length > a.capacity-offset {
		return nil, errors.OutOfBounds(offset, length, a.capacity)
	}
	return a.region.Read(offset, length)
}

// ReadSpan copies the bytes a span refers to out of the arena.
func (a *Arena) ReadSpan(s Span) ([]byte, error) {
	return a.Read(s.Offset, s.Length)
}

// WriteSpan allocates and copies data, returning the covering span.
func (a *Arena) WriteSpan(data []byte) (Span, error) {
	offset, err := a.Write(data)
	if err != nil {
		return Span{}, err
	}
	return Span{Offset: offset, Length: uint32(len(data))}, nil
}

// Reset discards all allocations at once. Offsets and spans handed out
// before the reset must not be used afterwards.
func (a *Arena) Reset() {
	a.used = 0
}

// Capacity returns the fixed byte capacity of the arena.
func (a *Arena) Capacity() uint32 {
	return a.capacity
}

// Used returns the current watermark.
func (a *Arena) Used() uint32 {
	return a.used
}

// Remaining returns the bytes still available before exhaustion.
func (a *Arena) Remaining() uint32 {
	return a.capacity - a.used
}

// sliceRegion adapts a host heap slice to the Region interface. Read copies
// out so callers never alias arena storage.
type sliceRegion []byte

func (r sliceRegion) Read(offset, length uint32) ([]byte, error) {
	if uint64(offset)+uint64(length) > uint64(len(r)) {
		return nil, errors.OutOfBounds(offset, length, uint32(len(r)))
	}
	out := make([]byte, length)
	copy(out, r[offset:uint64(offset)+uint64(length)])
	return out, nil
}

func (r sliceRegion) Write(offset uint32, data []byte) error {
	if uint64(offset)+uint64(len(data)) > uint64(len(r)) {
		return errors.OutOfBounds(offset, uint32(len(data)), uint32(len(r)))
	}
	copy(r[offset:], data)
	return nil
}

func (r sliceRegion) Size() uint32 {
	return uint32(len(r))
}
