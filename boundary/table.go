package boundary

import (
	"sync"
)

// HandleTable mints handles for host-owned objects handed across the
// boundary. Handles are 1-based; removed slots are reused.
type HandleTable struct {
	entries  []tableEntry
	freeList []Handle
	mu       sync.RWMutex
}

type tableEntry struct {
	value any
	valid bool
}

func NewHandleTable() *HandleTable {
	return &HandleTable{
		entries:  make([]tableEntry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

// Insert stores a value and returns its handle. NullHandle is never
// returned.
func (t *HandleTable) Insert(value any) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := tableEntry{value: value, valid: true}

	if len(t.freeList) > 0 {
		handle := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[handle-1] = e
		return handle
	}

	t.entries = append(t.entries, e)
	return Handle(len(t.entries))
}

// Get retrieves a value by handle.
func (t *HandleTable) Get(handle Handle) (any, bool) {
	if handle == NullHandle {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := handle - 1
	if int(idx) >= len(t.entries) {
		return nil, false
	}

	e := t.entries[idx]
	if !e.valid {
		return nil, false
	}
	return e.value, true
}

// Remove invalidates a handle and returns the value it referred to. The
// slot becomes reusable by a later Insert.
func (t *HandleTable) Remove(handle Handle) (any, bool) {
	if handle == NullHandle {
		return nil, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := handle - 1
	if int(idx) >= len(t.entries) {
		return nil, false
	}

	e := &t.entries[idx]
	if !e.valid {
		return nil, false
	}

	value := e.value
	e.valid = false
	e.value = nil
	t.freeList = append(t.freeList, handle)

	return value, true
}

// Len returns the number of live handles.
func (t *HandleTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for _, e := range t.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// Clear invalidates every handle at once. The table stays usable; handles
// minted afterwards restart from 1.
func (t *HandleTable) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.entries {
		t.entries[i].valid = false
		t.entries[i].value = nil
	}
	t.entries = t.entries[:0]
	t.freeList = t.freeList[:0]
}
