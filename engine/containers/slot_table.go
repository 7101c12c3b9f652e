package containers

import (
	"fmt"
	"iter"
)

// SlotTable hands out small integer ids for stored values and reuses the ids
// of removed entries. Id 0 is never handed out so it can mean "no value".
type SlotTable[T any] struct {
	slots []T
	used  []bool
	free  []uint32
}

func NewSlotTable[T any](capacity int) *SlotTable[T] {
	t := &SlotTable[T]{
		slots: make([]T, 1, capacity+1),
		used:  make([]bool, 1, capacity+1),
	}
	return t
}

// Insert stores v and returns its id.
func (t *SlotTable[T]) Insert(v T) uint32 {
	if len(t.slots) == 0 {
		t.slots = append(t.slots, *new(T))
		t.used = append(t.used, false)
	}
	// Existing free spot. Take it.
	if n := len(t.free); n > 0 {
		id := t.free[n-1]
		t.free = t.free[:n-1]
		t.slots[id] = v
		t.used[id] = true
		return id
	}
	t.slots = append(t.slots, v)
	t.used = append(t.used, true)
	return uint32(len(t.slots) - 1)
}

func (t *SlotTable[T]) Get(id uint32) (T, bool) {
	if !t.Has(id) {
		var zero T
		return zero, false
	}
	return t.slots[id], true
}

// Set overwrites a live entry.
func (t *SlotTable[T]) Set(id uint32, v T) error {
	if !t.Has(id) {
		return fmt.Errorf("slot table: id '%d' is not in use", id)
	}
	t.slots[id] = v
	return nil
}

func (t *SlotTable[T]) Has(id uint32) bool {
	return id != 0 && int(id) < len(t.used) && t.used[id]
}

// Remove releases the id for reuse.
func (t *SlotTable[T]) Remove(id uint32) error {
	if !t.Has(id) {
		return fmt.Errorf("slot table: id '%d' out of range or already free (max=%d)", id, len(t.slots))
	}
	var zero T
	t.slots[id] = zero
	t.used[id] = false
	t.free = append(t.free, id)
	return nil
}

// Len is the number of live entries.
func (t *SlotTable[T]) Len() int {
	if len(t.slots) == 0 {
		return 0
	}
	return len(t.slots) - 1 - len(t.free)
}

// All iterates over live entries in id order.
func (t *SlotTable[T]) All() iter.Seq2[uint32, T] {
	return func(yield func(uint32, T) bool) {
		for id := 1; id < len(t.slots); id++ {
			if !t.used[id] {
				continue
			}
			if !yield(uint32(id), t.slots[id]) {
				return
			}
		}
	}
}
