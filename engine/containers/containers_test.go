package containers

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack_PushPopTop(t *testing.T) {
	var s Stack[int]
	assert.True(t, s.Empty())
	_, ok := s.Pop()
	assert.False(t, ok)

	s.Push(1)
	s.Push(2)
	assert.Equal(t, 2, s.Top())
	s.SetTop(5)
	v, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, 5, v)
	assert.Equal(t, 1, s.Len())

	s.Reset()
	assert.True(t, s.Empty())
}

func TestRingQueue_FIFOAndBounds(t *testing.T) {
	q := NewRingQueue[string](2)
	require.NoError(t, q.Enqueue("a"))
	require.NoError(t, q.Enqueue("b"))
	assert.ErrorIs(t, q.Enqueue("c"), ErrQueueFull)
	assert.True(t, q.IsFull())

	v, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	v, _ = q.Dequeue()
	assert.Equal(t, "a", v)
	require.NoError(t, q.Enqueue("c"))
	v, _ = q.Dequeue()
	assert.Equal(t, "b", v)
	v, _ = q.Dequeue()
	assert.Equal(t, "c", v)

	_, err = q.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)
}

func TestRingQueue_ConcurrentProducer(t *testing.T) {
	q := NewRingQueue[int](1024)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			_ = q.Enqueue(i)
		}
	}()
	wg.Wait()

	for i := 0; i < 500; i++ {
		v, err := q.Dequeue()
		require.NoError(t, err)
		require.Equal(t, i, v)
	}
}

func TestSlotTable_ReusesFreedIDs(t *testing.T) {
	st := NewSlotTable[string](4)
	a := st.Insert("a")
	b := st.Insert("b")
	assert.Equal(t, uint32(1), a)
	assert.Equal(t, uint32(2), b)
	assert.False(t, st.Has(0))

	require.NoError(t, st.Remove(a))
	assert.Error(t, st.Remove(a))
	_, ok := st.Get(a)
	assert.False(t, ok)

	c := st.Insert("c")
	assert.Equal(t, a, c)
	assert.Equal(t, 2, st.Len())

	require.NoError(t, st.Set(c, "cc"))
	v, _ := st.Get(c)
	assert.Equal(t, "cc", v)

	var ids []uint32
	for id := range st.All() {
		ids = append(ids, id)
	}
	assert.Equal(t, []uint32{1, 2}, ids)
}

func TestSlotTable_ZeroValueUsable(t *testing.T) {
	var st SlotTable[int]
	id := st.Insert(3)
	assert.Equal(t, uint32(1), id)
	assert.Equal(t, 1, st.Len())
}
