package containers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/idraw/engine/core"
)

type vertex struct {
	X, Y, Z float32
	Color   [4]uint8
}

func TestByteBuffer_RoundTripMixedValues(t *testing.T) {
	b := NewByteBuffer(4)
	b.WriteU32(7)
	b.WriteF32(1.5)
	b.WriteU8(200)
	b.WriteU16(65000)
	b.WriteI32(-3)
	Write(b, vertex{X: 1, Y: 2, Z: 3, Color: [4]uint8{1, 2, 3, 4}})
	b.WriteBulk([]byte("abc"))

	require.Equal(t, 4+4+1+2+4+16+3, b.Size())

	b.SeekToBeginning()
	assert.Equal(t, uint32(7), b.ReadU32())
	assert.Equal(t, float32(1.5), b.ReadF32())
	assert.Equal(t, uint8(200), b.ReadU8())
	assert.Equal(t, uint16(65000), b.ReadU16())
	assert.Equal(t, int32(-3), b.ReadI32())
	assert.Equal(t, vertex{X: 1, Y: 2, Z: 3, Color: [4]uint8{1, 2, 3, 4}}, Read[vertex](b))
	dst := make([]byte, 3)
	b.ReadBulk(dst)
	assert.Equal(t, "abc", string(dst))
	assert.Equal(t, 0, b.Remaining())
}

func TestByteBuffer_GrowthKeepsWrittenBytes(t *testing.T) {
	b := NewByteBuffer(2)
	for i := uint32(0); i < 1000; i++ {
		b.WriteU32(i)
	}
	assert.GreaterOrEqual(t, b.Capacity(), b.Size())

	b.SeekToBeginning()
	for i := uint32(0); i < 1000; i++ {
		require.Equal(t, i, b.ReadU32())
	}
}

func TestByteBuffer_ClearKeepsCapacity(t *testing.T) {
	b := NewByteBuffer(16)
	b.WriteBulk(make([]byte, 64))
	c := b.Capacity()
	_ = b.ReadU8()

	b.Clear()
	assert.True(t, b.Empty())
	assert.Equal(t, 0, b.Position())
	assert.Equal(t, c, b.Capacity())
}

func TestByteBuffer_OverreadPanics(t *testing.T) {
	b := NewByteBuffer(8)
	b.WriteU16(1)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, core.ErrBufferOverread))
	}()
	b.ReadU32()
}

func TestByteBuffer_GenericReadPastEndPanics(t *testing.T) {
	b := NewByteBuffer(8)
	b.WriteF32(1)
	assert.Panics(t, func() { Read[vertex](b) })
}

func TestByteBuffer_NextIsAView(t *testing.T) {
	b := NewByteBuffer(8)
	b.WriteBulk([]byte{1, 2, 3, 4})
	v := b.Next(2)
	assert.Equal(t, []byte{1, 2}, v)
	assert.Equal(t, 2, b.Position())
	assert.Equal(t, 2, cap(v))
}
