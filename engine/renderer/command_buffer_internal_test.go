package renderer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/idraw/engine/core"
)

func TestCommands_UnknownOpcodeAborts(t *testing.T) {
	cb := NewCommandBuffer(64)
	cb.Draw(0, 3)
	// Forge a record the decoder does not know.
	cb.commands.WriteU32(0xdead)
	cb.count++

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, core.ErrUnknownOpcode))
	}()
	for range cb.Commands() {
	}
}

func TestCommandBuffer_PushAdvancesCountOnce(t *testing.T) {
	cb := NewCommandBuffer(0)
	before := cb.Size()
	cb.Push(DrawCmd{Start: 1, Count: 2})
	assert.Equal(t, uint32(1), cb.Count())
	assert.Equal(t, before+4+8, cb.Size())
}
