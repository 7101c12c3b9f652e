package renderer_test

import (
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/idraw/engine/renderer"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

func allCommands() []renderer.Command {
	return []renderer.Command{
		renderer.BindPipelineCmd{Pipeline: metadata.PipelineHandle{ID: 3}},
		renderer.BindShaderCmd{Shader: metadata.ShaderHandle{ID: 1}},
		renderer.BindTextureCmd{Texture: metadata.TextureHandle{ID: 4}, Slot: 0, Uniform: metadata.UniformHandle{ID: 2}},
		renderer.UniformMat4(metadata.UniformHandle{ID: 1}, mgl32.Translate3D(1, 2, 3)),
		renderer.BindVertexBufferCmd{Buffer: metadata.VertexBufferHandle{ID: 1}},
		renderer.BindIndexBufferCmd{Buffer: metadata.IndexBufferHandle{ID: 1}},
		renderer.UpdateVertexDataCmd{Buffer: metadata.VertexBufferHandle{ID: 1}, Data: []byte{1, 2, 3, 4, 5}},
		renderer.UpdateIndexDataCmd{Buffer: metadata.IndexBufferHandle{ID: 1}, Data: []byte{0, 0, 0, 0}},
		renderer.UpdateTextureDataCmd{Texture: metadata.TextureHandle{ID: 4}, Width: 1, Height: 1, Data: []byte{9, 9, 9, 9}},
		renderer.DrawCmd{Start: 0, Count: 6},
		renderer.DrawIndexedCmd{Count: 3, Offset: 1},
		renderer.SetViewportCmd{Rect: metadata.Rect{X: 0, Y: 0, Width: 800, Height: 600}},
		renderer.SetScissorCmd{Rect: metadata.Rect{X: -1, Y: 2, Width: 3, Height: 4}},
		renderer.ClearCmd{ClearDesc: metadata.ClearDesc{Flags: metadata.ClearFlagAll, Color: [4]float32{0.1, 0.2, 0.3, 1}, Depth: 1, Stencil: -2}},
	}
}

func TestCommandBuffer_DecodesInOrder(t *testing.T) {
	cb := renderer.NewCommandBuffer(16)
	want := allCommands()
	for _, c := range want {
		cb.Push(c)
	}
	require.Equal(t, uint32(len(want)), cb.Count())
	assert.Equal(t, renderer.CommandBufferStateRecording, cb.State())

	got := slices.Collect(cb.Commands())
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Opcode(), got[i].Opcode())
		assert.EqualValues(t, want[i], got[i], "command %d (%s)", i, want[i].Opcode())
	}

	// A second walk sees the same records.
	assert.Len(t, slices.Collect(cb.Commands()), len(want))
}

func TestCommandBuffer_UniformAccessors(t *testing.T) {
	m := mgl32.Perspective(1, 1.5, 0.1, 100)
	cmd := renderer.UniformMat4(metadata.UniformHandle{ID: 1}, m)
	assert.Equal(t, m, cmd.Mat4())
	assert.Equal(t, int32(-7), renderer.UniformInt(metadata.UniformHandle{ID: 1}, -7).Int())
	assert.Equal(t, []float32{1, 2, 3, 4}, renderer.UniformVec4(metadata.UniformHandle{ID: 1}, mgl32.Vec4{1, 2, 3, 4}).Floats())
}

func TestCommandBuffer_BadUniformSizeAborts(t *testing.T) {
	cb := renderer.NewCommandBuffer(16)
	assert.Panics(t, func() {
		cb.Push(renderer.BindUniformCmd{Type: metadata.ShaderUniformTypeMatrix4, Data: []byte{1}})
	})
}

func TestCommandBuffer_MergeConcatenates(t *testing.T) {
	a := renderer.NewCommandBuffer(16)
	b := renderer.NewCommandBuffer(16)
	a.Draw(0, 3)
	a.Draw(3, 3)
	b.BindPipeline(metadata.PipelineHandle{ID: 1})
	sizeA, sizeB := a.Size(), b.Size()

	b.MergeInto(a)

	assert.Equal(t, uint32(3), a.Count())
	assert.Equal(t, sizeA+sizeB, a.Size())
	assert.Equal(t, uint32(1), b.Count())

	ops := []renderer.Opcode{}
	for c := range a.Commands() {
		ops = append(ops, c.Opcode())
	}
	assert.Equal(t, []renderer.Opcode{renderer.OpDraw, renderer.OpDraw, renderer.OpBindPipeline}, ops)
}

func TestCommandBuffer_Reset(t *testing.T) {
	cb := renderer.NewCommandBuffer(16)
	cb.Draw(0, 3)
	cb.Reset()
	assert.True(t, cb.Empty())
	assert.Equal(t, 0, cb.Size())
	assert.Equal(t, renderer.CommandBufferStateEmpty, cb.State())
	assert.Empty(t, slices.Collect(cb.Commands()))
}

func TestOpcodeString(t *testing.T) {
	assert.Equal(t, "draw", renderer.OpDraw.String())
	assert.Equal(t, "Opcode(99)", renderer.Opcode(99).String())
}
