package renderer

import (
	"iter"

	"github.com/spaghettifunk/idraw/engine/containers"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

type CommandBufferState uint8

const (
	CommandBufferStateEmpty CommandBufferState = iota
	CommandBufferStateRecording
)

// CommandBuffer records backend-agnostic rendering commands as a stream of
// [u32 opcode][payload] records. Count always equals the number of records
// in the stream.
type CommandBuffer struct {
	commands *containers.ByteBuffer
	count    uint32
}

func NewCommandBuffer(capacity int) *CommandBuffer {
	return &CommandBuffer{
		commands: containers.NewByteBuffer(capacity),
	}
}

// Push appends one record.
func (cb *CommandBuffer) Push(cmd Command) {
	cb.commands.WriteU32(uint32(cmd.Opcode()))
	cmd.encode(cb.commands)
	cb.count++
}

// Count is the number of recorded commands.
func (cb *CommandBuffer) Count() uint32 {
	return cb.count
}

// Size is the number of recorded bytes.
func (cb *CommandBuffer) Size() int {
	return cb.commands.Size()
}

func (cb *CommandBuffer) Empty() bool {
	return cb.count == 0
}

func (cb *CommandBuffer) State() CommandBufferState {
	if cb.count == 0 {
		return CommandBufferStateEmpty
	}
	return CommandBufferStateRecording
}

// Reset drops every record. The storage is kept for the next frame.
func (cb *CommandBuffer) Reset() {
	cb.commands.Clear()
	cb.count = 0
}

// MergeInto appends every record of cb to dst, in order. cb is unchanged.
func (cb *CommandBuffer) MergeInto(dst *CommandBuffer) {
	dst.commands.WriteBulk(cb.commands.Bytes())
	dst.count += cb.count
}

// Commands decodes the records in FIFO order. An unknown opcode aborts.
func (cb *CommandBuffer) Commands() iter.Seq[Command] {
	return func(yield func(Command) bool) {
		cb.commands.SeekToBeginning()
		for i := uint32(0); i < cb.count; i++ {
			op := Opcode(cb.commands.ReadU32())
			if !yield(decodeCommand(op, cb.commands)) {
				return
			}
		}
	}
}

func (cb *CommandBuffer) BindPipeline(p metadata.PipelineHandle) {
	cb.Push(BindPipelineCmd{Pipeline: p})
}

func (cb *CommandBuffer) BindShader(s metadata.ShaderHandle) {
	cb.Push(BindShaderCmd{Shader: s})
}

func (cb *CommandBuffer) BindTexture(t metadata.TextureHandle, slot uint32, u metadata.UniformHandle) {
	cb.Push(BindTextureCmd{Texture: t, Slot: slot, Uniform: u})
}

func (cb *CommandBuffer) BindVertexBuffer(v metadata.VertexBufferHandle) {
	cb.Push(BindVertexBufferCmd{Buffer: v})
}

func (cb *CommandBuffer) BindIndexBuffer(i metadata.IndexBufferHandle) {
	cb.Push(BindIndexBufferCmd{Buffer: i})
}

func (cb *CommandBuffer) UpdateVertexData(v metadata.VertexBufferHandle, data []byte) {
	cb.Push(UpdateVertexDataCmd{Buffer: v, Data: data})
}

func (cb *CommandBuffer) UpdateIndexData(i metadata.IndexBufferHandle, data []byte) {
	cb.Push(UpdateIndexDataCmd{Buffer: i, Data: data})
}

func (cb *CommandBuffer) UpdateTextureData(t metadata.TextureHandle, width, height uint32, data []byte) {
	cb.Push(UpdateTextureDataCmd{Texture: t, Width: width, Height: height, Data: data})
}

func (cb *CommandBuffer) Draw(start, count uint32) {
	cb.Push(DrawCmd{Start: start, Count: count})
}

func (cb *CommandBuffer) DrawIndexed(count, offset uint32) {
	cb.Push(DrawIndexedCmd{Count: count, Offset: offset})
}

func (cb *CommandBuffer) SetViewport(r metadata.Rect) {
	cb.Push(SetViewportCmd{Rect: r})
}

func (cb *CommandBuffer) SetScissor(r metadata.Rect) {
	cb.Push(SetScissorCmd{Rect: r})
}

func (cb *CommandBuffer) Clear(desc metadata.ClearDesc) {
	cb.Push(ClearCmd{ClearDesc: desc})
}
