package renderer

import "fmt"

// Opcode tags each record of a command buffer. It is written as a uint32
// ahead of the record payload.
type Opcode uint32

const (
	OpBindPipeline Opcode = iota + 1
	OpBindShader
	OpBindTexture
	OpBindUniform
	OpBindVertexBuffer
	OpBindIndexBuffer
	OpUpdateVertexData
	OpUpdateIndexData
	OpUpdateTextureData
	OpDraw
	OpDrawIndexed
	OpSetViewport
	OpSetScissor
	OpClear
)

func (op Opcode) String() string {
	switch op {
	case OpBindPipeline:
		return "bind_pipeline"
	case OpBindShader:
		return "bind_shader"
	case OpBindTexture:
		return "bind_texture"
	case OpBindUniform:
		return "bind_uniform"
	case OpBindVertexBuffer:
		return "bind_vertex_buffer"
	case OpBindIndexBuffer:
		return "bind_index_buffer"
	case OpUpdateVertexData:
		return "update_vertex_data"
	case OpUpdateIndexData:
		return "update_index_data"
	case OpUpdateTextureData:
		return "update_texture_data"
	case OpDraw:
		return "draw"
	case OpDrawIndexed:
		return "draw_indexed"
	case OpSetViewport:
		return "set_viewport"
	case OpSetScissor:
		return "set_scissor"
	case OpClear:
		return "clear"
	}
	return fmt.Sprintf("Opcode(%d)", uint32(op))
}
