package renderer

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/idraw/engine/containers"
	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

// Command is one record of a command buffer. The set of implementations is
// closed: every command encodes its own payload and has a matching decoder
// in decodeCommand.
//
// Byte slices in decoded commands alias the command buffer storage and are
// only valid until the buffer is reset.
type Command interface {
	Opcode() Opcode
	encode(b *containers.ByteBuffer)
}

type BindPipelineCmd struct {
	Pipeline metadata.PipelineHandle
}

func (BindPipelineCmd) Opcode() Opcode { return OpBindPipeline }

func (c BindPipelineCmd) encode(b *containers.ByteBuffer) {
	b.WriteU32(c.Pipeline.ID)
}

func decodeBindPipeline(b *containers.ByteBuffer) Command {
	return BindPipelineCmd{Pipeline: metadata.PipelineHandle{ID: b.ReadU32()}}
}

type BindShaderCmd struct {
	Shader metadata.ShaderHandle
}

func (BindShaderCmd) Opcode() Opcode { return OpBindShader }

func (c BindShaderCmd) encode(b *containers.ByteBuffer) {
	b.WriteU32(c.Shader.ID)
}

func decodeBindShader(b *containers.ByteBuffer) Command {
	return BindShaderCmd{Shader: metadata.ShaderHandle{ID: b.ReadU32()}}
}

// BindTextureCmd binds a texture to a sampler slot and points the sampler
// uniform at that slot.
type BindTextureCmd struct {
	Texture metadata.TextureHandle
	Slot    uint32
	Uniform metadata.UniformHandle
}

func (BindTextureCmd) Opcode() Opcode { return OpBindTexture }

func (c BindTextureCmd) encode(b *containers.ByteBuffer) {
	b.WriteU32(c.Texture.ID)
	b.WriteU32(c.Slot)
	b.WriteU32(c.Uniform.ID)
}

func decodeBindTexture(b *containers.ByteBuffer) Command {
	return BindTextureCmd{
		Texture: metadata.TextureHandle{ID: b.ReadU32()},
		Slot:    b.ReadU32(),
		Uniform: metadata.UniformHandle{ID: b.ReadU32()},
	}
}

// BindUniformCmd carries a raw little-endian value of Type.Size() bytes.
type BindUniformCmd struct {
	Uniform metadata.UniformHandle
	Type    metadata.ShaderUniformType
	Data    []byte
}

func (BindUniformCmd) Opcode() Opcode { return OpBindUniform }

func (c BindUniformCmd) encode(b *containers.ByteBuffer) {
	core.Assert(len(c.Data) == c.Type.Size(), core.ErrUniformSize,
		"uniform %s expects %d bytes, got %d", c.Type, c.Type.Size(), len(c.Data))
	b.WriteU32(c.Uniform.ID)
	b.WriteU32(uint32(c.Type))
	b.WriteBulk(c.Data)
}

func decodeBindUniform(b *containers.ByteBuffer) Command {
	c := BindUniformCmd{
		Uniform: metadata.UniformHandle{ID: b.ReadU32()},
		Type:    metadata.ShaderUniformType(b.ReadU32()),
	}
	c.Data = b.Next(c.Type.Size())
	return c
}

// Floats decodes the value of float typed uniforms.
func (c BindUniformCmd) Floats() []float32 {
	out := make([]float32, len(c.Data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(c.Data[i*4:]))
	}
	return out
}

// Int decodes the value of int and sampler uniforms.
func (c BindUniformCmd) Int() int32 {
	return int32(binary.LittleEndian.Uint32(c.Data))
}

// Mat4 decodes a column-major matrix uniform.
func (c BindUniformCmd) Mat4() mgl32.Mat4 {
	var m mgl32.Mat4
	copy(m[:], c.Floats())
	return m
}

func floatBytes(v ...float32) []byte {
	out := make([]byte, 0, len(v)*4)
	for _, f := range v {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(f))
	}
	return out
}

func UniformMat4(u metadata.UniformHandle, m mgl32.Mat4) BindUniformCmd {
	return BindUniformCmd{Uniform: u, Type: metadata.ShaderUniformTypeMatrix4, Data: floatBytes(m[:]...)}
}

func UniformFloat(u metadata.UniformHandle, v float32) BindUniformCmd {
	return BindUniformCmd{Uniform: u, Type: metadata.ShaderUniformTypeFloat32, Data: floatBytes(v)}
}

func UniformVec2(u metadata.UniformHandle, v mgl32.Vec2) BindUniformCmd {
	return BindUniformCmd{Uniform: u, Type: metadata.ShaderUniformTypeFloat32_2, Data: floatBytes(v[:]...)}
}

func UniformVec3(u metadata.UniformHandle, v mgl32.Vec3) BindUniformCmd {
	return BindUniformCmd{Uniform: u, Type: metadata.ShaderUniformTypeFloat32_3, Data: floatBytes(v[:]...)}
}

func UniformVec4(u metadata.UniformHandle, v mgl32.Vec4) BindUniformCmd {
	return BindUniformCmd{Uniform: u, Type: metadata.ShaderUniformTypeFloat32_4, Data: floatBytes(v[:]...)}
}

func UniformInt(u metadata.UniformHandle, v int32) BindUniformCmd {
	return BindUniformCmd{Uniform: u, Type: metadata.ShaderUniformTypeInt32, Data: binary.LittleEndian.AppendUint32(nil, uint32(v))}
}

type BindVertexBufferCmd struct {
	Buffer metadata.VertexBufferHandle
}

func (BindVertexBufferCmd) Opcode() Opcode { return OpBindVertexBuffer }

func (c BindVertexBufferCmd) encode(b *containers.ByteBuffer) {
	b.WriteU32(c.Buffer.ID)
}

func decodeBindVertexBuffer(b *containers.ByteBuffer) Command {
	return BindVertexBufferCmd{Buffer: metadata.VertexBufferHandle{ID: b.ReadU32()}}
}

type BindIndexBufferCmd struct {
	Buffer metadata.IndexBufferHandle
}

func (BindIndexBufferCmd) Opcode() Opcode { return OpBindIndexBuffer }

func (c BindIndexBufferCmd) encode(b *containers.ByteBuffer) {
	b.WriteU32(c.Buffer.ID)
}

func decodeBindIndexBuffer(b *containers.ByteBuffer) Command {
	return BindIndexBufferCmd{Buffer: metadata.IndexBufferHandle{ID: b.ReadU32()}}
}

// UpdateVertexDataCmd replaces the whole contents of a vertex buffer.
type UpdateVertexDataCmd struct {
	Buffer metadata.VertexBufferHandle
	Data   []byte
}

func (UpdateVertexDataCmd) Opcode() Opcode { return OpUpdateVertexData }

func (c UpdateVertexDataCmd) encode(b *containers.ByteBuffer) {
	b.WriteU32(c.Buffer.ID)
	b.WriteU32(uint32(len(c.Data)))
	b.WriteBulk(c.Data)
}

func decodeUpdateVertexData(b *containers.ByteBuffer) Command {
	c := UpdateVertexDataCmd{Buffer: metadata.VertexBufferHandle{ID: b.ReadU32()}}
	c.Data = b.Next(int(b.ReadU32()))
	return c
}

type UpdateIndexDataCmd struct {
	Buffer metadata.IndexBufferHandle
	Data   []byte
}

func (UpdateIndexDataCmd) Opcode() Opcode { return OpUpdateIndexData }

func (c UpdateIndexDataCmd) encode(b *containers.ByteBuffer) {
	b.WriteU32(c.Buffer.ID)
	b.WriteU32(uint32(len(c.Data)))
	b.WriteBulk(c.Data)
}

func decodeUpdateIndexData(b *containers.ByteBuffer) Command {
	c := UpdateIndexDataCmd{Buffer: metadata.IndexBufferHandle{ID: b.ReadU32()}}
	c.Data = b.Next(int(b.ReadU32()))
	return c
}

// UpdateTextureDataCmd replaces the pixels of a texture, possibly resizing it.
type UpdateTextureDataCmd struct {
	Texture metadata.TextureHandle
	Width   uint32
	Height  uint32
	Data    []byte
}

func (UpdateTextureDataCmd) Opcode() Opcode { return OpUpdateTextureData }

func (c UpdateTextureDataCmd) encode(b *containers.ByteBuffer) {
	b.WriteU32(c.Texture.ID)
	b.WriteU32(c.Width)
	b.WriteU32(c.Height)
	b.WriteU32(uint32(len(c.Data)))
	b.WriteBulk(c.Data)
}

func decodeUpdateTextureData(b *containers.ByteBuffer) Command {
	c := UpdateTextureDataCmd{
		Texture: metadata.TextureHandle{ID: b.ReadU32()},
		Width:   b.ReadU32(),
		Height:  b.ReadU32(),
	}
	c.Data = b.Next(int(b.ReadU32()))
	return c
}

// DrawCmd draws Count vertices of the bound vertex buffer starting at Start,
// with the primitive type of the bound pipeline.
type DrawCmd struct {
	Start uint32
	Count uint32
}

func (DrawCmd) Opcode() Opcode { return OpDraw }

func (c DrawCmd) encode(b *containers.ByteBuffer) {
	b.WriteU32(c.Start)
	b.WriteU32(c.Count)
}

func decodeDraw(b *containers.ByteBuffer) Command {
	return DrawCmd{Start: b.ReadU32(), Count: b.ReadU32()}
}

// DrawIndexedCmd draws Count indices of the bound index buffer starting at
// index Offset.
type DrawIndexedCmd struct {
	Count  uint32
	Offset uint32
}

func (DrawIndexedCmd) Opcode() Opcode { return OpDrawIndexed }

func (c DrawIndexedCmd) encode(b *containers.ByteBuffer) {
	b.WriteU32(c.Count)
	b.WriteU32(c.Offset)
}

func decodeDrawIndexed(b *containers.ByteBuffer) Command {
	return DrawIndexedCmd{Count: b.ReadU32(), Offset: b.ReadU32()}
}

type SetViewportCmd struct {
	Rect metadata.Rect
}

func (SetViewportCmd) Opcode() Opcode { return OpSetViewport }

func (c SetViewportCmd) encode(b *containers.ByteBuffer) {
	encodeRect(b, c.Rect)
}

func decodeSetViewport(b *containers.ByteBuffer) Command {
	return SetViewportCmd{Rect: decodeRect(b)}
}

// SetScissorCmd enables the scissor test. An empty rect disables it.
type SetScissorCmd struct {
	Rect metadata.Rect
}

func (SetScissorCmd) Opcode() Opcode { return OpSetScissor }

func (c SetScissorCmd) encode(b *containers.ByteBuffer) {
	encodeRect(b, c.Rect)
}

func decodeSetScissor(b *containers.ByteBuffer) Command {
	return SetScissorCmd{Rect: decodeRect(b)}
}

func encodeRect(b *containers.ByteBuffer, r metadata.Rect) {
	b.WriteI32(r.X)
	b.WriteI32(r.Y)
	b.WriteI32(r.Width)
	b.WriteI32(r.Height)
}

func decodeRect(b *containers.ByteBuffer) metadata.Rect {
	return metadata.Rect{X: b.ReadI32(), Y: b.ReadI32(), Width: b.ReadI32(), Height: b.ReadI32()}
}

type ClearCmd struct {
	metadata.ClearDesc
}

func (ClearCmd) Opcode() Opcode { return OpClear }

func (c ClearCmd) encode(b *containers.ByteBuffer) {
	b.WriteU32(uint32(c.Flags))
	b.WriteF32s(c.Color[:]...)
	b.WriteF32(c.Depth)
	b.WriteI32(c.Stencil)
}

func decodeClear(b *containers.ByteBuffer) Command {
	c := ClearCmd{}
	c.Flags = metadata.ClearFlag(b.ReadU32())
	for i := range c.Color {
		c.Color[i] = b.ReadF32()
	}
	c.Depth = b.ReadF32()
	c.Stencil = b.ReadI32()
	return c
}

func decodeCommand(op Opcode, b *containers.ByteBuffer) Command {
	switch op {
	case OpBindPipeline:
		return decodeBindPipeline(b)
	case OpBindShader:
		return decodeBindShader(b)
	case OpBindTexture:
		return decodeBindTexture(b)
	case OpBindUniform:
		return decodeBindUniform(b)
	case OpBindVertexBuffer:
		return decodeBindVertexBuffer(b)
	case OpBindIndexBuffer:
		return decodeBindIndexBuffer(b)
	case OpUpdateVertexData:
		return decodeUpdateVertexData(b)
	case OpUpdateIndexData:
		return decodeUpdateIndexData(b)
	case OpUpdateTextureData:
		return decodeUpdateTextureData(b)
	case OpDraw:
		return decodeDraw(b)
	case OpDrawIndexed:
		return decodeDrawIndexed(b)
	case OpSetViewport:
		return decodeSetViewport(b)
	case OpSetScissor:
		return decodeSetScissor(b)
	case OpClear:
		return decodeClear(b)
	}
	core.Fatal(core.ErrUnknownOpcode, "opcode %d at offset %d", uint32(op), b.Position()-4)
	return nil
}
