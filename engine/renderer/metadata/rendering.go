package metadata

import "fmt"

/** @brief Determines face culling mode during rendering. */
type FaceCullMode uint16

const (
	/** @brief No faces are culled. */
	FaceCullModeNone FaceCullMode = 0x0
	/** @brief Only front faces are culled. */
	FaceCullModeFront FaceCullMode = 0x1
	/** @brief Only back faces are culled. */
	FaceCullModeBack FaceCullMode = 0x2
	/** @brief Both front and back faces are culled. */
	FaceCullModeFrontAndBack FaceCullMode = 0x3
)

/** @brief Primitive topology of a draw. */
type PrimitiveType uint16

const (
	PrimitiveTypeTriangles PrimitiveType = 0
	PrimitiveTypeLines     PrimitiveType = 1
)

/** @brief Anything that is not a line list draws as triangles. */
func (p PrimitiveType) Normalized() PrimitiveType {
	if p == PrimitiveTypeLines {
		return PrimitiveTypeLines
	}
	return PrimitiveTypeTriangles
}

func (p PrimitiveType) String() string {
	switch p {
	case PrimitiveTypeTriangles:
		return "triangles"
	case PrimitiveTypeLines:
		return "lines"
	}
	return fmt.Sprintf("PrimitiveType(%d)", uint16(p))
}

/**
 * @brief The five toggles that select one of the prebuilt immediate
 * pipelines. Every field is either 0 or 1 (PrimType uses the
 * PrimitiveType values). Two states select the same pipeline iff they are
 * equal field by field.
 */
type PipelineStateAttr struct {
	DepthEnabled    uint16
	StencilEnabled  uint16
	BlendEnabled    uint16
	FaceCullEnabled uint16
	PrimType        uint16
}

/** @brief Total number of distinct pipeline states. */
const PipelineStateCombinations = 1 << 5

func boolBit(v uint16) uint16 {
	if v != 0 {
		return 1
	}
	return 0
}

/** @brief Collapses every field to its canonical value. */
func (s PipelineStateAttr) Normalized() PipelineStateAttr {
	return PipelineStateAttr{
		DepthEnabled:    boolBit(s.DepthEnabled),
		StencilEnabled:  boolBit(s.StencilEnabled),
		BlendEnabled:    boolBit(s.BlendEnabled),
		FaceCullEnabled: boolBit(s.FaceCullEnabled),
		PrimType:        uint16(PrimitiveType(s.PrimType).Normalized()),
	}
}

/** @brief Packs a normalized state into the 5-bit index of its combination. */
func (s PipelineStateAttr) Key() uint16 {
	n := s.Normalized()
	return n.DepthEnabled | n.StencilEnabled<<1 | n.BlendEnabled<<2 | n.FaceCullEnabled<<3 | n.PrimType<<4
}

/** @brief Inverse of Key. */
func PipelineStateFromKey(k uint16) PipelineStateAttr {
	return PipelineStateAttr{
		DepthEnabled:    k & 1,
		StencilEnabled:  (k >> 1) & 1,
		BlendEnabled:    (k >> 2) & 1,
		FaceCullEnabled: (k >> 3) & 1,
		PrimType:        (k >> 4) & 1,
	}
}

func (s PipelineStateAttr) Primitive() PrimitiveType {
	return PrimitiveType(s.PrimType).Normalized()
}

func (s PipelineStateAttr) String() string {
	return fmt.Sprintf("depth=%d stencil=%d blend=%d cull=%d prim=%s",
		s.DepthEnabled, s.StencilEnabled, s.BlendEnabled, s.FaceCullEnabled, s.Primitive())
}

/**
 * @brief Describes a graphics pipeline: a shader, its vertex layout and the
 * fixed function state.
 */
type PipelineDesc struct {
	Name   string
	Shader ShaderHandle
	Layout VertexLayout
	State  PipelineStateAttr
	/** @brief Culled faces when State.FaceCullEnabled is set. */
	CullMode FaceCullMode
}

/** @brief A pixel rectangle with the origin in the bottom left corner. */
type Rect struct {
	X, Y          int32
	Width, Height int32
}

/** @brief Which attachments a clear touches. */
type ClearFlag uint32

const (
	ClearFlagColor   ClearFlag = 0x1
	ClearFlagDepth   ClearFlag = 0x2
	ClearFlagStencil ClearFlag = 0x4
	ClearFlagAll     ClearFlag = ClearFlagColor | ClearFlagDepth | ClearFlagStencil
)

type ClearDesc struct {
	Flags   ClearFlag
	Color   [4]float32
	Depth   float32
	Stencil int32
}
