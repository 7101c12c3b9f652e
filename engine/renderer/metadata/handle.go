package metadata

import (
	"fmt"
	"math"
)

/** @brief Sentinel id marking a handle that was never assigned. */
const InvalidID uint32 = math.MaxUint32

/**
 * @brief A strongly typed reference to a backend resource. The type parameter
 * keeps texture, shader and buffer ids from being mixed up. Ids 0 and
 * InvalidID are both invalid.
 */
type Handle[T any] struct {
	ID uint32
}

func NewHandle[T any](id uint32) Handle[T] {
	return Handle[T]{ID: id}
}

func (h Handle[T]) Valid() bool {
	return h.ID != 0 && h.ID != InvalidID
}

func (h Handle[T]) String() string {
	if !h.Valid() {
		return "handle(invalid)"
	}
	return fmt.Sprintf("handle(%d)", h.ID)
}

type (
	textureResource      struct{}
	shaderResource       struct{}
	vertexBufferResource struct{}
	indexBufferResource  struct{}
	uniformResource      struct{}
	pipelineResource     struct{}
)

type (
	TextureHandle      = Handle[textureResource]
	ShaderHandle       = Handle[shaderResource]
	VertexBufferHandle = Handle[vertexBufferResource]
	IndexBufferHandle  = Handle[indexBufferResource]
	UniformHandle      = Handle[uniformResource]
	PipelineHandle     = Handle[pipelineResource]
)
