package metadata

/** @brief How often the contents of a buffer are expected to change. */
type BufferUsage uint32

const (
	BufferUsageStatic BufferUsage = iota
	BufferUsageDynamic
	/** @brief Rewritten every frame, e.g. the immediate vertex stream. */
	BufferUsageStream
)

type VertexBufferDesc struct {
	Name  string
	Data  []byte
	Usage BufferUsage
}

/** @brief Index buffers hold uint32 indices. */
type IndexBufferDesc struct {
	Name  string
	Data  []byte
	Usage BufferUsage
}

/** @brief A single vertex attribute of the immediate vertex format. */
type VertexAttribute uint32

const (
	/** @brief Three float32 components. */
	VertexAttributePosition VertexAttribute = iota
	/** @brief Two float32 components. */
	VertexAttributeUV
	/** @brief Four normalized uint8 components. */
	VertexAttributeColor
)

func (a VertexAttribute) Size() uint32 {
	switch a {
	case VertexAttributePosition:
		return 12
	case VertexAttributeUV:
		return 8
	case VertexAttributeColor:
		return 4
	}
	return 0
}

func (a VertexAttribute) Components() int32 {
	switch a {
	case VertexAttributePosition:
		return 3
	case VertexAttributeUV:
		return 2
	case VertexAttributeColor:
		return 4
	}
	return 0
}

/** @brief Ordered list of attributes, interleaved in one buffer. */
type VertexLayout []VertexAttribute

/** @brief Position, UV, color: 24 bytes. */
var DefaultVertexLayout = VertexLayout{VertexAttributePosition, VertexAttributeUV, VertexAttributeColor}

func (l VertexLayout) Stride() uint32 {
	var stride uint32
	for _, a := range l {
		stride += a.Size()
	}
	return stride
}

/** @brief Byte offset of attribute i inside one vertex. */
func (l VertexLayout) Offset(i int) uint32 {
	var offset uint32
	for _, a := range l[:i] {
		offset += a.Size()
	}
	return offset
}

/** @brief Index of the attribute in the layout, or -1. */
func (l VertexLayout) Index(attr VertexAttribute) int {
	for i, a := range l {
		if a == attr {
			return i
		}
	}
	return -1
}
