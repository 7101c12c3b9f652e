package metadata

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Not an asset the engine knows how to load. */
	ResourceTypeNone ResourceType = iota
	/** @brief Text resource type. */
	ResourceTypeText
	/** @brief Image resource type. */
	ResourceTypeImage
	/** @brief Shader source (a single stage). */
	ResourceTypeShader
	/** @brief Bitmap font resource type. */
	ResourceTypeBitmapFont
	/** @brief System font resource type. */
	ResourceTypeSystemFont
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeText:
		return "text"
	case ResourceTypeImage:
		return "image"
	case ResourceTypeShader:
		return "shader"
	case ResourceTypeBitmapFont:
		return "bitmap_font"
	case ResourceTypeSystemFont:
		return "system_font"
	}
	return "none"
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	Type     ResourceType
	/** @brief The size of the resource data in bytes. */
	DataSize uint64
	/** @brief The resource data. */
	Data interface{}
}

/** @brief Decoded image pixels, always RGBA8. */
type ImageResourceData struct {
	Width  uint32
	Height uint32
	Pixels []uint8
}

/** @brief Source of one shader stage. */
type ShaderResourceData struct {
	Stage  ShaderStage
	Source string
}

type ImageResourceParams struct {
	/** @brief Flip rows so the first row is the bottom of the image. */
	FlipY bool
}
