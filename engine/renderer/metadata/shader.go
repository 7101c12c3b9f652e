package metadata

import "fmt"

const (
	/** @brief The name of the built-in immediate draw shader. */
	BUILTIN_SHADER_NAME_IMMEDIATE string = "Shader.Builtin.Immediate"
	/** @brief Name of the model-view-projection uniform. */
	UNIFORM_NAME_MVP string = "u_mvp"
	/** @brief Name of the sampler uniform of the immediate shader. */
	UNIFORM_NAME_TEXTURE string = "u_tex"
)

type ShaderStage int

const (
	ShaderStageVertex   ShaderStage = 0x00000001
	ShaderStageFragment ShaderStage = 0x00000004
)

func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	}
	return fmt.Sprintf("ShaderStage(%d)", int(s))
}

type ShaderSource struct {
	Stage  ShaderStage
	Source string
}

/**
 * @brief Describes a shader program made of one source per stage.
 */
type ShaderDesc struct {
	Name    string
	Sources []ShaderSource
}

/** @brief Returns the source for the given stage, if present. */
func (d *ShaderDesc) Source(stage ShaderStage) (string, bool) {
	for _, s := range d.Sources {
		if s.Stage == stage {
			return s.Source, true
		}
	}
	return "", false
}

/** @brief Available uniform types. */
type ShaderUniformType uint32

const (
	ShaderUniformTypeFloat32   ShaderUniformType = 0
	ShaderUniformTypeFloat32_2 ShaderUniformType = 1
	ShaderUniformTypeFloat32_3 ShaderUniformType = 2
	ShaderUniformTypeFloat32_4 ShaderUniformType = 3
	ShaderUniformTypeInt32     ShaderUniformType = 8
	ShaderUniformTypeMatrix4   ShaderUniformType = 10
	ShaderUniformTypeSampler   ShaderUniformType = 11
)

/** @brief Size in bytes of one value of the type inside a command payload. */
func (t ShaderUniformType) Size() int {
	switch t {
	case ShaderUniformTypeFloat32, ShaderUniformTypeInt32, ShaderUniformTypeSampler:
		return 4
	case ShaderUniformTypeFloat32_2:
		return 8
	case ShaderUniformTypeFloat32_3:
		return 12
	case ShaderUniformTypeFloat32_4:
		return 16
	case ShaderUniformTypeMatrix4:
		return 64
	}
	return 0
}

func (t ShaderUniformType) String() string {
	switch t {
	case ShaderUniformTypeFloat32:
		return "f32"
	case ShaderUniformTypeFloat32_2:
		return "vec2"
	case ShaderUniformTypeFloat32_3:
		return "vec3"
	case ShaderUniformTypeFloat32_4:
		return "vec4"
	case ShaderUniformTypeInt32:
		return "i32"
	case ShaderUniformTypeMatrix4:
		return "mat4"
	case ShaderUniformTypeSampler:
		return "sampler2d"
	}
	return fmt.Sprintf("ShaderUniformType(%d)", uint32(t))
}

/** @brief A named uniform slot shared by every program that declares it. */
type UniformDesc struct {
	Name string
	Type ShaderUniformType
}
