package renderer

import "github.com/spaghettifunk/idraw/engine/renderer/metadata"

// Attribute locations follow metadata.DefaultVertexLayout.
const immediateVertexShader = `#version 330 core
layout(location = 0) in vec3 a_position;
layout(location = 1) in vec2 a_uv;
layout(location = 2) in vec4 a_color;

uniform mat4 u_mvp;

out vec2 f_uv;
out vec4 f_color;

void main() {
	gl_Position = u_mvp * vec4(a_position, 1.0);
	f_uv = a_uv;
	f_color = a_color;
}
`

const immediateFragmentShader = `#version 330 core
in vec2 f_uv;
in vec4 f_color;

uniform sampler2D u_tex;

out vec4 frag_color;

void main() {
	frag_color = f_color * texture(u_tex, f_uv);
}
`

// ImmediateShaderDesc describes the built-in shader every cached pipeline uses.
func ImmediateShaderDesc() *metadata.ShaderDesc {
	return &metadata.ShaderDesc{
		Name: metadata.BUILTIN_SHADER_NAME_IMMEDIATE,
		Sources: []metadata.ShaderSource{
			{Stage: metadata.ShaderStageVertex, Source: immediateVertexShader},
			{Stage: metadata.ShaderStageFragment, Source: immediateFragmentShader},
		},
	}
}
