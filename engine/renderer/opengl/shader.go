package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

func glShaderStage(s metadata.ShaderStage) uint32 {
	if s == metadata.ShaderStageFragment {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func compileShader(shaderType uint32, source string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", core.ErrShaderCompile, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func linkProgram(desc *metadata.ShaderDesc) (uint32, error) {
	if len(desc.Sources) == 0 {
		return 0, fmt.Errorf("shader '%s' has no stages: %w", desc.Name, core.ErrShaderCompile)
	}
	program := gl.CreateProgram()
	stages := make([]uint32, 0, len(desc.Sources))
	defer func() {
		for _, s := range stages {
			gl.DeleteShader(s)
		}
	}()
	for _, src := range desc.Sources {
		s, err := compileShader(glShaderStage(src.Stage), src.Source)
		if err != nil {
			gl.DeleteProgram(program)
			return 0, fmt.Errorf("shader '%s' %s stage: %w", desc.Name, src.Stage, err)
		}
		gl.AttachShader(program, s)
		stages = append(stages, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("shader '%s': %w: %s", desc.Name, core.ErrShaderLink, strings.TrimRight(log, "\x00"))
	}
	for _, s := range stages {
		gl.DetachShader(program, s)
	}
	return program, nil
}

func (b *Backend) ShaderCreate(desc *metadata.ShaderDesc) (metadata.ShaderHandle, error) {
	program, err := linkProgram(desc)
	if err != nil {
		return metadata.ShaderHandle{}, err
	}
	s := &shader{name: desc.Name, program: program, locations: make(map[string]int32)}
	return metadata.ShaderHandle{ID: b.shaders.Insert(s)}, nil
}

func (b *Backend) ShaderReload(h metadata.ShaderHandle, desc *metadata.ShaderDesc) error {
	s, ok := b.shaders.Get(h.ID)
	if !ok {
		return fmt.Errorf("shader %s: %w", h, core.ErrInvalidHandle)
	}
	program, err := linkProgram(desc)
	if err != nil {
		return err
	}
	gl.DeleteProgram(s.program)
	s.program = program
	clear(s.locations)
	core.LogInfo("shader '%s' reloaded", s.name)
	return nil
}

func (b *Backend) ShaderDestroy(h metadata.ShaderHandle) {
	s, ok := b.shaders.Get(h.ID)
	if !ok {
		return
	}
	if b.bound.shader == s {
		gl.UseProgram(0)
		b.bound.shader = nil
	}
	gl.DeleteProgram(s.program)
	_ = b.shaders.Remove(h.ID)
}

func (s *shader) location(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(s.program, gl.Str(name+"\x00"))
	s.locations[name] = loc
	return loc
}
