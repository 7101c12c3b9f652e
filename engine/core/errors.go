package core

import (
	"errors"
)

var (
	ErrUnknownOpcode    = errors.New("unknown command opcode")
	ErrPipelineNotFound = errors.New("pipeline state not found in cache")
	ErrBufferOverread   = errors.New("byte buffer read past written size")
	ErrInvalidHandle    = errors.New("invalid resource handle")
	ErrShaderCompile    = errors.New("shader failed to compile")
	ErrShaderLink       = errors.New("shader program failed to link")
	ErrTextureLoad      = errors.New("texture failed to load")
	ErrBackendNotReady  = errors.New("renderer backend not initialized")
	ErrUnknownBackend   = errors.New("unknown renderer backend")
	ErrFontNotFound     = errors.New("font not found")
	ErrUniformSize      = errors.New("uniform payload does not match its type")
	ErrUnknown          = errors.New("unknown")
)
