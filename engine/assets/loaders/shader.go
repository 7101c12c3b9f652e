package loaders

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

// ShaderLoader reads one GLSL stage. The stage comes from the extension:
// .vert or .frag.
type ShaderLoader struct{}

func ShaderStageFromPath(path string) (metadata.ShaderStage, error) {
	switch filepath.Ext(path) {
	case ".vert":
		return metadata.ShaderStageVertex, nil
	case ".frag":
		return metadata.ShaderStageFragment, nil
	}
	return 0, fmt.Errorf("unknown shader stage for '%s'", path)
}

func (sl *ShaderLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	stage, err := ShaderStageFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		Type:     metadata.ResourceTypeShader,
		DataSize: uint64(len(data)),
		Data: &metadata.ShaderResourceData{
			Stage:  stage,
			Source: string(data),
		},
	}, nil
}

func (sl *ShaderLoader) Unload(res *metadata.Resource) error {
	res.Data = nil
	return nil
}
