package loaders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/opentype"

	"github.com/spaghettifunk/idraw/engine/renderer/metadata"
)

// SystemFontLoader parses TrueType and OpenType files. Sizing and baking
// happen in the font system.
type SystemFontLoader struct{}

func (fl *SystemFontLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font '%s': %w", path, err)
	}
	return &metadata.Resource{
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		FullPath: path,
		Type:     metadata.ResourceTypeSystemFont,
		DataSize: uint64(len(data)),
		Data:     f,
	}, nil
}

func (fl *SystemFontLoader) Unload(res *metadata.Resource) error {
	res.Data = nil
	return nil
}
