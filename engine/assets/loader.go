package assets

import (
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/meshtools/engine/assets/loaders"
)

type AssetType int

const (
	AssetTypeNone AssetType = iota
	AssetTypeModel
	AssetTypeConfig
)

func (t AssetType) String() string {
	switch t {
	case AssetTypeModel:
		return "model"
	case AssetTypeConfig:
		return "config"
	default:
		return "none"
	}
}

// ModelLoader turns a file on disk into a model.
type ModelLoader interface {
	Load(path string) (*loaders.Model, error)
}

func determineAssetType(path string) AssetType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return AssetTypeModel
	case ".toml":
		return AssetTypeConfig
	default:
		return AssetTypeNone
	}
}
