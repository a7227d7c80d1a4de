package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Asset maps a logical asset ID to a mesh path on disk. A missing entry is a
// normal outcome: spawn factories return nil and the spawn is skipped, or
// decoration falls back to a procedural shape.
type Asset struct {
	AssetID  string `yaml:"asset_id"`
	MeshPath string `yaml:"mesh_path"`
}

type assetListFile struct {
	Assets []Asset `yaml:"assets"`
}

// AssetTable holds all assets indexed by AssetID.
type AssetTable struct {
	assets map[string]*Asset
}

// LoadAssetTable loads the asset manifest from a YAML file.
func LoadAssetTable(path string) (*AssetTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read asset_list: %w", err)
	}
	var f assetListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse asset_list: %w", err)
	}
	return NewAssetTable(f.Assets), nil
}

// NewAssetTable builds a table from assets already in memory.
func NewAssetTable(assets []Asset) *AssetTable {
	t := &AssetTable{assets: make(map[string]*Asset, len(assets))}
	for i := range assets {
		a := &assets[i]
		t.assets[a.AssetID] = a
	}
	return t
}

// Get returns an asset by ID, or nil if not found.
func (t *AssetTable) Get(assetID string) *Asset {
	return t.assets[assetID]
}

// Count returns the number of loaded assets.
func (t *AssetTable) Count() int {
	return len(t.assets)
}
