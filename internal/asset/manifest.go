package asset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MeshEntry describes a mesh to generate or load.
type MeshEntry struct {
	ID     string     `yaml:"id" json:"id,omitempty"`
	Kind   MeshKind   `yaml:"kind" json:"kind,omitempty"` // Box, Sprite, Sphere, Obj
	Size   [3]float32 `yaml:"size" json:"size,omitempty"`
	Radius float32    `yaml:"radius" json:"radius,omitempty"`
	Lat    int        `yaml:"lat" json:"lat,omitempty"`
	Lon    int        `yaml:"lon" json:"lon,omitempty"`
	Path   string     `yaml:"path" json:"path,omitempty"`
}

// TextureEntry names an image file.
type TextureEntry struct {
	ID   string `yaml:"id" json:"id,omitempty"`
	Path string `yaml:"path" json:"path,omitempty"`
}

// FontEntry names a compiled-in face and its size.
type FontEntry struct {
	ID   string `yaml:"id" json:"id,omitempty"`
	Name string `yaml:"name" json:"name,omitempty"`
	Size int    `yaml:"size" json:"size,omitempty"`
}

// MaterialEntry is a reusable set of shading parameters.
type MaterialEntry struct {
	ID          string     `yaml:"id" json:"id,omitempty"`
	Name        string     `yaml:"name" json:"name,omitempty"`
	BaseColor   [4]float32 `yaml:"base_color" json:"base_color,omitempty"`
	Texture     string     `yaml:"texture" json:"texture,omitempty"`
	Ambient     float32    `yaml:"ambient" json:"ambient,omitempty"`
	Diffuse     float32    `yaml:"diffuse" json:"diffuse,omitempty"`
	Specular    float32    `yaml:"specular" json:"specular,omitempty"`
	Shininess   float32    `yaml:"shininess" json:"shininess,omitempty"`
	DoubleSided bool       `yaml:"double_sided" json:"double_sided,omitempty"`
}

// Manifest lists every asset a game ships with.
type Manifest struct {
	Meshes    []MeshEntry     `yaml:"meshes" json:"meshes,omitempty"`
	Textures  []TextureEntry  `yaml:"textures" json:"textures,omitempty"`
	Fonts     []FontEntry     `yaml:"fonts" json:"fonts,omitempty"`
	Materials []MaterialEntry `yaml:"materials" json:"materials,omitempty"`
}

// LoadManifest loads an asset manifest YAML file.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read asset manifest: %w", err)
	}
	m := &Manifest{}
	if err := yaml.Unmarshal(raw, m); err != nil {
		return nil, fmt.Errorf("parse asset manifest: %w", err)
	}
	return m, nil
}

// Count returns the total number of entries.
func (m *Manifest) Count() int {
	return len(m.Meshes) + len(m.Textures) + len(m.Fonts) + len(m.Materials)
}
