package asset

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Material is a named, shareable set of shading parameters.
type Material struct {
	UUID        string
	Name        string
	BaseColor   mgl32.Vec4
	Texture     *Texture
	Ambient     float32
	Diffuse     float32
	Specular    float32
	Shininess   float32
	DoubleSided bool
}

// DefaultMaterial returns opaque white with the engine's default shading.
func DefaultMaterial() Material {
	return Material{
		BaseColor:   mgl32.Vec4{1, 1, 1, 1},
		Ambient:     0.1,
		Diffuse:     0.9,
		Specular:    0.5,
		Shininess:   32,
		DoubleSided: true,
	}
}

// Library caches assets by UUID. Each asset is created once and shared by
// every component that references it.
type Library struct {
	meshes    map[string]*Mesh
	textures  map[string]*Texture
	fonts     map[string]*Font
	materials map[string]*Material
	log       *zap.Logger
}

func NewLibrary(log *zap.Logger) *Library {
	return &Library{
		meshes:    make(map[string]*Mesh),
		textures:  make(map[string]*Texture),
		fonts:     make(map[string]*Font),
		materials: make(map[string]*Material),
		log:       log,
	}
}

// AddMesh caches m, assigning a UUID when it has none, and returns its UUID.
func (l *Library) AddMesh(m *Mesh) string {
	if m.UUID == "" {
		m.UUID = meshID(MeshEntry{Kind: m.Kind, Size: m.Size, Radius: m.Radius, Lat: m.Lat, Lon: m.Lon, Path: m.Path})
	}
	l.meshes[m.UUID] = m
	return m.UUID
}

func (l *Library) AddTexture(t *Texture) string {
	if t.UUID == "" {
		t.UUID = PathID("texture", t.Path)
	}
	l.textures[t.UUID] = t
	return t.UUID
}

func (l *Library) AddFont(f *Font) string {
	if f.UUID == "" {
		f.UUID = PathID("font", fmt.Sprintf("%s@%d", f.Name, f.Size))
	}
	l.fonts[f.UUID] = f
	return f.UUID
}

func (l *Library) AddMaterial(m *Material) string {
	if m.UUID == "" {
		m.UUID = PathID("material", m.Name)
	}
	l.materials[m.UUID] = m
	return m.UUID
}

func (l *Library) Mesh(id string) (*Mesh, bool) {
	m, ok := l.meshes[id]
	return m, ok
}

func (l *Library) Texture(id string) (*Texture, bool) {
	t, ok := l.textures[id]
	return t, ok
}

func (l *Library) Font(id string) (*Font, bool) {
	f, ok := l.fonts[id]
	return f, ok
}

func (l *Library) Material(id string) (*Material, bool) {
	m, ok := l.materials[id]
	return m, ok
}

// FontByName returns a cached font of the given face and size, loading it on
// first use.
func (l *Library) FontByName(name string, size int) (*Font, error) {
	f, err := LoadFont(name, size)
	if err != nil {
		return nil, err
	}
	id := PathID("font", fmt.Sprintf("%s@%d", f.Name, f.Size))
	if cached, ok := l.fonts[id]; ok {
		return cached, nil
	}
	f.UUID = id
	l.fonts[id] = f
	return f, nil
}

func meshID(e MeshEntry) string {
	src := e.Path
	if src == "" {
		src = fmt.Sprintf("%v|%v|%d|%d", e.Size, e.Radius, e.Lat, e.Lon)
	}
	return PathID("mesh:"+string(e.Kind), src)
}

// LoadMesh builds the mesh an entry describes and caches it. Cached meshes
// are returned as is.
func (l *Library) LoadMesh(e MeshEntry) (*Mesh, error) {
	id := e.ID
	if id == "" {
		id = meshID(e)
	}
	if m, ok := l.meshes[id]; ok {
		return m, nil
	}
	var m *Mesh
	switch e.Kind {
	case MeshBox:
		m = CreateBox(e.Size[0], e.Size[1], e.Size[2])
	case MeshQuad:
		m = CreateQuad(e.Size[0], e.Size[1])
	case MeshSphere:
		m = CreateSphere(e.Radius, e.Lat, e.Lon)
	case MeshOBJ:
		var err error
		if m, err = LoadOBJ(e.Path); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown mesh kind %q", e.Kind)
	}
	m.UUID = id
	l.meshes[id] = m
	return m, nil
}

// LoadTexture decodes and caches the texture an entry describes.
func (l *Library) LoadTexture(e TextureEntry) (*Texture, error) {
	id := e.ID
	if id == "" {
		id = PathID("texture", e.Path)
	}
	if t, ok := l.textures[id]; ok {
		return t, nil
	}
	t, err := LoadTexture(e.Path)
	if err != nil {
		return nil, err
	}
	t.UUID = id
	l.textures[id] = t
	return t, nil
}

// LoadFont resolves and caches the font an entry describes.
func (l *Library) LoadFont(e FontEntry) (*Font, error) {
	if e.ID == "" {
		return l.FontByName(e.Name, e.Size)
	}
	if f, ok := l.fonts[e.ID]; ok {
		return f, nil
	}
	f, err := LoadFont(e.Name, e.Size)
	if err != nil {
		return nil, err
	}
	f.UUID = e.ID
	l.fonts[e.ID] = f
	return f, nil
}

// LoadMaterial builds and caches a material entry. Its texture must already
// be in the library when named.
func (l *Library) LoadMaterial(e MaterialEntry) (*Material, error) {
	m := DefaultMaterial()
	m.UUID = e.ID
	m.Name = e.Name
	if e.BaseColor != ([4]float32{}) {
		m.BaseColor = mgl32.Vec4(e.BaseColor)
	}
	if e.Ambient != 0 {
		m.Ambient = e.Ambient
	}
	if e.Diffuse != 0 {
		m.Diffuse = e.Diffuse
	}
	if e.Specular != 0 {
		m.Specular = e.Specular
	}
	if e.Shininess != 0 {
		m.Shininess = e.Shininess
	}
	m.DoubleSided = e.DoubleSided
	if e.Texture != "" {
		t, ok := l.textures[e.Texture]
		if !ok {
			return nil, fmt.Errorf("material %q: texture %s not loaded", e.Name, e.Texture)
		}
		m.Texture = t
	}
	l.AddMaterial(&m)
	return &m, nil
}

// LoadManifest loads every entry of man. Entries that fail are logged and
// skipped; the number of loaded assets is returned.
func (l *Library) LoadManifest(man *Manifest) int {
	n := 0
	for _, e := range man.Meshes {
		if _, err := l.LoadMesh(e); err != nil {
			l.log.Error("load mesh failed", zap.String("id", e.ID), zap.Error(err))
			continue
		}
		n++
	}
	for _, e := range man.Textures {
		if _, err := l.LoadTexture(e); err != nil {
			l.log.Error("load texture failed", zap.String("path", e.Path), zap.Error(err))
			continue
		}
		n++
	}
	for _, e := range man.Fonts {
		if _, err := l.LoadFont(e); err != nil {
			l.log.Error("load font failed", zap.String("name", e.Name), zap.Error(err))
			continue
		}
		n++
	}
	for _, e := range man.Materials {
		if _, err := l.LoadMaterial(e); err != nil {
			l.log.Error("load material failed", zap.String("name", e.Name), zap.Error(err))
			continue
		}
		n++
	}
	return n
}

// Describe returns a manifest describing every cached asset, sorted by id.
// Scenes embed it so they can be reloaded without the manifest file they came from.
func (l *Library) Describe() *Manifest {
	man := &Manifest{}
	for id, m := range l.meshes {
		man.Meshes = append(man.Meshes, MeshEntry{
			ID: id, Kind: m.Kind, Size: [3]float32(m.Size), Radius: m.Radius,
			Lat: m.Lat, Lon: m.Lon, Path: m.Path,
		})
	}
	for id, t := range l.textures {
		man.Textures = append(man.Textures, TextureEntry{ID: id, Path: t.Path})
	}
	for id, f := range l.fonts {
		man.Fonts = append(man.Fonts, FontEntry{ID: id, Name: f.Name, Size: f.Size})
	}
	for id, m := range l.materials {
		e := MaterialEntry{
			ID: id, Name: m.Name, BaseColor: [4]float32(m.BaseColor),
			Ambient: m.Ambient, Diffuse: m.Diffuse, Specular: m.Specular,
			Shininess: m.Shininess, DoubleSided: m.DoubleSided,
		}
		if m.Texture != nil {
			e.Texture = m.Texture.UUID
		}
		man.Materials = append(man.Materials, e)
	}
	sort.Slice(man.Meshes, func(i, j int) bool { return man.Meshes[i].ID < man.Meshes[j].ID })
	sort.Slice(man.Textures, func(i, j int) bool { return man.Textures[i].ID < man.Textures[j].ID })
	sort.Slice(man.Fonts, func(i, j int) bool { return man.Fonts[i].ID < man.Fonts[j].ID })
	sort.Slice(man.Materials, func(i, j int) bool { return man.Materials[i].ID < man.Materials[j].ID })
	return man
}
