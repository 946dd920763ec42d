package scene

import (
	"go.uber.org/zap"

	"github.com/farixgo/engine/internal/asset"
	"github.com/farixgo/engine/internal/component"
	"github.com/farixgo/engine/internal/core/ecs"
)

// syncAssetIDs copies the UUIDs of resolved asset pointers into the
// components' UUID fields so they are written out.
func syncAssetIDs(w *ecs.World) {
	ecs.Each1(w, func(_ ecs.Entity, m *component.Mesh) {
		if m.Mesh != nil {
			m.UUID = m.Mesh.UUID
		}
	})
	ecs.Each1(w, func(_ ecs.Entity, m *component.Material) {
		if m.Texture != nil {
			m.TextureUUID = m.Texture.UUID
		}
	})
	ecs.Each1(w, func(_ ecs.Entity, s *component.Sprite2D) {
		if s.Texture != nil {
			s.TextureUUID = s.Texture.UUID
		}
	})
	ecs.Each1(w, func(_ ecs.Entity, img *component.UIImage) {
		if img.Texture != nil {
			img.TextureUUID = img.Texture.UUID
		}
	})
	ecs.Each1(w, func(_ ecs.Entity, t *component.UIText) {
		if t.Font != nil {
			t.FontUUID = t.Font.UUID
		}
	})
}

// linkAssets resolves UUID fields on the given entities against lib.
// Missing assets are logged and left nil.
func linkAssets(w *ecs.World, ids []ecs.Entity, lib *asset.Library, log *zap.Logger) {
	if lib == nil {
		return
	}
	missing := func(kind, id string, e ecs.Entity) {
		log.Warn("scene references missing asset",
			zap.String("kind", kind), zap.String("uuid", id), zap.Uint32("entity", uint32(e)))
	}
	for _, e := range ids {
		if m, ok := ecs.TryComponent[component.Mesh](w, e); ok && m.Mesh == nil && m.UUID != "" {
			if m.Mesh, ok = lib.Mesh(m.UUID); !ok {
				missing("mesh", m.UUID, e)
			}
		}
		if m, ok := ecs.TryComponent[component.Material](w, e); ok && m.Texture == nil && m.TextureUUID != "" {
			if m.Texture, ok = lib.Texture(m.TextureUUID); !ok {
				missing("texture", m.TextureUUID, e)
			}
		}
		if s, ok := ecs.TryComponent[component.Sprite2D](w, e); ok && s.Texture == nil && s.TextureUUID != "" {
			if s.Texture, ok = lib.Texture(s.TextureUUID); !ok {
				missing("texture", s.TextureUUID, e)
			}
		}
		if img, ok := ecs.TryComponent[component.UIImage](w, e); ok && img.Texture == nil && img.TextureUUID != "" {
			if img.Texture, ok = lib.Texture(img.TextureUUID); !ok {
				missing("texture", img.TextureUUID, e)
			}
		}
		if t, ok := ecs.TryComponent[component.UIText](w, e); ok && t.Font == nil && t.FontUUID != "" {
			if t.Font, ok = lib.Font(t.FontUUID); !ok {
				missing("font", t.FontUUID, e)
			}
		}
	}
}

// referencedAssets returns the asset UUIDs used by the given entities.
func referencedAssets(w *ecs.World, ids []ecs.Entity) map[string]bool {
	out := map[string]bool{}
	add := func(id string) {
		if id != "" {
			out[id] = true
		}
	}
	for _, e := range ids {
		if m, ok := ecs.TryComponent[component.Mesh](w, e); ok {
			add(m.UUID)
		}
		if m, ok := ecs.TryComponent[component.Material](w, e); ok {
			add(m.TextureUUID)
		}
		if s, ok := ecs.TryComponent[component.Sprite2D](w, e); ok {
			add(s.TextureUUID)
		}
		if img, ok := ecs.TryComponent[component.UIImage](w, e); ok {
			add(img.TextureUUID)
		}
		if t, ok := ecs.TryComponent[component.UIText](w, e); ok {
			add(t.FontUUID)
		}
	}
	return out
}

// filterManifest keeps the entries of man whose id is in keep.
func filterManifest(man *asset.Manifest, keep map[string]bool) *asset.Manifest {
	out := &asset.Manifest{}
	for _, m := range man.Meshes {
		if keep[m.ID] {
			out.Meshes = append(out.Meshes, m)
		}
	}
	for _, t := range man.Textures {
		if keep[t.ID] {
			out.Textures = append(out.Textures, t)
		}
	}
	for _, f := range man.Fonts {
		if keep[f.ID] {
			out.Fonts = append(out.Fonts, f)
		}
	}
	return out
}
