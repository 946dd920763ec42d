package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/farixgo/engine/internal/asset"
	"github.com/farixgo/engine/internal/core/ecs"
	coresys "github.com/farixgo/engine/internal/core/system"
	"github.com/farixgo/engine/internal/scripting"
)

// Document is the on-disk form of a scene. Entity ids are the ids the
// entities had when saved; loading remaps them to fresh ids.
type Document struct {
	Name         string          `json:"name"`
	ActiveCamera ecs.Entity      `json:"activeCamera"`
	Entities     []EntityDoc     `json:"entities"`
	Systems      []string        `json:"systems"`
	Assets       *asset.Manifest `json:"assets,omitempty"`
}

type EntityDoc struct {
	ID         ecs.Entity                 `json:"id"`
	Components map[string]json.RawMessage `json:"components"`
	Scripts    []ScriptDoc                `json:"scripts,omitempty"`
	Children   []ecs.Entity               `json:"children,omitempty"`
}

// ScriptDoc names a registered script and the properties to restore on it.
type ScriptDoc struct {
	Name  string         `json:"name"`
	Props map[string]any `json:"props,omitempty"`
}

// propertied is implemented by scripts that persist their own fields.
type propertied interface {
	Properties() map[string]any
	SetProperties(map[string]any)
}

// Serializer saves and loads scenes and prefabs. Systems, Scripts and
// Assets may be nil when a document never needs them.
type Serializer struct {
	Components *SerializerRegistry
	Systems    *coresys.Registry
	Scripts    *scripting.Registry
	Assets     *asset.Library
	log        *zap.Logger
}

func NewSerializer(log *zap.Logger, systems *coresys.Registry, scripts *scripting.Registry, assets *asset.Library) *Serializer {
	return &Serializer{
		Components: DefaultSerializers(),
		Systems:    systems,
		Scripts:    scripts,
		Assets:     assets,
		log:        log,
	}
}

// encodeComponents serializes every registered component e has.
func (z *Serializer) encodeComponents(w *ecs.World, e ecs.Entity) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage)
	for _, name := range z.Components.Names() {
		cs, _ := z.Components.Get(name)
		if !cs.Has(w, e) {
			continue
		}
		raw, err := cs.ToJSON(w, e)
		if err != nil {
			return nil, fmt.Errorf("entity %d: encode %s: %w", e, name, err)
		}
		out[name] = raw
	}
	return out, nil
}

func encodeScripts(w *ecs.World, e ecs.Entity) []ScriptDoc {
	sc, ok := ecs.TryComponent[ecs.ScriptComponent](w, e)
	if !ok {
		return nil
	}
	out := make([]ScriptDoc, 0, len(sc.Scripts))
	for _, s := range sc.Scripts {
		d := ScriptDoc{Name: s.Name()}
		if p, ok := s.(propertied); ok {
			d.Props = p.Properties()
		}
		out = append(out, d)
	}
	return out
}

// decodeComponents adds the encoded components to e.
func (z *Serializer) decodeComponents(w *ecs.World, e ecs.Entity, comps map[string]json.RawMessage) error {
	names := make([]string, 0, len(comps))
	for name := range comps {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cs, ok := z.Components.Get(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownComponent, name)
		}
		if err := cs.FromJSON(w, e, comps[name]); err != nil {
			return err
		}
	}
	return nil
}

// checkEntity verifies that every component and script an entity names is
// registered, so a bad document fails before the world is touched.
func (z *Serializer) checkEntity(comps map[string]json.RawMessage, scripts []ScriptDoc) error {
	for name := range comps {
		if !z.Components.Has(name) {
			return fmt.Errorf("%w: %q", ErrUnknownComponent, name)
		}
	}
	for _, s := range scripts {
		if z.Scripts == nil || !z.Scripts.Has(s.Name) {
			return fmt.Errorf("%w: %q", scripting.ErrUnknownScript, s.Name)
		}
	}
	return nil
}

// attachScripts creates and attaches the scripts listed for e. Properties
// are applied before OnCreate runs.
func (z *Serializer) attachScripts(w *ecs.World, e ecs.Entity, docs []ScriptDoc) error {
	for _, d := range docs {
		s, err := z.Scripts.Create(d.Name)
		if err != nil {
			return err
		}
		if p, ok := s.(propertied); ok && len(d.Props) > 0 {
			p.SetProperties(d.Props)
		}
		w.AddScript(e, s)
	}
	return nil
}

// SaveScene encodes s. The asset section lists every asset in the library.
func (z *Serializer) SaveScene(s *Scene) ([]byte, error) {
	w := s.World()
	syncAssetIDs(w)

	doc := Document{
		Name:         s.Name(),
		ActiveCamera: w.Camera(),
		Entities:     make([]EntityDoc, 0, w.EntityCount()),
	}
	for _, e := range w.Entities() {
		comps, err := z.encodeComponents(w, e)
		if err != nil {
			return nil, err
		}
		doc.Entities = append(doc.Entities, EntityDoc{
			ID:         e,
			Components: comps,
			Scripts:    encodeScripts(w, e),
			Children:   w.ChildrenOf(e),
		})
	}
	for _, name := range w.Systems().Names() {
		if z.Systems != nil && z.Systems.Has(name) {
			doc.Systems = append(doc.Systems, name)
		}
	}
	if z.Assets != nil {
		doc.Assets = z.Assets.Describe()
	}
	return json.MarshalIndent(doc, "", "  ")
}

// LoadScene replaces the contents of s with the decoded document. The
// previous entities are destroyed and the listed systems installed; the
// scene must be (re)loaded before it runs. On error nothing is changed
// unless the error comes from a component decoder.
func (z *Serializer) LoadScene(s *Scene, data []byte) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode scene: %w", err)
	}
	for _, ed := range doc.Entities {
		if err := z.checkEntity(ed.Components, ed.Scripts); err != nil {
			return fmt.Errorf("entity %d: %w", ed.ID, err)
		}
	}
	if len(doc.Systems) > 0 && z.Systems == nil {
		return errors.New("scene lists systems but no system registry is set")
	}
	for _, name := range doc.Systems {
		if !z.Systems.Has(name) {
			return fmt.Errorf("%w: %q", coresys.ErrUnknownSystem, name)
		}
	}

	if doc.Assets != nil && z.Assets != nil {
		z.Assets.LoadManifest(doc.Assets)
	}

	s.Unload()
	if doc.Name != "" {
		s.SetName(doc.Name)
	}
	w := s.World()

	ids := make(map[ecs.Entity]ecs.Entity, len(doc.Entities))
	created := make([]ecs.Entity, 0, len(doc.Entities))
	for _, ed := range doc.Entities {
		e := w.CreateEntity()
		ids[ed.ID] = e
		created = append(created, e)
		if err := z.decodeComponents(w, e, ed.Components); err != nil {
			return fmt.Errorf("entity %d: %w", ed.ID, err)
		}
	}
	for _, ed := range doc.Entities {
		for _, child := range ed.Children {
			c, ok := ids[child]
			if !ok {
				z.log.Warn("scene child missing", zap.Uint32("parent", uint32(ed.ID)), zap.Uint32("child", uint32(child)))
				continue
			}
			if err := w.SetParent(c, ids[ed.ID]); err != nil {
				return fmt.Errorf("entity %d: %w", ed.ID, err)
			}
		}
	}
	linkAssets(w, created, z.Assets, z.log)

	if cam, ok := ids[doc.ActiveCamera]; ok {
		w.SetCameraEntity(cam)
	}
	if len(doc.Systems) > 0 {
		if err := z.Systems.Install(w, doc.Systems); err != nil {
			return err
		}
	}
	for _, ed := range doc.Entities {
		if err := z.attachScripts(w, ids[ed.ID], ed.Scripts); err != nil {
			return fmt.Errorf("entity %d: %w", ed.ID, err)
		}
	}
	z.log.Info("scene decoded",
		zap.String("scene", s.Name()),
		zap.Int("entities", len(created)),
		zap.Int("systems", len(doc.Systems)))
	return nil
}

// SaveSceneFile writes SaveScene's output to path.
func (z *Serializer) SaveSceneFile(s *Scene, path string) error {
	data, err := z.SaveScene(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

// LoadSceneFile reads path and passes it to LoadScene.
func (z *Serializer) LoadSceneFile(s *Scene, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}
	return z.LoadScene(s, data)
}
