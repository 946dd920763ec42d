package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/farixgo/engine/internal/asset"
	"github.com/farixgo/engine/internal/core/ecs"
)

// PrefabNode is one entity of a prefab with its children nested inline.
type PrefabNode struct {
	Components map[string]json.RawMessage `json:"components"`
	Scripts    []ScriptDoc                `json:"scripts,omitempty"`
	Prefab     string                     `json:"prefab,omitempty"`
	Children   []PrefabNode               `json:"children,omitempty"`
}

// PrefabDoc is the on-disk form of a prefab: the root node plus the assets
// the subtree references.
type PrefabDoc struct {
	PrefabNode
	Assets *asset.Manifest `json:"assets,omitempty"`
}

// SavePrefab encodes root and its descendants.
func (z *Serializer) SavePrefab(root ecs.GameObject) ([]byte, error) {
	w := root.World
	syncAssetIDs(w)
	var subtree []ecs.Entity
	node, err := z.encodeNode(w, root.Entity, &subtree)
	if err != nil {
		return nil, err
	}
	doc := PrefabDoc{PrefabNode: node}
	if z.Assets != nil {
		doc.Assets = filterManifest(z.Assets.Describe(), referencedAssets(w, subtree))
	}
	return json.MarshalIndent(doc, "", "  ")
}

func (z *Serializer) encodeNode(w *ecs.World, e ecs.Entity, subtree *[]ecs.Entity) (PrefabNode, error) {
	*subtree = append(*subtree, e)
	comps, err := z.encodeComponents(w, e)
	if err != nil {
		return PrefabNode{}, err
	}
	node := PrefabNode{Components: comps, Scripts: encodeScripts(w, e)}
	if m, ok := ecs.TryComponent[ecs.Metadata](w, e); ok {
		node.Prefab = m.Prefab
	}
	for _, c := range w.ChildrenOf(e) {
		child, err := z.encodeNode(w, c, subtree)
		if err != nil {
			return PrefabNode{}, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

func (z *Serializer) checkNode(n *PrefabNode) error {
	if err := z.checkEntity(n.Components, n.Scripts); err != nil {
		return err
	}
	for i := range n.Children {
		if err := z.checkNode(&n.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

type pendingScripts struct {
	entity  ecs.Entity
	scripts []ScriptDoc
}

// InstantiatePrefab creates a copy of the encoded prefab in w and returns
// its root. Every instance gets fresh entity ids and metadata UUIDs;
// scripts are attached once the whole subtree exists.
func (z *Serializer) InstantiatePrefab(w *ecs.World, data []byte) (ecs.GameObject, error) {
	var doc PrefabDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return ecs.GameObject{}, fmt.Errorf("decode prefab: %w", err)
	}
	if err := z.checkNode(&doc.PrefabNode); err != nil {
		return ecs.GameObject{}, err
	}
	if doc.Assets != nil && z.Assets != nil {
		z.Assets.LoadManifest(doc.Assets)
	}

	var created []ecs.Entity
	var scripts []pendingScripts
	root, err := z.decodeNode(w, &doc.PrefabNode, &created, &scripts)
	if err != nil {
		return ecs.GameObject{}, err
	}
	linkAssets(w, created, z.Assets, z.log)
	for _, p := range scripts {
		if err := z.attachScripts(w, p.entity, p.scripts); err != nil {
			return ecs.GameObject{}, err
		}
	}
	return ecs.GameObject{Entity: root, World: w}, nil
}

func (z *Serializer) decodeNode(w *ecs.World, n *PrefabNode, created *[]ecs.Entity, scripts *[]pendingScripts) (ecs.Entity, error) {
	e := w.CreateEntity()
	*created = append(*created, e)
	if err := z.decodeComponents(w, e, n.Components); err != nil {
		return e, err
	}
	if m, ok := ecs.TryComponent[ecs.Metadata](w, e); ok {
		m.UUID = ecs.NewUUID()
		if n.Prefab != "" {
			m.Prefab = n.Prefab
		}
	}
	if len(n.Scripts) > 0 {
		*scripts = append(*scripts, pendingScripts{entity: e, scripts: n.Scripts})
	}
	for i := range n.Children {
		c, err := z.decodeNode(w, &n.Children[i], created, scripts)
		if err != nil {
			return e, err
		}
		if err := w.SetParent(c, e); err != nil {
			return e, err
		}
	}
	return e, nil
}

// SavePrefabFile writes SavePrefab's output to path.
func (z *Serializer) SavePrefabFile(root ecs.GameObject, path string) error {
	data, err := z.SavePrefab(root)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write prefab: %w", err)
	}
	return nil
}

// InstantiatePrefabFile instantiates the prefab at path and records path
// in the root's metadata.
func (z *Serializer) InstantiatePrefabFile(w *ecs.World, path string) (ecs.GameObject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ecs.GameObject{}, fmt.Errorf("read prefab: %w", err)
	}
	obj, err := z.InstantiatePrefab(w, data)
	if err != nil {
		return ecs.GameObject{}, err
	}
	if m, ok := ecs.TryComponent[ecs.Metadata](w, obj.Entity); ok {
		m.Prefab = path
	} else {
		w.SetName(obj.Entity, "")
		ecs.GetComponent[ecs.Metadata](w, obj.Entity).Prefab = path
	}
	return obj, nil
}
