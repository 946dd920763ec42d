package scene

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/farixgo/engine/internal/asset"
	"github.com/farixgo/engine/internal/component"
	"github.com/farixgo/engine/internal/core/ecs"
	coresys "github.com/farixgo/engine/internal/core/system"
	"github.com/farixgo/engine/internal/scripting"
	"github.com/farixgo/engine/internal/system"
)

func newSystems() *coresys.Registry {
	reg := coresys.NewRegistry()
	system.RegisterDefaults(reg)
	return reg
}

func newSerializer(t *testing.T) *Serializer {
	t.Helper()
	scripts := scripting.NewRegistry()
	scripting.RegisterBuiltins(scripts)
	return NewSerializer(zap.NewNop(), newSystems(), scripts, asset.NewLibrary(zap.NewNop()))
}

func TestManagerSwitchAndUpdate(t *testing.T) {
	m := NewManager(zap.NewNop(), newSystems())
	menu := NewScene("menu", Services{})
	game := NewScene("game", Services{})
	m.Add(menu)
	m.Add(game)

	if m.Current() != menu {
		t.Fatal("first added scene should be current")
	}
	if _, err := m.Switch("nope"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("expected ErrUnknownScene, got %v", err)
	}
	s, err := m.Switch("game")
	if err != nil {
		t.Fatal(err)
	}
	if s != game || m.Current() != game || !game.Loaded() {
		t.Fatal("switch did not activate and load the scene")
	}
	if got := game.World().Systems().Names(); !reflect.DeepEqual(got, system.DefaultOrder) {
		t.Errorf("expected default systems %v, got %v", system.DefaultOrder, got)
	}
	if menu.Loaded() {
		t.Error("inactive scene should not be loaded")
	}

	obj := game.CreateObject()
	ecs.AddComponent(game.World(), obj.Entity, component.RigidBody{Velocity: mgl32.Vec3{1, 0, 0}, Mass: 1})
	if err := m.Update(0.5); err != nil {
		t.Fatal(err)
	}
	if got := obj.Transform().Position.X(); got != 0.5 {
		t.Errorf("expected physics to move x to 0.5, got %v", got)
	}
}

func TestSceneHandleReachesScripts(t *testing.T) {
	s := NewScene("level1", Services{})
	var seen ecs.SceneHandle
	obj := s.CreateObject()
	obj.AddScript(&handleScript{seen: &seen})
	if seen == nil || seen.Name() != "level1" || seen.World() != s.World() {
		t.Errorf("script saw scene %v", seen)
	}
}

type handleScript struct {
	ecs.BaseScript
	seen *ecs.SceneHandle
}

func (h *handleScript) Name() string { return "handle" }
func (h *handleScript) OnCreate(_ ecs.GameObject, scene ecs.SceneHandle) {
	*h.seen = scene
}

func TestUnloadResetsWorld(t *testing.T) {
	s := NewScene("tmp", Services{})
	s.CreateObject()
	if err := s.Load(newSystems()); err != nil {
		t.Fatal(err)
	}
	s.Unload()
	if s.World().EntityCount() != 0 || s.World().Systems().Len() != 0 || s.Loaded() {
		t.Error("unload left state behind")
	}
}

// buildScene creates a camera, a parent box with a child sprite, and a
// rotating box with timers.
func buildScene(t *testing.T, z *Serializer) *Scene {
	t.Helper()
	s := NewScene("demo", Services{Assets: z.Assets})
	w := s.World()
	box, err := z.Assets.LoadMesh(asset.MeshEntry{Kind: asset.MeshBox, Size: [3]float32{1, 1, 1}})
	if err != nil {
		t.Fatal(err)
	}

	cam := s.CreateObject()
	cam.SetName("Camera")
	cam.Transform().Position = mgl32.Vec3{0, 0, 7}
	ecs.AddComponent(w, cam.Entity, component.NewCamera())
	w.SetCameraEntity(cam.Entity)

	parent := s.CreateObject()
	parent.SetName("Parent")
	parent.AddTag("Paddle")
	ecs.AddComponent(w, parent.Entity, component.Mesh{Mesh: box})
	mat := component.NewMaterial()
	mat.BaseColor = mgl32.Vec4{1, 0, 0, 1}
	ecs.AddComponent(w, parent.Entity, mat)

	child := s.CreateObject()
	child.SetName("Child")
	child.Transform().Position = mgl32.Vec3{0, 2, 0}
	if err := child.SetParent(parent); err != nil {
		t.Fatal(err)
	}

	spinner := s.CreateObject()
	spinner.SetName("Spinner")
	ecs.AddComponent(w, spinner.Entity, component.Timers{Timers: []component.Timer{component.NewTimer("blink", 0.5, true)}})
	spinner.AddScript(&scripting.Rotator{})

	if err := s.Load(z.Systems); err != nil {
		t.Fatal(err)
	}
	return s
}

func find(t *testing.T, w *ecs.World, name string) ecs.Entity {
	t.Helper()
	ids := w.EntitiesByName(name)
	if len(ids) != 1 {
		t.Fatalf("expected one %q, got %v", name, ids)
	}
	return ids[0]
}

func TestSceneRoundTrip(t *testing.T) {
	z := newSerializer(t)
	src := buildScene(t, z)
	data, err := z.SaveScene(src)
	if err != nil {
		t.Fatal(err)
	}

	// Offset the id counter so remapping is exercised.
	dst := NewScene("empty", Services{Assets: z.Assets})
	dst.World().CreateEntity()
	dst.World().CreateEntity()
	if err := z.LoadScene(dst, data); err != nil {
		t.Fatal(err)
	}
	w := dst.World()

	if dst.Name() != "demo" {
		t.Errorf("expected name demo, got %s", dst.Name())
	}
	if w.EntityCount() != 4 {
		t.Fatalf("expected 4 entities, got %d", w.EntityCount())
	}
	cam := find(t, w, "Camera")
	if w.Camera() != cam {
		t.Errorf("active camera not remapped: %d vs %d", w.Camera(), cam)
	}
	parent, child := find(t, w, "Parent"), find(t, w, "Child")
	if w.ParentOf(child) != parent {
		t.Error("hierarchy not restored")
	}
	if !w.HasTag(parent, "Paddle") {
		t.Error("tags not restored")
	}
	mesh := ecs.GetComponent[component.Mesh](w, parent)
	if mesh.Mesh == nil || mesh.Mesh.TriangleCount() != 12 {
		t.Error("mesh asset not linked")
	}
	if got := ecs.GetComponent[component.Material](w, parent).BaseColor; got != (mgl32.Vec4{1, 0, 0, 1}) {
		t.Errorf("material color lost: %v", got)
	}
	if got := ecs.GetComponent[ecs.Transform](w, child).Position; got != (mgl32.Vec3{0, 2, 0}) {
		t.Errorf("child position lost: %v", got)
	}
	spinner := find(t, w, "Spinner")
	ts := ecs.GetComponent[component.Timers](w, spinner)
	if tm, ok := ts.Get("blink"); !ok || tm.Max != 0.5 || !tm.Repeat {
		t.Errorf("timer not restored: %+v", ts)
	}
	sc := ecs.GetComponent[ecs.ScriptComponent](w, spinner)
	if len(sc.Scripts) != 1 || sc.Scripts[0].Name() != "Rotator" {
		t.Errorf("scripts not restored")
	}
	if got := w.Systems().Names(); !reflect.DeepEqual(got, system.DefaultOrder) {
		t.Errorf("systems not restored: %v", got)
	}
	srcUUID := ecs.GetComponent[ecs.Metadata](src.World(), find(t, src.World(), "Parent")).UUID
	if got := ecs.GetComponent[ecs.Metadata](w, parent).UUID; got != srcUUID {
		t.Errorf("scene load should keep UUIDs: %s vs %s", got, srcUUID)
	}
}

func TestSceneAssetsSurviveFreshLibrary(t *testing.T) {
	z := newSerializer(t)
	data, err := z.SaveScene(buildScene(t, z))
	if err != nil {
		t.Fatal(err)
	}
	z2 := newSerializer(t)
	dst := NewScene("x", Services{})
	if err := z2.LoadScene(dst, data); err != nil {
		t.Fatal(err)
	}
	parent := find(t, dst.World(), "Parent")
	if ecs.GetComponent[component.Mesh](dst.World(), parent).Mesh == nil {
		t.Error("embedded asset section was not loaded")
	}
}

func TestLoadSceneRejectsUnknownNames(t *testing.T) {
	z := newSerializer(t)
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"component", `{"entities":[{"id":1,"components":{"Teleporter":{}}}]}`, ErrUnknownComponent},
		{"script", `{"entities":[{"id":1,"components":{},"scripts":[{"name":"Ghost"}]}]}`, scripting.ErrUnknownScript},
		{"system", `{"entities":[],"systems":["WarpSystem"]}`, coresys.ErrUnknownSystem},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScene("keep", Services{})
			keep := s.CreateObject()
			err := z.LoadScene(s, []byte(tc.doc))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !s.World().Alive(keep.Entity) {
				t.Error("failed load modified the scene")
			}
		})
	}
}

func TestPrefabInstantiate(t *testing.T) {
	z := newSerializer(t)
	s := buildScene(t, z)
	w := s.World()
	parent := ecs.GameObject{Entity: find(t, w, "Parent"), World: w}
	parent.AddScript(&scripting.Rotator{})

	path := filepath.Join(t.TempDir(), "paddle.json")
	if err := z.SavePrefabFile(parent, path); err != nil {
		t.Fatal(err)
	}

	other := NewScene("other", Services{})
	a, err := z.InstantiatePrefabFile(other.World(), path)
	if err != nil {
		t.Fatal(err)
	}
	b, err := z.InstantiatePrefabFile(other.World(), path)
	if err != nil {
		t.Fatal(err)
	}
	ow := other.World()
	if ow.EntityCount() != 4 {
		t.Fatalf("expected 2 roots + 2 children, got %d entities", ow.EntityCount())
	}
	if a.Entity == b.Entity {
		t.Fatal("instances share an entity")
	}
	for _, root := range []ecs.GameObject{a, b} {
		kids := root.Children()
		if len(kids) != 1 || kids[0].Name() != "Child" {
			t.Errorf("instance %d lost its child", root.Entity)
		}
		if ecs.GetComponent[ecs.Metadata](ow, root.Entity).Prefab != path {
			t.Error("prefab path not recorded")
		}
		if ecs.GetComponent[component.Mesh](ow, root.Entity).Mesh == nil {
			t.Error("prefab mesh not linked")
		}
		if sc, ok := ecs.TryComponent[ecs.ScriptComponent](ow, root.Entity); !ok || len(sc.Scripts) != 1 {
			t.Error("prefab script not attached")
		}
	}
	ua := ecs.GetComponent[ecs.Metadata](ow, a.Entity).UUID
	ub := ecs.GetComponent[ecs.Metadata](ow, b.Entity).UUID
	if ua == ub {
		t.Error("instances share a metadata UUID")
	}
}

func TestLuaScriptPropertiesPersist(t *testing.T) {
	engine, err := scripting.NewEngine("", zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer engine.Close()
	if err := engine.LoadString(`register_script("counter", { step = 1 })`); err != nil {
		t.Fatal(err)
	}
	z := newSerializer(t)
	engine.RegisterAll(z.Scripts)

	s := NewScene("lua", Services{})
	obj := s.CreateObject()
	obj.SetName("c")
	sc := engine.NewScript("counter")
	sc.SetProperties(map[string]any{"step": 5.0, "label": "five"})
	obj.AddScript(sc)

	data, err := z.SaveScene(s)
	if err != nil {
		t.Fatal(err)
	}
	dst := NewScene("lua2", Services{})
	if err := z.LoadScene(dst, data); err != nil {
		t.Fatal(err)
	}
	loaded := ecs.GetComponent[ecs.ScriptComponent](dst.World(), find(t, dst.World(), "c")).Scripts[0]
	props := loaded.(*scripting.LuaScript).Properties()
	if props["step"] != 5.0 || props["label"] != "five" {
		t.Errorf("expected step=5 label=five, got %v", props)
	}
}
