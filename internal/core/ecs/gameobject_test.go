package ecs

import (
	"reflect"
	"testing"
)

func TestGameObjectHelpers(t *testing.T) {
	w := NewWorld()
	parent := NewGameObject(w)
	child := NewGameObject(w)
	child.SetName("paddle")
	child.AddTag("player")

	if child.Transform() == nil {
		t.Fatal("NewGameObject should add a Transform")
	}
	if got := child.Name(); got != "paddle" {
		t.Errorf("expected name paddle, got %q", got)
	}
	if !child.HasTag("player") || child.HasTag("enemy") {
		t.Error("tag lookup mismatch")
	}
	if err := child.SetParent(parent); err != nil {
		t.Fatalf("SetParent: %v", err)
	}
	kids := parent.Children()
	if len(kids) != 1 || kids[0].Entity != child.Entity {
		t.Errorf("expected one child %d, got %v", child.Entity, kids)
	}
	child.RemoveParent()
	if len(parent.Children()) != 0 {
		t.Error("RemoveParent left a child link")
	}
}

func TestGameObjectValid(t *testing.T) {
	w := NewWorld()
	g := NewGameObject(w)
	if !g.Valid() {
		t.Fatal("fresh object should be valid")
	}
	w.DestroyEntity(g.Entity)
	if g.Valid() {
		t.Error("destroyed object still valid")
	}
	if (GameObject{}).Valid() {
		t.Error("zero GameObject should be invalid")
	}
}

func TestRemoveScriptRunsOnDestroy(t *testing.T) {
	var log []string
	w := NewWorld()
	g := NewGameObject(w)
	g.AddScript(&lifecycleScript{log: &log})

	if g.RemoveScript("missing") {
		t.Error("removed a script that was never attached")
	}
	if !g.RemoveScript("lifecycle") {
		t.Fatal("RemoveScript reported nothing removed")
	}
	want := []string{"create", "destroy"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("expected %v, got %v", want, log)
	}
	if n := len(GetComponent[ScriptComponent](w, g.Entity).Scripts); n != 0 {
		t.Errorf("expected no scripts left, got %d", n)
	}
}
