package ecs

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSetParentLinksBothSides(t *testing.T) {
	w := NewWorld()
	p := w.CreateEntity()
	c := w.CreateEntity()
	if err := w.SetParent(c, p); err != nil {
		t.Fatalf("SetParent: %v", err)
	}
	if err := w.SetParent(c, p); err != nil {
		t.Fatalf("second SetParent: %v", err)
	}
	if got := w.ParentOf(c); got != p {
		t.Errorf("expected parent %d, got %d", p, got)
	}
	if got := w.ChildrenOf(p); len(got) != 1 || got[0] != c {
		t.Errorf("expected children [%d], got %v", c, got)
	}
}

func TestReparentCleansOldParent(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	c := w.CreateEntity()
	_ = w.SetParent(c, a)
	if err := w.SetParent(c, b); err != nil {
		t.Fatalf("reparent: %v", err)
	}
	if got := w.ChildrenOf(a); len(got) != 0 {
		t.Errorf("old parent still lists %v", got)
	}
	if got := w.ParentOf(c); got != b {
		t.Errorf("expected parent %d, got %d", b, got)
	}
}

func TestSetParentRejectsCycles(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	c := w.CreateEntity()
	_ = w.SetParent(b, a)
	_ = w.SetParent(c, b)

	if err := w.SetParent(a, c); !errors.Is(err, ErrHierarchyCycle) {
		t.Errorf("expected cycle error, got %v", err)
	}
	if err := w.SetParent(a, a); !errors.Is(err, ErrHierarchyCycle) {
		t.Errorf("expected self-parent cycle error, got %v", err)
	}
	if w.ParentOf(a) != InvalidEntity {
		t.Error("rejected link was applied")
	}
}

func TestSetParentInvalidEntity(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	if err := w.SetParent(a, InvalidEntity); !errors.Is(err, ErrInvalidEntity) {
		t.Errorf("expected ErrInvalidEntity, got %v", err)
	}
}

func TestRemoveChildAndAllChildren(t *testing.T) {
	w := NewWorld()
	p := w.CreateEntity()
	c1 := w.CreateEntity()
	c2 := w.CreateEntity()
	_ = w.SetParent(c1, p)
	_ = w.SetParent(c2, p)

	w.RemoveChild(p, c1)
	if HasComponent[Parent](w, c1) {
		t.Error("c1 still has a parent")
	}
	if got := w.ChildrenOf(p); len(got) != 1 || got[0] != c2 {
		t.Errorf("expected [%d], got %v", c2, got)
	}

	w.RemoveAllChildren(p)
	if HasComponent[Parent](w, c2) {
		t.Error("c2 still has a parent")
	}
	if got := w.ChildrenOf(p); len(got) != 0 {
		t.Errorf("expected no children, got %v", got)
	}
}

func TestTransformMatrixOrder(t *testing.T) {
	tr := Transform{
		Position: mgl32.Vec3{1, 2, 3},
		Rotation: mgl32.Vec3{0, float32(math.Pi / 2), 0},
		Scale:    mgl32.Vec3{2, 1, 1},
	}
	// rotate (1,0,0) by yaw 90° -> (0,0,-1); scale x does nothing; translate.
	got := tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	want := mgl32.Vec3{1, 2, 2}
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("expected %v, got %v", want, got)
	}

	// scale applies after rotation: (0,0,1) -> yaw -> (1,0,0) -> scale x2.
	got = tr.Matrix().Mul4x1(mgl32.Vec4{0, 0, 1, 1}).Vec3()
	want = mgl32.Vec3{3, 2, 3}
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
