package ecs

import "slices"

// SetParent makes child a child of parent. Any previous parent link is
// removed first so the old parent's list never keeps a stale entry. Links
// that would make child its own ancestor are rejected with ErrHierarchyCycle.
func (w *World) SetParent(child, parent Entity) error {
	if child == InvalidEntity || parent == InvalidEntity || !w.Alive(child) || !w.Alive(parent) {
		return ErrInvalidEntity
	}
	if w.isAncestor(child, parent) {
		return ErrHierarchyCycle
	}
	w.RemoveParent(child)

	kids, ok := TryComponent[Children](w, parent)
	if !ok {
		kids = AddComponent(w, parent, Children{})
	}
	if !slices.Contains(kids.Entities, child) {
		kids.Entities = append(kids.Entities, child)
	}
	AddComponent(w, child, Parent{Entity: parent})
	return nil
}

// isAncestor reports whether a is p or one of p's ancestors.
func (w *World) isAncestor(a, p Entity) bool {
	parents := StorageOf[Parent](w.components)
	seen := 0
	for cur := p; cur != InvalidEntity; seen++ {
		if cur == a {
			return true
		}
		link, ok := parents.Lookup(cur)
		if !ok || seen > len(w.entities) {
			return false
		}
		cur = link.Entity
	}
	return false
}

// RemoveParent detaches child from its parent, if it has one.
func (w *World) RemoveParent(child Entity) {
	link, ok := TryComponent[Parent](w, child)
	if !ok {
		return
	}
	if kids, ok := TryComponent[Children](w, link.Entity); ok {
		kids.Entities = slices.DeleteFunc(kids.Entities, func(e Entity) bool { return e == child })
	}
	RemoveComponent[Parent](w, child)
}

// RemoveChild detaches child from parent. It is a no-op when child is not
// parent's child.
func (w *World) RemoveChild(parent, child Entity) {
	if link, ok := TryComponent[Parent](w, child); ok && link.Entity == parent {
		w.RemoveParent(child)
		return
	}
	if kids, ok := TryComponent[Children](w, parent); ok {
		kids.Entities = slices.DeleteFunc(kids.Entities, func(e Entity) bool { return e == child })
	}
}

// RemoveAllChildren detaches every child of parent.
func (w *World) RemoveAllChildren(parent Entity) {
	kids, ok := TryComponent[Children](w, parent)
	if !ok {
		return
	}
	for _, c := range kids.Entities {
		if link, ok := TryComponent[Parent](w, c); ok && link.Entity == parent {
			RemoveComponent[Parent](w, c)
		}
	}
	kids.Entities = kids.Entities[:0]
}

// ChildrenOf returns a copy of parent's child list.
func (w *World) ChildrenOf(parent Entity) []Entity {
	kids, ok := TryComponent[Children](w, parent)
	if !ok {
		return nil
	}
	return slices.Clone(kids.Entities)
}

// ParentOf returns child's parent or InvalidEntity.
func (w *World) ParentOf(child Entity) Entity {
	if link, ok := TryComponent[Parent](w, child); ok {
		return link.Entity
	}
	return InvalidEntity
}
