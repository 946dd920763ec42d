package ecs

// Views are recomputed on every call by walking the live list, so results
// come back in creation order and never go stale. The cost is
// O(entities × components); scenes here are small enough for that.

// View1 returns the live entities that have an A.
func View1[A any](w *World) []Entity {
	sa, ok := lookupStorage[A](w.components)
	if !ok {
		return nil
	}
	out := make([]Entity, 0, sa.Len())
	for _, e := range w.entities {
		if sa.Has(e) {
			out = append(out, e)
		}
	}
	return out
}

// View2 returns the live entities that have both A and B.
func View2[A, B any](w *World) []Entity {
	sa, ok := lookupStorage[A](w.components)
	if !ok {
		return nil
	}
	sb, ok := lookupStorage[B](w.components)
	if !ok {
		return nil
	}
	var out []Entity
	for _, e := range w.entities {
		if sa.Has(e) && sb.Has(e) {
			out = append(out, e)
		}
	}
	return out
}

// View3 returns the live entities that have A, B and C.
func View3[A, B, C any](w *World) []Entity {
	sa, ok := lookupStorage[A](w.components)
	if !ok {
		return nil
	}
	sb, ok := lookupStorage[B](w.components)
	if !ok {
		return nil
	}
	sc, ok := lookupStorage[C](w.components)
	if !ok {
		return nil
	}
	var out []Entity
	for _, e := range w.entities {
		if sa.Has(e) && sb.Has(e) && sc.Has(e) {
			out = append(out, e)
		}
	}
	return out
}

// View4 returns the live entities that have all four component types.
func View4[A, B, C, D any](w *World) []Entity {
	sd, ok := lookupStorage[D](w.components)
	if !ok {
		return nil
	}
	var out []Entity
	for _, e := range View3[A, B, C](w) {
		if sd.Has(e) {
			out = append(out, e)
		}
	}
	return out
}

// Each1 calls fn for every entity with an A, in creation order.
func Each1[A any](w *World, fn func(Entity, *A)) {
	sa, ok := lookupStorage[A](w.components)
	if !ok {
		return
	}
	for _, e := range View1[A](w) {
		if a, ok := sa.Lookup(e); ok {
			fn(e, a)
		}
	}
}

// Each2 calls fn for every entity with both A and B, in creation order.
// The entity list is snapshotted first, so fn may create or destroy entities.
func Each2[A, B any](w *World, fn func(Entity, *A, *B)) {
	ids := View2[A, B](w)
	if len(ids) == 0 {
		return
	}
	sa := StorageOf[A](w.components)
	sb := StorageOf[B](w.components)
	for _, e := range ids {
		a, okA := sa.Lookup(e)
		b, okB := sb.Lookup(e)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

// Each3 calls fn for every entity with A, B and C, in creation order.
func Each3[A, B, C any](w *World, fn func(Entity, *A, *B, *C)) {
	ids := View3[A, B, C](w)
	if len(ids) == 0 {
		return
	}
	sa := StorageOf[A](w.components)
	sb := StorageOf[B](w.components)
	sc := StorageOf[C](w.components)
	for _, e := range ids {
		a, okA := sa.Lookup(e)
		b, okB := sb.Lookup(e)
		c, okC := sc.Lookup(e)
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}
