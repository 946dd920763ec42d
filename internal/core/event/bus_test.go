package event

import "testing"

func TestEventsDeliveredNextFrame(t *testing.T) {
	b := NewBus()
	var got []Collision
	Subscribe(b, func(c Collision) { got = append(got, c) })

	Emit(b, Collision{A: 1, B: 2})
	b.DispatchAll()
	if len(got) != 0 {
		t.Fatalf("expected no delivery before swap, got %v", got)
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 || got[0].A != 1 || got[0].B != 2 {
		t.Fatalf("expected one collision, got %v", got)
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 {
		t.Errorf("event delivered twice: %v", got)
	}
}

func TestPending(t *testing.T) {
	b := NewBus()
	Emit(b, TimerFinished{Entity: 3, Name: "spawn"})
	Emit(b, TimerFinished{Entity: 4, Name: "spawn"})
	if n := len(Pending[TimerFinished](b)); n != 0 {
		t.Fatalf("expected 0 pending before swap, got %d", n)
	}
	b.SwapBuffers()
	p := Pending[TimerFinished](b)
	if len(p) != 2 || p[1].Entity != 4 {
		t.Errorf("unexpected pending events %v", p)
	}
}
