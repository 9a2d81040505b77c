package ecs

import (
	"testing"

	"github.com/phanxgames/arbor"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_SyncTransform(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []arbor.TransformEvent
	TransformEventType.Subscribe(world, func(w donburi.World, e arbor.TransformEvent) {
		received = append(received, e)
	})

	store.SyncTransform(arbor.TransformEvent{EntityID: 42, X: 100, Y: 200})
	store.SyncTransform(arbor.TransformEvent{EntityID: 43, Rotation: 1.5})

	// Events are queued until processed.
	TransformEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.EntityID != 42 || e.X != 100 || e.Y != 200 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.EntityID != 43 || e.Rotation != 1.5 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiStore_SceneIntegration(t *testing.T) {
	world := donburi.NewWorld()
	scene := arbor.NewScene(arbor.SceneOptions{})
	scene.SetEntityStore(NewDonburiStore(world))

	tank := arbor.NewNode("tank")
	tank.EntityID = 1
	tank.SetPosition(10, 0)
	turret := arbor.NewNode("turret")
	turret.EntityID = 2
	turret.SetPosition(0, 5)
	if err := scene.Root().AddChild(tank); err != nil {
		t.Fatal(err)
	}
	if err := tank.AddChild(turret); err != nil {
		t.Fatal(err)
	}

	got := map[uint32]arbor.TransformEvent{}
	TransformEventType.Subscribe(world, func(w donburi.World, e arbor.TransformEvent) {
		got[e.EntityID] = e
	})

	if err := scene.Update(1.0 / 60); err != nil {
		t.Fatal(err)
	}
	events.ProcessAllEvents(world)

	if len(got) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(got))
	}
	if e := got[2]; e.X != 10 || e.Y != 5 {
		t.Errorf("turret world position = (%v, %v), want (10, 5)", e.X, e.Y)
	}
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	TransformEventType.Subscribe(world, func(w donburi.World, e arbor.TransformEvent) {
		count1++
	})
	TransformEventType.Subscribe(world, func(w donburi.World, e arbor.TransformEvent) {
		count2++
	})

	store.SyncTransform(arbor.TransformEvent{EntityID: 9})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
