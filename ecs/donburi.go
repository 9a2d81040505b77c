package ecs

import (
	"github.com/phanxgames/arbor"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TransformEventType is the Donburi event type for arbor transform updates.
// Subscribe to this in your ECS systems to receive node global transforms.
var TransformEventType = events.NewEventType[arbor.TransformEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Transform updates are published to TransformEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) arbor.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) SyncTransform(event arbor.TransformEvent) {
	TransformEventType.Publish(s.world, event)
}
