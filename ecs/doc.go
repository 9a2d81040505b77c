// Package ecs provides ECS adapters for arbor.
//
// [NewDonburiStore] bridges a Scene to a Donburi world: after every
// Scene.Update, each node with a non-zero EntityID publishes its global
// transform as a [TransformEventType] event.
package ecs
