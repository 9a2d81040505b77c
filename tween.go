package arbor

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 2 transform values on a Node simultaneously.
// Create one with TweenPosition, TweenRotation, or TweenScale, then either
// attach it to a node with AddBehavior or call Update(dt) yourself. Values
// are applied through the node's setters, so the subtree's global
// transforms are current after every step. If the target node is disposed,
// the group stops immediately.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	values [2]float64
	apply  func(n *Node, v [2]float64)
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and applies the values to the
// target node. If the target node has been disposed, Done is set to true
// and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target == nil || g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.values[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.apply(g.target, g.values)
}

// OnUpdate advances the group when it is attached as a behavior.
func (g *TweenGroup) OnUpdate(_ *Node, dt float64) {
	g.Update(float32(dt))
}

// OnDraw does nothing.
func (g *TweenGroup) OnDraw(*Node, Renderer) {}

// TweenPosition creates a TweenGroup that moves node from its current
// position to (toX, toY) over duration seconds.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := node.Position()
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(from.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(from.Y), float32(toY), duration, fn)
	g.apply = func(n *Node, v [2]float64) { n.SetPosition(v[0], v[1]) }
	return g
}

// TweenRotation creates a TweenGroup that turns node from its current
// rotation to the given angle in radians. Like SetRotation, it discards
// any scale on the node.
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Rotation()), float32(to), duration, fn)
	g.apply = func(n *Node, v [2]float64) { n.SetRotation(v[0]) }
	return g
}

// TweenScale creates a TweenGroup that scales node from its current scale
// factors to (toSX, toSY). Like SetScale, it discards any rotation on the
// node.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	sx, sy := node.Local().ScaleFactors()
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(sx), float32(toSX), duration, fn)
	g.tweens[1] = gween.New(float32(sy), float32(toSY), duration, fn)
	g.apply = func(n *Node, v [2]float64) { n.SetScale(v[0], v[1]) }
	return g
}
