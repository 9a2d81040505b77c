package arbor

// Behavior is a per-node extension point run by the update and draw
// traversals. Node kinds such as sprites are behaviors attached to a plain
// Node; the tree itself knows nothing about rendering.
type Behavior interface {
	// OnUpdate is called once per Update traversal with the elapsed time in seconds.
	OnUpdate(n *Node, dt float64)
	// OnDraw is called once per Draw traversal, after n's global transform is current.
	OnDraw(n *Node, r Renderer)
}

// Releaser is implemented by behaviors that own resources. Node.Dispose
// calls Release on them.
type Releaser interface {
	Release()
}

// NopBehavior implements Behavior with no-op methods. Embed it to override
// only one hook.
type NopBehavior struct{}

// OnUpdate does nothing.
func (NopBehavior) OnUpdate(*Node, float64) {}

// OnDraw does nothing.
func (NopBehavior) OnDraw(*Node, Renderer) {}

type updateFunc struct {
	NopBehavior
	fn func(n *Node, dt float64)
}

func (b *updateFunc) OnUpdate(n *Node, dt float64) { b.fn(n, dt) }

// OnUpdate wraps fn as a Behavior with a no-op draw hook.
func OnUpdate(fn func(n *Node, dt float64)) Behavior {
	return &updateFunc{fn: fn}
}

type drawFunc struct {
	NopBehavior
	fn func(n *Node, r Renderer)
}

func (b *drawFunc) OnDraw(n *Node, r Renderer) { b.fn(n, r) }

// OnDraw wraps fn as a Behavior with a no-op update hook.
func OnDraw(fn func(n *Node, r Renderer)) Behavior {
	return &drawFunc{fn: fn}
}

// AddBehavior appends b to the node's behaviors. Behaviors run in the
// order they were added. Nil behaviors and disposed nodes are ignored.
func (n *Node) AddBehavior(b Behavior) {
	if b == nil || n.disposed {
		return
	}
	n.behaviors = append(n.behaviors, b)
}

// RemoveBehavior removes b from the node and reports whether it was
// attached. b must be comparable; pointer behaviors always are. The
// behavior is not released.
func (n *Node) RemoveBehavior(b Behavior) bool {
	for i, cur := range n.behaviors {
		if cur == b {
			copy(n.behaviors[i:], n.behaviors[i+1:])
			n.behaviors[len(n.behaviors)-1] = nil
			n.behaviors = n.behaviors[:len(n.behaviors)-1]
			return true
		}
	}
	return false
}

// Behaviors returns the attached behaviors. The returned slice MUST NOT be mutated.
func (n *Node) Behaviors() []Behavior {
	return n.behaviors
}

// Update runs OnUpdate for n's behaviors, then recurses into the children
// (pre-order). A negative dt is treated as zero. Behaviors may attach,
// detach or dispose nodes: a child detached before its turn is skipped, and
// nodes attached to n after its behaviors have run wait for the next Update.
func (n *Node) Update(dt float64) {
	if n.disposed {
		return
	}
	if dt < 0 {
		dt = 0
	}
	for i := 0; i < len(n.behaviors) && !n.disposed; i++ {
		n.behaviors[i].OnUpdate(n, dt)
	}
	n.eachChild(func(c *Node) bool {
		c.Update(dt)
		return true
	})
}

// Draw runs OnDraw for n's behaviors, then recurses into the children
// (pre-order). A nil renderer draws nothing.
func (n *Node) Draw(r Renderer) {
	if n.disposed || r == nil {
		return
	}
	for i := 0; i < len(n.behaviors) && !n.disposed; i++ {
		n.behaviors[i].OnDraw(n, r)
	}
	n.eachChild(func(c *Node) bool {
		c.Draw(r)
		return true
	})
}
