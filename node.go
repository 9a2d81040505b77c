package arbor

import "fmt"

// --- ID counter ---

// nodeIDCounter is a plain counter (arbor is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is a scene graph element. It owns a local transform relative to its
// parent and caches its global transform, which is recomputed for the whole
// subtree whenever the local transform or the tree shape changes.
//
// A node owns its children exclusively. The parent link is a lookup-only back
// reference; it never keeps a node alive on its own.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// EntityID links the node to an external entity (see EntityStore).
	// Zero means the node is not linked.
	EntityID uint32
	UserData any

	// Hierarchy
	parent   *Node
	children []*Node

	// Transforms
	local  Affine2D
	global Affine2D

	behaviors []Behavior
	disposed  bool
}

// NewNode creates a standalone node with identity transforms and no parent.
func NewNode(name string) *Node {
	return &Node{
		ID:     nextNodeID(),
		Name:   name,
		local:  Identity(),
		global: Identity(),
	}
}

// --- Tree queries ---

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Root returns the topmost ancestor of n (n itself when it has no parent).
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index, or ErrIndexOutOfRange.
func (n *Node) ChildAt(index int) (*Node, error) {
	if index < 0 || index >= len(n.children) {
		return nil, fmt.Errorf("arbor: child %d of %q (%d children): %w",
			index, n.Name, len(n.children), ErrIndexOutOfRange)
	}
	return n.children[index], nil
}

// Find returns the first node named name in n's subtree (n included),
// searching depth-first in child order, or nil.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if c.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// stops the walk. fn may detach or dispose nodes; detached nodes that have
// not been visited yet are skipped.
func (n *Node) Walk(fn func(*Node) bool) {
	n.walk(fn)
}

func (n *Node) walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	return n.eachChild(func(c *Node) bool { return c.walk(fn) })
}

// eachChild calls fn for each child of n over a snapshot of the children
// list, so fn may attach, detach or dispose nodes. A child detached from n
// before its turn is skipped; children attached during the loop are not
// visited. Returning false from fn stops the loop.
func (n *Node) eachChild(fn func(*Node) bool) bool {
	var buf [8]*Node
	kids := append(buf[:0], n.children...)
	for _, c := range kids {
		if c.parent != n {
			continue
		}
		if !fn(c) {
			return false
		}
	}
	return true
}

// --- Tree manipulation ---

// AddChild appends child to this node's children and recomputes the global
// transforms of child's subtree.
//
// It fails without modifying either tree when child is nil, already has a
// parent (ErrAlreadyParented; use Reparent to move it), is n or one of n's
// ancestors (ErrCycle), or either node is disposed.
func (n *Node) AddChild(child *Node) error {
	if err := n.checkAttach(child, "attach"); err != nil {
		return err
	}
	n.children = append(n.children, child)
	n.adopt(child)
	return nil
}

// AddChildAt inserts child at the given index in [0, NumChildren()].
// Same preconditions as AddChild.
func (n *Node) AddChildAt(child *Node, index int) error {
	if err := n.checkAttach(child, "attach"); err != nil {
		return err
	}
	if index < 0 || index > len(n.children) {
		return fmt.Errorf("arbor: insert %q at %d in %q: %w", child.Name, index, n.Name, ErrIndexOutOfRange)
	}
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	n.adopt(child)
	return nil
}

// Reparent moves n under newParent, detaching it from its current parent
// first. A nil newParent just detaches n. The global transforms of n's
// subtree are recomputed against the new parent.
func (n *Node) Reparent(newParent *Node) error {
	if newParent == nil {
		n.RemoveFromParent()
		return nil
	}
	if n.parent == newParent {
		return nil
	}
	if n.disposed || newParent.disposed {
		return fmt.Errorf("arbor: reparent %q under %q: %w", n.Name, newParent.Name, ErrDisposed)
	}
	if isAncestor(n, newParent) {
		return fmt.Errorf("arbor: reparent %q under %q: %w", n.Name, newParent.Name, ErrCycle)
	}
	if n.parent != nil {
		n.parent.removeChildByPtr(n)
		n.parent = nil
	}
	newParent.children = append(newParent.children, n)
	newParent.adopt(n)
	return nil
}

// RemoveChild detaches child from this node. The child becomes a root, so
// its global transform equals its local transform afterwards. Reports
// whether child was found; detaching a non-child is a no-op.
func (n *Node) RemoveChild(child *Node) bool {
	if child == nil || child.parent != n {
		return false
	}
	if !n.removeChildByPtr(child) {
		return false
	}
	child.parent = nil
	child.updateTransform()
	return true
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) (*Node, error) {
	child, err := n.ChildAt(index)
	if err != nil {
		return nil, err
	}
	n.RemoveChild(child)
	return child, nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for i, child := range n.children {
		child.parent = nil
		child.updateTransform()
		n.children[i] = nil
	}
	n.children = n.children[:0]
}

// --- Disposal ---

// Dispose detaches this node from its parent, orphans its children (they
// become standalone roots and stay usable), releases behaviors that
// implement Releaser, and marks the node as disposed.
//
// Children are not disposed; use DisposeTree for that.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.RemoveChildren()
	n.children = nil
	for _, b := range n.behaviors {
		if r, ok := b.(Releaser); ok {
			r.Release()
		}
	}
	n.behaviors = nil
	n.UserData = nil
	n.disposed = true
}

// DisposeTree disposes n and every descendant, deepest first.
func (n *Node) DisposeTree() {
	for len(n.children) > 0 {
		n.children[len(n.children)-1].DisposeTree()
	}
	n.Dispose()
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// checkAttach validates attaching child under n without mutating anything.
func (n *Node) checkAttach(child *Node, op string) error {
	if child == nil {
		return fmt.Errorf("arbor: %s to %q: %w", op, n.Name, ErrNilNode)
	}
	if n.disposed || child.disposed {
		if globalDebug {
			debugDisposed(n, op)
		}
		return fmt.Errorf("arbor: %s %q to %q: %w", op, child.Name, n.Name, ErrDisposed)
	}
	if child.parent != nil {
		return fmt.Errorf("arbor: %s %q to %q (current parent %q): %w",
			op, child.Name, n.Name, child.parent.Name, ErrAlreadyParented)
	}
	if isAncestor(child, n) {
		return fmt.Errorf("arbor: %s %q to %q: %w", op, child.Name, n.Name, ErrCycle)
	}
	return nil
}

// adopt links child (already present in n.children) to n and brings the
// child's subtree up to date.
func (n *Node) adopt(child *Node) {
	child.parent = n
	child.updateTransform()
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return true
		}
	}
	return false
}
