package arbor

// updateTransform recomputes n's global transform from its parent's global
// transform and its own local transform, then does the same for every
// descendant. Recomputation is eager: there is no dirty state, so reads of
// Global always reflect the latest edit.
func (n *Node) updateTransform() {
	if n.parent != nil {
		n.global = Compose(n.parent.global, n.local)
	} else {
		n.global = n.local
	}
	for _, child := range n.children {
		child.updateTransform()
	}
}

// setLocal replaces the local transform and recomputes the subtree.
// Edits to a disposed node are ignored.
func (n *Node) setLocal(m Affine2D, op string) {
	if n.disposed {
		if globalDebug {
			debugDisposed(n, op)
		}
		return
	}
	n.local = m
	n.updateTransform()
}

// --- Transform reads ---

// Local returns the transform relative to the parent's coordinate space.
func (n *Node) Local() Affine2D {
	return n.local
}

// Global returns the transform relative to the root's coordinate space.
func (n *Node) Global() Affine2D {
	return n.global
}

// Position returns the local translation.
func (n *Node) Position() Vec2 {
	return n.local.Translation()
}

// WorldPosition returns the global translation.
func (n *Node) WorldPosition() Vec2 {
	return n.global.Translation()
}

// Rotation returns the local rotation angle in radians.
func (n *Node) Rotation() float64 {
	return n.local.Rotation()
}

// Forward returns the local Y axis (column 1 of the local transform), the
// direction the node faces in its parent's space. Its length is the node's
// Y scale.
func (n *Node) Forward() Vec2 {
	return n.local.Column(1)
}

// Right returns the local X axis (column 0 of the local transform).
func (n *Node) Right() Vec2 {
	return n.local.Column(0)
}

// LocalToWorld converts a point in this node's space to world space.
func (n *Node) LocalToWorld(p Vec2) Vec2 {
	return n.global.TransformPoint(p)
}

// WorldToLocal converts a world-space point to this node's space. When the
// global transform is singular the point is returned unchanged.
func (n *Node) WorldToLocal(p Vec2) Vec2 {
	inv, _ := n.global.Inverse()
	return inv.TransformPoint(p)
}

// --- Replacing edits ---

// SetLocal replaces the whole local transform.
func (n *Node) SetLocal(m Affine2D) {
	n.setLocal(m, "SetLocal")
}

// SetPosition replaces the local translation. Rotation and scale are kept.
func (n *Node) SetPosition(x, y float64) {
	n.setLocal(n.local.withTranslation(x, y), "SetPosition")
}

// SetRotation replaces the linear part of the local transform with a pure
// rotation. Any scale is discarded; the position is kept.
func (n *Node) SetRotation(radians float64) {
	n.setLocal(n.local.withLinear(Rotation(radians)), "SetRotation")
}

// SetScale replaces the linear part of the local transform with a pure
// scale. Any rotation is discarded; the position is kept.
func (n *Node) SetScale(sx, sy float64) {
	n.setLocal(n.local.withLinear(Scaling(sx, sy)), "SetScale")
}

// --- Accumulating edits ---

// Translate moves the node by (dx, dy) in its parent's space.
func (n *Node) Translate(dx, dy float64) {
	n.setLocal(Compose(Translation(dx, dy), n.local), "Translate")
}

// Rotate rotates the node about its own origin by radians.
func (n *Node) Rotate(radians float64) {
	n.setLocal(Compose(n.local, Rotation(radians)), "Rotate")
}

// Scale scales the node along its own axes.
func (n *Node) Scale(sx, sy float64) {
	n.setLocal(Compose(n.local, Scaling(sx, sy)), "Scale")
}
