package arbor

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera is the view into the scene: it maps world coordinates to screen
// coordinates. Install one with Scene.SetCamera; the scene advances it after
// each update traversal and applies its view to every draw.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Rotation is the camera rotation in radians (clockwise on screen).
	Rotation float64
	// Viewport is the screen-space rectangle the camera renders into.
	Viewport Rect

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	Bounds        Rect

	followTarget *Node
	followOffset Vec2
	followLerp   float64

	scroll *scrollAnim
}

// NewCamera creates a Camera with zoom 1 centered on the middle of the
// viewport, so its view starts as the identity.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		X:        viewport.X + viewport.Width/2,
		Y:        viewport.Y + viewport.Height/2,
		Zoom:     1,
		Viewport: viewport,
	}
}

// Follow makes the camera track the world position of node plus the given
// offset. A lerp of 1 snaps immediately; lower values give smoother
// following.
func (c *Camera) Follow(node *Node, offsetX, offsetY, lerp float64) {
	c.followTarget = node
	c.followOffset = Vec2{offsetX, offsetY}
	c.followLerp = lerp
}

// Unfollow stops tracking the current target node.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// ScrollTo animates the camera to the given world position over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scroll = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scroll != nil
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// ClampToBounds immediately clamps the camera position. No-op if
// BoundsEnabled is false.
func (c *Camera) ClampToBounds() {
	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// update advances follow, scroll, and bounds clamping. Called from Scene.Update.
func (c *Camera) update(dt float64) {
	if c.followTarget != nil && !c.followTarget.IsDisposed() {
		target := c.followTarget.WorldPosition().Add(c.followOffset)
		c.X += (target.X - c.X) * c.followLerp
		c.Y += (target.Y - c.Y) * c.followLerp
	}

	if c.scroll != nil {
		if !c.scroll.doneX {
			val, done := c.scroll.tweenX.Update(float32(dt))
			c.X = float64(val)
			c.scroll.doneX = done
		}
		if !c.scroll.doneY {
			val, done := c.scroll.tweenY.Update(float32(dt))
			c.Y = float64(val)
			c.scroll.doneY = done
		}
		if c.scroll.doneX && c.scroll.doneY {
			c.scroll = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

func (c *Camera) clampToBounds() {
	if c.Zoom == 0 {
		return
	}
	halfW := c.Viewport.Width / (2 * c.Zoom)
	halfH := c.Viewport.Height / (2 * c.Zoom)

	minX := c.Bounds.X + halfW
	maxX := c.Bounds.X + c.Bounds.Width - halfW
	minY := c.Bounds.Y + halfH
	maxY := c.Bounds.Y + c.Bounds.Height - halfH

	// Bounds smaller than the visible area: center on them.
	if minX > maxX {
		c.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}

// View returns the world-to-screen transform:
//
//	Translation(cx, cy) * Scaling(zoom) * Rotation(-rotation) * Translation(-X, -Y)
//
// where (cx, cy) is the viewport center.
func (c *Camera) View() Affine2D {
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	return Compose(
		Compose(Translation(cx, cy), Scaling(c.Zoom, c.Zoom)),
		Compose(Rotation(-c.Rotation), Translation(-c.X, -c.Y)),
	)
}

// WorldToScreen converts a world-space point to screen space.
func (c *Camera) WorldToScreen(p Vec2) Vec2 {
	return c.View().TransformPoint(p)
}

// ScreenToWorld converts a screen-space point to world space. With a zero
// zoom the point is returned unchanged.
func (c *Camera) ScreenToWorld(p Vec2) Vec2 {
	inv, ok := c.View().Inverse()
	if !ok {
		return p
	}
	return inv.TransformPoint(p)
}

// VisibleBounds returns the axis-aligned bounding rect of the camera's
// visible area in world space.
func (c *Camera) VisibleBounds() Rect {
	vx, vy := c.Viewport.X, c.Viewport.Y
	vr, vb := vx+c.Viewport.Width, vy+c.Viewport.Height

	corners := [4]Vec2{
		c.ScreenToWorld(Vec2{vx, vy}),
		c.ScreenToWorld(Vec2{vr, vy}),
		c.ScreenToWorld(Vec2{vr, vb}),
		c.ScreenToWorld(Vec2{vx, vb}),
	}
	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := minX, minY
	for _, p := range corners[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// viewRenderer applies a camera view to every draw before forwarding it.
type viewRenderer struct {
	Renderer
	view Affine2D
}

func (r *viewRenderer) DrawTransformed(d Drawable, m [9]float32) {
	r.Renderer.DrawTransformed(d, Compose(r.view, FromFlat(m)).Flat())
}
