package arbor

import "github.com/hajimehoshi/ebiten/v2"

// Drawable is an opaque handle to a loaded renderable resource. The node
// that requested it owns it and must Release it.
type Drawable interface {
	Size() (w, h int)
	Release()
}

// Renderer draws drawables with a transform. DrawTransformed receives the
// transform as a column-major 3x3 buffer (see Affine2D.Flat). Calls are
// bracketed by Begin and End once per frame.
type Renderer interface {
	Begin()
	DrawTransformed(d Drawable, m [9]float32)
	End()
}

// --- Texture ---

// Texture is a Drawable backed by an *ebiten.Image.
type Texture struct {
	img *ebiten.Image

	// OriginX and OriginY place the transform origin inside the image as a
	// fraction of its size. The default (0.5, 0.5) centers the image.
	OriginX, OriginY float64
}

// NewTexture wraps img as a centered Texture.
func NewTexture(img *ebiten.Image) *Texture {
	return &Texture{img: img, OriginX: 0.5, OriginY: 0.5}
}

// NewSolidTexture creates a w×h texture filled with c.
func NewSolidTexture(w, h int, c Color) *Texture {
	img := ebiten.NewImage(w, h)
	img.Fill(c.toRGBA())
	return NewTexture(img)
}

// Image returns the backing image, or nil once released.
func (t *Texture) Image() *ebiten.Image {
	return t.img
}

// Size returns the image size in pixels, or (0, 0) once released.
func (t *Texture) Size() (w, h int) {
	if t.img == nil {
		return 0, 0
	}
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// Release deallocates the backing image. Safe to call more than once.
func (t *Texture) Release() {
	if t.img == nil {
		return
	}
	t.img.Deallocate()
	t.img = nil
}

// --- EbitenRenderer ---

// EbitenRenderer is a Renderer that draws Textures onto an ebiten image.
// Set the target each frame with SetTarget before the scene draws.
type EbitenRenderer struct {
	// Filter is the sampling filter used for every draw.
	Filter ebiten.Filter

	target    *ebiten.Image
	op        ebiten.DrawImageOptions
	active    bool
	drawCount int
	skipped   int
}

// NewEbitenRenderer creates a renderer using linear filtering.
func NewEbitenRenderer() *EbitenRenderer {
	return &EbitenRenderer{Filter: ebiten.FilterLinear}
}

// SetTarget sets the image subsequent draws render into.
func (r *EbitenRenderer) SetTarget(target *ebiten.Image) {
	r.target = target
}

// Begin starts a draw batch and resets the per-frame counters.
func (r *EbitenRenderer) Begin() {
	r.active = true
	r.drawCount = 0
	r.skipped = 0
}

// End closes the draw batch. Draws outside Begin/End are ignored.
func (r *EbitenRenderer) End() {
	r.active = false
}

// DrawTransformed draws d, which must be a *Texture, with the image origin
// placed at the transform's origin.
func (r *EbitenRenderer) DrawTransformed(d Drawable, m [9]float32) {
	if !r.active || r.target == nil {
		return
	}
	tex, ok := d.(*Texture)
	if !ok || tex == nil || tex.img == nil {
		r.skipped++
		return
	}
	w, h := tex.Size()
	r.op.GeoM.Reset()
	r.op.GeoM.Translate(-tex.OriginX*float64(w), -tex.OriginY*float64(h))
	r.op.GeoM.Concat(FromFlat(m).GeoM())
	r.op.Filter = r.Filter
	r.target.DrawImage(tex.img, &r.op)
	r.drawCount++
}

// DrawCount returns the number of images drawn in the current or last batch.
func (r *EbitenRenderer) DrawCount() int {
	return r.drawCount
}

// Skipped returns the number of draws dropped in the current or last batch
// because the drawable was not a live Texture.
func (r *EbitenRenderer) Skipped() int {
	return r.skipped
}
