package arbor

import "fmt"

// Sprite is a Behavior that draws a Drawable at its node's global
// transform. It owns the drawable: loading a new path releases the old
// handle, and Release (called by Node.Dispose) frees the current one.
type Sprite struct {
	loader   Loader
	path     string
	drawable Drawable
}

// NewSprite creates a sprite and loads path with loader. On failure the
// sprite is still returned, with no drawable, together with the error.
func NewSprite(loader Loader, path string) (*Sprite, error) {
	s := &Sprite{loader: loader}
	err := s.Load(path)
	return s, err
}

// NewSpriteFromDrawable creates a sprite around an already-loaded drawable.
// The sprite takes ownership of d.
func NewSpriteFromDrawable(d Drawable) *Sprite {
	return &Sprite{drawable: d}
}

// NewSpriteNode creates a node carrying a sprite loaded from path. The node
// is returned even when loading fails, so it can still take part in the
// tree; it simply draws nothing until a later Load succeeds.
func NewSpriteNode(name string, loader Loader, path string) (*Node, *Sprite, error) {
	n := NewNode(name)
	s, err := NewSprite(loader, path)
	n.AddBehavior(s)
	if err != nil {
		return n, s, fmt.Errorf("arbor: sprite %q: %w", name, err)
	}
	return n, s, nil
}

// Load releases the current drawable and loads path in its place. On
// failure the sprite is left without a drawable and the error is returned.
func (s *Sprite) Load(path string) error {
	s.Release()
	s.path = path
	if s.loader == nil {
		return fmt.Errorf("load %q: %w", path, ErrNoLoader)
	}
	d, err := s.loader.Load(path)
	if err != nil {
		return err
	}
	s.drawable = d
	return nil
}

// SetDrawable replaces the current drawable, releasing the old one. The
// sprite takes ownership of d.
func (s *Sprite) SetDrawable(d Drawable) {
	s.Release()
	s.drawable = d
}

// Release frees the drawable. Safe to call more than once.
func (s *Sprite) Release() {
	if s.drawable == nil {
		return
	}
	s.drawable.Release()
	s.drawable = nil
}

// Drawable returns the current drawable, or nil.
func (s *Sprite) Drawable() Drawable {
	return s.drawable
}

// Path returns the path of the last Load.
func (s *Sprite) Path() string {
	return s.path
}

// OnUpdate does nothing.
func (s *Sprite) OnUpdate(*Node, float64) {}

// OnDraw submits the drawable with the node's global transform. A sprite
// without a drawable draws nothing.
func (s *Sprite) OnDraw(n *Node, r Renderer) {
	if s.drawable == nil {
		return
	}
	r.DrawTransformed(s.drawable, n.Global().Flat())
}
