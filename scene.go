package arbor

import (
	"fmt"
	"log/slog"
	"time"
)

// EntityStore is the interface for optional ECS integration. When set on a
// Scene, the global transform of every node with a non-zero EntityID is
// forwarded after each update traversal.
type EntityStore interface {
	SyncTransform(event TransformEvent)
}

// TransformEvent carries a node's global transform to the ECS bridge.
type TransformEvent struct {
	EntityID uint32
	NodeID   uint32
	Global   Affine2D
	// Decomposed global transform, for consumers that don't want a matrix.
	X, Y     float64
	Rotation float64
}

// SceneOptions are the collaborators a Scene is built with. Nil fields get
// defaults: no renderer (Draw is a no-op), an empty StaticInput, no loader,
// and slog.Default().
type SceneOptions struct {
	Renderer Renderer
	Input    Input
	Loader   Loader
	Logger   *slog.Logger
}

// Scene is the explicit application context: it owns the root node and
// holds the renderer, input source, and loader that game code needs.
// Construct one in main and pass it where it is needed.
type Scene struct {
	root     *Node
	renderer Renderer
	input    Input
	loader   Loader
	logger   *slog.Logger
	store    EntityStore
	camera   *Camera
	debug    bool

	updateFunc func(dt float64) error
	frame      uint64
	counter    countingRenderer
	viewer     viewRenderer
	lastUpdate time.Duration
}

// NewScene creates a scene with a pre-created root node.
func NewScene(opts SceneOptions) *Scene {
	s := &Scene{
		root:     NewNode("root"),
		renderer: opts.Renderer,
		input:    opts.Input,
		loader:   opts.Loader,
		logger:   opts.Logger,
	}
	if s.input == nil {
		s.input = StaticInput{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Renderer returns the renderer, or nil.
func (s *Scene) Renderer() Renderer {
	return s.renderer
}

// SetRenderer replaces the renderer.
func (s *Scene) SetRenderer(r Renderer) {
	s.renderer = r
}

// Input returns the input source.
func (s *Scene) Input() Input {
	return s.input
}

// SetInput replaces the input source. Nil installs an empty StaticInput.
func (s *Scene) SetInput(in Input) {
	if in == nil {
		in = StaticInput{}
	}
	s.input = in
}

// Loader returns the resource loader, or nil.
func (s *Scene) Loader() Loader {
	return s.loader
}

// Logger returns the scene logger.
func (s *Scene) Logger() *slog.Logger {
	return s.logger
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// Camera returns the scene camera, or nil.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// SetCamera sets the camera applied to draws. Nil draws in world space.
func (s *Scene) SetCamera(c *Camera) {
	s.camera = c
}

// SetUpdateFunc sets a function called at the start of every Update, before
// the node behaviors run. An error returned from it aborts the frame and is
// returned by Update (Run stops on it).
func (s *Scene) SetUpdateFunc(fn func(dt float64) error) {
	s.updateFunc = fn
}

// SetDebugMode enables or disables debug mode. When enabled, operations on
// disposed nodes, oversized trees, and per-frame timing stats are logged
// through the scene logger.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	if enabled {
		debugLogger = s.logger
	} else {
		debugLogger = nil
	}
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last, and node warnings go to that
// scene's logger.
var globalDebug bool

// Frame returns the number of completed Update calls.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// NewSprite creates a sprite node loaded through the scene's loader and
// attaches it under parent (the root when parent is nil). The node is
// attached even when loading fails; the load error is returned.
func (s *Scene) NewSprite(name, path string, parent *Node) (*Node, *Sprite, error) {
	if parent == nil {
		parent = s.root
	}
	n, sprite, loadErr := NewSpriteNode(name, s.loader, path)
	if err := parent.AddChild(n); err != nil {
		n.Dispose()
		return nil, nil, err
	}
	return n, sprite, loadErr
}

// Update runs the update func, then the update traversal from the root
// with dt seconds (negative values are treated as zero), then advances the
// camera and forwards transforms to the entity store.
func (s *Scene) Update(dt float64) error {
	if dt < 0 {
		dt = 0
	}
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.updateFunc != nil {
		if err := s.updateFunc(dt); err != nil {
			return fmt.Errorf("arbor: update frame %d: %w", s.frame, err)
		}
	}
	s.root.Update(dt)
	if s.camera != nil {
		s.camera.update(dt)
	}
	if s.store != nil {
		s.syncEntities()
	}
	s.frame++

	if s.debug {
		s.lastUpdate = time.Since(t0)
	}
	return nil
}

// Draw brackets a draw traversal from the root with the renderer's Begin
// and End, applying the camera view when one is set. No-op without a
// renderer.
func (s *Scene) Draw() {
	if s.renderer == nil {
		return
	}
	r := s.renderer
	if s.camera != nil {
		s.viewer = viewRenderer{Renderer: r, view: s.camera.View()}
		r = &s.viewer
	}
	if !s.debug {
		r.Begin()
		s.root.Draw(r)
		r.End()
		return
	}

	t0 := time.Now()
	s.counter = countingRenderer{Renderer: r}
	s.counter.Begin()
	s.root.Draw(&s.counter)
	s.counter.End()
	s.debugLog(debugStats{
		updateTime: s.lastUpdate,
		drawTime:   time.Since(t0),
		nodeCount:  countNodes(s.root),
		drawCount:  s.counter.count,
	})
}

// syncEntities forwards the global transform of every linked node.
func (s *Scene) syncEntities() {
	s.root.Walk(func(n *Node) bool {
		if n.EntityID == 0 {
			return true
		}
		g := n.global
		t := g.Translation()
		s.store.SyncTransform(TransformEvent{
			EntityID: n.EntityID,
			NodeID:   n.ID,
			Global:   g,
			X:        t.X,
			Y:        t.Y,
			Rotation: g.Rotation(),
		})
		return true
	})
}
