// Package arbor is a small 2D scene graph for [Ebitengine].
//
// Arbor keeps a tree of [Node] values, each holding a local affine
// transform relative to its parent and a cached global transform relative
// to the world. Editing a node's local transform, or moving it to a new
// parent, recomputes the globals of that node and its whole subtree before
// the call returns, so [Node.Global] is always current.
//
// # Quick start
//
// [Run] opens a window and drives the scene:
//
//	scene := arbor.NewScene(arbor.SceneOptions{
//		Loader: arbor.NewFileLoader(os.DirFS("assets")),
//	})
//	tank, _, err := scene.NewSprite("tank", "tank.png", nil)
//	// ...
//	scene.SetUpdateFunc(func(dt float64) error {
//		tank.Rotate(dt)
//		return nil
//	})
//	arbor.Run(scene, arbor.DefaultRunConfig())
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] with an [EbitenRenderer] pointed at the
// screen image.
//
// # Transforms
//
// [Affine2D] is a 3x3 homogeneous matrix stored column-major and applied to
// column vectors. Compose(a, b) applies b first, then a, and a node's
// global is Compose(parent.Global(), node.Local()).
//
// Translate moves a node in its parent's space. Rotate and Scale act about
// the node's own origin and keep its position. SetPosition, SetRotation and
// SetScale replace one part of the local transform and keep the rest.
//
// [Node.Forward] is the local Y axis and [Node.Right] the local X axis,
// both expressed in the parent's space.
//
// # Behaviors
//
// A [Behavior] attached to a node receives OnUpdate during [Node.Update]
// and OnDraw during [Node.Draw]. Both traversals are pre-order: a node runs
// before its children, and siblings run in insertion order. [Sprite] is
// the built-in drawing behavior; [OnUpdate] and [OnDraw] adapt plain
// functions.
//
// # Lifetime
//
// Nodes are ordinary Go values. A parent owns its children list, while the
// back pointer from child to parent does not keep the parent alive.
// [Node.Dispose] detaches a node, orphans its children, and releases any
// behavior implementing [Releaser]. [Node.DisposeTree] disposes a whole
// subtree.
//
// # Errors
//
// Tree edits that would break the hierarchy return a wrapped sentinel such
// as [ErrAlreadyParented] or [ErrCycle] and leave the tree unchanged.
// Resource failures wrap [ErrResourceNotFound] or [ErrResourceInvalid].
// Test with [errors.Is].
//
// # Debug mode
//
// [Scene.SetDebugMode] logs per-frame timing and draw counts through the
// scene's [log/slog] logger, and warns about disposed-node edits, very deep
// trees, and very wide nodes.
//
// [Ebitengine]: https://ebitengine.org
package arbor
