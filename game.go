package arbor

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// game adapts a Scene to ebiten.Game. It is the frame driver: every tick it
// passes dt = 1/TPS seconds to Scene.Update.
type game struct {
	scene    *Scene
	renderer *EbitenRenderer
	cfg      RunConfig
	overlay  *Node // screen-space, drawn after the scene without the camera
}

func (g *game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	if err := g.scene.Update(dt); err != nil {
		return err
	}
	if g.overlay != nil {
		g.overlay.Update(dt)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.ClearColor.toRGBA())
	g.renderer.SetTarget(screen)
	g.scene.Draw()
	if g.overlay != nil {
		g.renderer.Begin()
		g.overlay.Draw(g.renderer)
		g.renderer.End()
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// withDefaults fills a non-positive window size or TPS from DefaultRunConfig.
func (cfg RunConfig) withDefaults() RunConfig {
	def := DefaultRunConfig()
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	if cfg.TPS <= 0 {
		cfg.TPS = def.TPS
	}
	return cfg
}

// prepareScene installs the ebiten collaborators Run needs and returns the
// renderer to draw with.
func prepareScene(scene *Scene, cfg RunConfig) *EbitenRenderer {
	r, ok := scene.renderer.(*EbitenRenderer)
	if !ok {
		r = NewEbitenRenderer()
		scene.SetRenderer(r)
	}
	if in, static := scene.input.(StaticInput); static && len(in) == 0 && len(cfg.Keys) > 0 {
		scene.SetInput(NewEbitenInput(cfg.Keys))
	}
	if cfg.Debug {
		scene.SetDebugMode(true)
	}
	return r
}

// Run opens a window and drives scene until the window closes or an update
// returns an error. When the scene has no renderer, or a renderer other
// than *EbitenRenderer, an EbitenRenderer is installed. When the scene's
// input is an empty StaticInput (the NewScene default) and cfg.Keys is
// non-empty, an EbitenInput with cfg.Keys is installed; any other input,
// including a populated StaticInput, is kept.
func Run(scene *Scene, cfg RunConfig) error {
	cfg = cfg.withDefaults()
	r := prepareScene(scene, cfg)

	g := &game{scene: scene, renderer: r, cfg: cfg}
	if cfg.ShowFPS {
		g.overlay = NewFPSNode()
		defer g.overlay.Dispose()
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(cfg.TPS)

	scene.logger.Info("arbor: starting",
		"title", cfg.Title, "width", cfg.Width, "height", cfg.Height, "tps", cfg.TPS)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("arbor: run: %w", err)
	}
	return nil
}
