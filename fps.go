package arbor

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefreshInterval is how often, in seconds, the overlay text is redrawn.
const fpsRefreshInterval = 0.5

// fpsOverlay is the behavior behind NewFPSNode.
type fpsOverlay struct {
	tex     *Texture
	elapsed float64
}

// NewFPSNode creates a node that displays the current FPS and TPS in its
// top-left corner. The text is refreshed every ~0.5 seconds.
func NewFPSNode() *Node {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	tex := NewTexture(ebiten.NewImage(100, 32))
	tex.OriginX, tex.OriginY = 0, 0

	n := NewNode("fps_overlay")
	n.AddBehavior(&fpsOverlay{tex: tex, elapsed: fpsRefreshInterval})
	return n
}

func (o *fpsOverlay) OnUpdate(_ *Node, dt float64) {
	o.elapsed += dt
	if o.elapsed < fpsRefreshInterval || o.tex.img == nil {
		return
	}
	o.elapsed = 0

	img := o.tex.img
	img.Clear()
	// Semi-transparent background for readability
	img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (o *fpsOverlay) OnDraw(n *Node, r Renderer) {
	r.DrawTransformed(o.tex, n.Global().Flat())
}

func (o *fpsOverlay) Release() {
	o.tex.Release()
}
