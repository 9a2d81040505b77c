package arbor

import (
	"log/slog"
	"time"
)

// debugStats holds per-frame timing and draw metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	nodeCount  int
	drawCount  int
}

// debugLog logs the timing and draw stats of the last frame.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.logger.Info("arbor frame",
		"frame", s.frame,
		"update", stats.updateTime,
		"draw", stats.drawTime,
		"nodes", stats.nodeCount,
		"draws", stats.drawCount)
}

// countingRenderer wraps a Renderer and counts submissions. Used in debug
// mode only.
type countingRenderer struct {
	Renderer
	count int
}

func (c *countingRenderer) DrawTransformed(d Drawable, m [9]float32) {
	c.count++
	c.Renderer.DrawTransformed(d, m)
}

// countNodes returns the size of the subtree rooted at n.
func countNodes(n *Node) int {
	count := 0
	n.Walk(func(*Node) bool {
		count++
		return true
	})
	return count
}

// debugLogger receives node warnings. SetDebugMode points it at the scene
// logger; nil falls back to slog.Default().
var debugLogger *slog.Logger

func nodeLogger() *slog.Logger {
	if debugLogger != nil {
		return debugLogger
	}
	return slog.Default()
}

// debugDisposed logs an operation attempted on a disposed node.
func debugDisposed(n *Node, op string) {
	nodeLogger().Warn("arbor: operation on disposed node", "op", op, "node", n.Name)
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		nodeLogger().Warn("arbor: tree depth exceeds threshold",
			"depth", depth, "max", debugMaxTreeDepth, "node", n.Name)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		nodeLogger().Warn("arbor: child count exceeds threshold",
			"node", n.Name, "children", len(n.children), "max", debugMaxChildCount)
	}
}
