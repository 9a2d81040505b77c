package arbor

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// captureDefaultLog routes slog.Default into a buffer for the duration of
// the test and enables debug mode.
func captureDefaultLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	globalDebug = true
	debugLogger = nil
	t.Cleanup(func() {
		slog.SetDefault(prev)
		globalDebug = false
	})
	return &buf
}

func TestDebugDisposedNodeEditLogged(t *testing.T) {
	buf := captureDefaultLog(t)
	n := NewNode("ghost")
	n.Dispose()
	n.SetPosition(1, 1)
	out := buf.String()
	if !strings.Contains(out, "disposed node") || !strings.Contains(out, "node=ghost") {
		t.Errorf("expected disposed warning, got: %s", out)
	}
}

func TestDebugTreeDepthWarning(t *testing.T) {
	buf := captureDefaultLog(t)
	cur := NewNode("root")
	for i := 0; i < debugMaxTreeDepth; i++ {
		n := NewNode("deep")
		mustAdd(t, cur, n)
		cur = n
	}
	if !strings.Contains(buf.String(), "tree depth exceeds threshold") {
		t.Errorf("expected depth warning, got: %s", buf.String())
	}
}

func TestDebugChildCountWarning(t *testing.T) {
	buf := captureDefaultLog(t)
	p := NewNode("wide")
	for i := 0; i <= debugMaxChildCount; i++ {
		mustAdd(t, p, NewNode("c"))
	}
	if strings.Count(buf.String(), "child count exceeds threshold") != 1 {
		t.Errorf("expected exactly one child count warning, got: %s", buf.String())
	}
}

func TestDebugChecksSilentWhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	n := NewNode("n")
	n.Dispose()
	n.SetPosition(1, 1)
	if buf.Len() != 0 {
		t.Errorf("debug off should not log: %s", buf.String())
	}
}

func TestCountNodes(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	mustAdd(t, root, a)
	mustAdd(t, a, NewNode("a1"))
	mustAdd(t, root, NewNode("b"))
	if got := countNodes(root); got != 4 {
		t.Errorf("countNodes = %d, want 4", got)
	}
}

func TestDebugNodeWarningsUseSceneLogger(t *testing.T) {
	var sceneBuf, defaultBuf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&defaultBuf, nil)))
	defer slog.SetDefault(prev)

	s := NewScene(SceneOptions{Logger: slog.New(slog.NewTextHandler(&sceneBuf, nil))})
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	n := NewNode("ghost")
	n.Dispose()
	n.Rotate(1)

	if !strings.Contains(sceneBuf.String(), "operation on disposed node") {
		t.Errorf("scene logger missing warning: %q", sceneBuf.String())
	}
	if defaultBuf.Len() != 0 {
		t.Errorf("default logger should stay quiet: %q", defaultBuf.String())
	}
}
