package arbor

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
)

type recordingStore struct {
	events []TransformEvent
}

func (s *recordingStore) SyncTransform(e TransformEvent) {
	s.events = append(s.events, e)
}

func TestNewSceneDefaults(t *testing.T) {
	s := NewScene(SceneOptions{})
	if s.Root() == nil {
		t.Fatal("root should not be nil")
	}
	if s.Root().Name != "root" {
		t.Errorf("root.Name = %q, want %q", s.Root().Name, "root")
	}
	if s.Input() == nil {
		t.Error("input should default to a StaticInput")
	}
	if s.Input().IsKeyDown("anything") {
		t.Error("default input should report every key up")
	}
	if s.Logger() == nil {
		t.Error("logger should default to slog.Default()")
	}
	s.Draw() // no renderer: should not panic
}

func TestSceneSetDebugMode(t *testing.T) {
	s := NewScene(SceneOptions{})
	s.SetDebugMode(true)
	if !s.debug || !globalDebug {
		t.Error("debug should be true")
	}
	s.SetDebugMode(false)
	if s.debug || globalDebug {
		t.Error("debug should be false")
	}
}

func TestSceneUpdateRunsUpdateFuncThenBehaviors(t *testing.T) {
	in := StaticInput{}
	s := NewScene(SceneOptions{Input: in})
	var log []string

	s.SetUpdateFunc(func(dt float64) error {
		log = append(log, "func")
		return nil
	})
	n := NewNode("n")
	n.AddBehavior(&traceBehavior{log: &log})
	mustAdd(t, s.Root(), n)

	if err := s.Update(0.016); err != nil {
		t.Fatal(err)
	}
	assertLog(t, log, []string{"func", "update:n"})
	if s.Frame() != 1 {
		t.Errorf("Frame = %d, want 1", s.Frame())
	}
}

func TestSceneUpdateFuncErrorStopsFrame(t *testing.T) {
	s := NewScene(SceneOptions{})
	boom := errors.New("boom")
	s.SetUpdateFunc(func(float64) error { return boom })
	calls := 0
	s.Root().AddBehavior(OnUpdate(func(*Node, float64) { calls++ }))

	err := s.Update(1)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if calls != 0 {
		t.Error("behaviors should not run after the update func fails")
	}
	if s.Frame() != 0 {
		t.Errorf("Frame = %d, want 0", s.Frame())
	}
}

func TestSceneDrawBrackets(t *testing.T) {
	r := &recordingRenderer{}
	s := NewScene(SceneOptions{Renderer: r})
	d := &fakeDrawable{}
	n := NewNode("sprite")
	n.AddBehavior(NewSpriteFromDrawable(d))
	mustAdd(t, s.Root(), n)

	s.Draw()

	if r.begins != 1 || r.ends != 1 {
		t.Errorf("begin/end = %d/%d, want 1/1", r.begins, r.ends)
	}
	if len(r.calls) != 1 || r.calls[0].d != d {
		t.Errorf("draw calls = %v, want one call with the sprite drawable", r.calls)
	}
}

func TestSceneDebugDrawLogsStats(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	r := &recordingRenderer{}
	s := NewScene(SceneOptions{Renderer: r, Logger: logger})
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	n := NewNode("sprite")
	n.AddBehavior(NewSpriteFromDrawable(&fakeDrawable{}))
	mustAdd(t, s.Root(), n)

	if err := s.Update(0.016); err != nil {
		t.Fatal(err)
	}
	s.Draw()

	if len(r.calls) != 1 || r.begins != 1 || r.ends != 1 {
		t.Errorf("debug draw should reach the real renderer: calls=%d begins=%d ends=%d",
			len(r.calls), r.begins, r.ends)
	}
	out := buf.String()
	if !strings.Contains(out, "draws=1") || !strings.Contains(out, "nodes=2") {
		t.Errorf("debug log missing stats: %s", out)
	}
}

func TestSceneSyncsLinkedEntities(t *testing.T) {
	s := NewScene(SceneOptions{})
	store := &recordingStore{}
	s.SetEntityStore(store)

	tank := NewNode("tank")
	tank.SetPosition(100, 50)
	tank.EntityID = 7
	turret := NewNode("turret")
	turret.SetPosition(0, 10)
	turret.Rotate(math.Pi / 2)
	turret.EntityID = 8
	unlinked := NewNode("unlinked")
	mustAdd(t, s.Root(), tank)
	mustAdd(t, tank, turret)
	mustAdd(t, tank, unlinked)

	if err := s.Update(0.016); err != nil {
		t.Fatal(err)
	}

	if len(store.events) != 2 {
		t.Fatalf("events = %d, want 2", len(store.events))
	}
	e := store.events[1]
	if e.EntityID != 8 || e.NodeID != turret.ID {
		t.Errorf("event = %+v, want turret", e)
	}
	assertNear(t, "x", e.X, 100)
	assertNear(t, "y", e.Y, 60)
	assertNear(t, "rotation", e.Rotation, math.Pi/2)
	assertAffine(t, "global", e.Global, turret.Global())
}

func TestSceneNewSprite(t *testing.T) {
	l := newMapLoader()
	s := NewScene(SceneOptions{Loader: l})

	tank, sprite, err := s.NewSprite("tank", "tank.png", nil)
	if err != nil {
		t.Fatal(err)
	}
	if tank.Parent() != s.Root() || sprite.Drawable() == nil {
		t.Error("sprite node should be attached to the root with a drawable")
	}

	turret, _, err := s.NewSprite("turret", "missing.png", tank)
	if !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("err = %v, want ErrResourceNotFound", err)
	}
	if turret == nil || turret.Parent() != tank {
		t.Error("node should be attached even when loading fails")
	}
}

func TestSceneNewSpriteWithoutLoader(t *testing.T) {
	s := NewScene(SceneOptions{})
	n, _, err := s.NewSprite("x", "x.png", nil)
	if !errors.Is(err, ErrNoLoader) {
		t.Fatalf("err = %v, want ErrNoLoader", err)
	}
	if n == nil {
		t.Error("node should still be created")
	}
}

func TestSceneSetInputNil(t *testing.T) {
	s := NewScene(SceneOptions{})
	s.SetInput(nil)
	if s.Input() == nil {
		t.Error("SetInput(nil) should install an empty StaticInput")
	}
}
