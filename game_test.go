package arbor

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestPrepareSceneInstallsEbitenInputForDefaultInput(t *testing.T) {
	s := NewScene(SceneOptions{})
	cfg := DefaultRunConfig()
	cfg.Keys = KeyBindings{"forward": {ebiten.KeyW}}

	r := prepareScene(s, cfg)

	if r == nil || s.Renderer() != r {
		t.Error("an EbitenRenderer should be installed")
	}
	in, ok := s.Input().(*EbitenInput)
	if !ok {
		t.Fatalf("input = %T, want *EbitenInput", s.Input())
	}
	if got := in.Bindings("forward"); len(got) != 1 || got[0] != ebiten.KeyW {
		t.Errorf("Bindings(forward) = %v, want [W]", got)
	}
}

func TestPrepareSceneKeepsPopulatedStaticInput(t *testing.T) {
	scripted := StaticInput{}
	scripted.Press("forward")
	s := NewScene(SceneOptions{Input: scripted})
	cfg := DefaultRunConfig()
	cfg.Keys = KeyBindings{"forward": {ebiten.KeyW}}

	prepareScene(s, cfg)

	if _, ok := s.Input().(StaticInput); !ok {
		t.Fatalf("input = %T, want the caller's StaticInput", s.Input())
	}
	if !s.Input().IsKeyDown("forward") {
		t.Error("scripted key state should survive")
	}
}

func TestPrepareSceneWithoutKeysKeepsInput(t *testing.T) {
	s := NewScene(SceneOptions{})
	prepareScene(s, DefaultRunConfig())
	if _, ok := s.Input().(StaticInput); !ok {
		t.Errorf("input = %T, want StaticInput", s.Input())
	}
}

func TestPrepareSceneKeepsEbitenRenderer(t *testing.T) {
	own := NewEbitenRenderer()
	s := NewScene(SceneOptions{Renderer: own})
	if r := prepareScene(s, DefaultRunConfig()); r != own {
		t.Error("an existing EbitenRenderer should be reused")
	}
}

func TestPrepareSceneReplacesForeignRenderer(t *testing.T) {
	s := NewScene(SceneOptions{Renderer: &recordingRenderer{}})
	r := prepareScene(s, DefaultRunConfig())
	if s.Renderer() != r {
		t.Error("a non-ebiten renderer should be replaced")
	}
}

func TestPrepareSceneDebug(t *testing.T) {
	s := NewScene(SceneOptions{})
	cfg := DefaultRunConfig()
	cfg.Debug = true
	prepareScene(s, cfg)
	defer s.SetDebugMode(false)
	if !s.debug {
		t.Error("cfg.Debug should enable scene debug mode")
	}
}

func TestRunConfigWithDefaults(t *testing.T) {
	cfg := RunConfig{Width: -1, Height: 400}.withDefaults()
	def := DefaultRunConfig()
	if cfg.Width != def.Width || cfg.Height != def.Height || cfg.TPS != def.TPS {
		t.Errorf("withDefaults = %dx%d@%d, want %dx%d@%d",
			cfg.Width, cfg.Height, cfg.TPS, def.Width, def.Height, def.TPS)
	}

	cfg = RunConfig{Width: 320, Height: 240, TPS: 30}.withDefaults()
	if cfg.Width != 320 || cfg.Height != 240 || cfg.TPS != 30 {
		t.Errorf("withDefaults changed explicit values: %+v", cfg)
	}
}
