package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/farixgo/engine/internal/asset"
	"github.com/farixgo/engine/internal/config"
	"github.com/farixgo/engine/internal/core/ecs"
	coresys "github.com/farixgo/engine/internal/core/system"
	"github.com/farixgo/engine/internal/input"
	"github.com/farixgo/engine/internal/present"
	"github.com/farixgo/engine/internal/render"
	"github.com/farixgo/engine/internal/scene"
	"github.com/farixgo/engine/internal/scripting"
	"github.com/farixgo/engine/internal/system"
)

type demoEnv struct {
	lib      *asset.Library
	scripts  *scripting.Registry
	systems  *coresys.Registry
	renderer *render.Renderer
	svc      scene.Services
}

func newDemoEnv(t *testing.T) *demoEnv {
	t.Helper()
	log := zap.NewNop()
	lua, err := scripting.NewEngine(filepath.Join("..", "..", "scripts"), log)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(lua.Close)

	env := &demoEnv{
		lib:      asset.NewLibrary(log),
		scripts:  scripting.NewRegistry(),
		systems:  coresys.NewRegistry(),
		renderer: render.NewRenderer(64, 36, log),
	}
	scripting.RegisterBuiltins(env.scripts)
	lua.RegisterAll(env.scripts)
	system.RegisterDefaults(env.systems)
	settings := render.DefaultSettings()
	env.svc = scene.Services{
		Log:      log,
		Renderer: env.renderer,
		Settings: &settings,
		Input:    input.NewState(),
		Assets:   env.lib,
	}
	return env
}

func TestPongDemoRuns(t *testing.T) {
	env := newDemoEnv(t)
	s := scene.NewScene("pong", env.svc)
	if err := buildPong(s, env.lib, env.scripts, 16.0/9.0); err != nil {
		t.Fatal(err)
	}
	mgr := scene.NewManager(zap.NewNop(), env.systems)
	mgr.Add(s)

	w := s.World()
	balls := w.EntitiesByName("Ball")
	if len(balls) != 1 {
		t.Fatalf("expected one ball, got %d", len(balls))
	}
	for i := 0; i < 10; i++ {
		if err := mgr.Update(1.0 / 60); err != nil {
			t.Fatal(err)
		}
	}

	pos := ecs.GetComponent[ecs.Transform](w, balls[0]).Position
	if pos.Y() <= 0 {
		t.Errorf("expected the ball to move up after its script started, got %v", pos)
	}

	bg := env.renderer.Pixel(0, env.renderer.Height()-1)
	drawn := 0
	for _, px := range env.renderer.Framebuffer() {
		if px != bg {
			drawn++
		}
	}
	if drawn == 0 {
		t.Error("expected the demo to draw something")
	}
}

func TestDemoSceneSurvivesFileRoundTrip(t *testing.T) {
	env := newDemoEnv(t)
	ser := scene.NewSerializer(zap.NewNop(), env.systems, env.scripts, env.lib)

	src := scene.NewScene("pong", env.svc)
	if err := buildPong(src, env.lib, env.scripts, 16.0/9.0); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "pong.json")
	if err := saveScene(src, ser, nil, path, zap.NewNop()); err != nil {
		t.Fatal(err)
	}

	dst := scene.NewScene("other", env.svc)
	if err := loadScene(dst, ser, nil, path, env.lib, env.scripts, 1); err != nil {
		t.Fatal(err)
	}
	if dst.Name() != "pong" {
		t.Errorf("expected saved name pong, got %q", dst.Name())
	}
	if got, want := dst.World().EntityCount(), src.World().EntityCount(); got != want {
		t.Errorf("expected %d entities, got %d", want, got)
	}
	if len(dst.World().EntitiesByTags("Paddle")) != 2 {
		t.Error("expected both paddles after reload")
	}
}

func TestLoadSceneWithoutFileOrDatabase(t *testing.T) {
	env := newDemoEnv(t)
	ser := scene.NewSerializer(zap.NewNop(), env.systems, env.scripts, env.lib)
	s := scene.NewScene("x", env.svc)
	if err := loadScene(s, ser, nil, "no-such-scene", env.lib, env.scripts, 1); err == nil {
		t.Fatal("expected an error for a missing scene with no database")
	}
}

func TestNewPresenter(t *testing.T) {
	r := render.NewRenderer(8, 8, zap.NewNop())
	in := input.NewState()
	for _, name := range []string{"", "window", "terminal", "headless"} {
		p, err := newPresenter(name, r, in, present.Options{Frames: 1}, "", zap.NewNop())
		if err != nil {
			t.Fatalf("%q: %v", name, err)
		}
		want := name
		if want == "" {
			want = "window"
		}
		if p.Name() != want {
			t.Errorf("%q: got presenter %s", name, p.Name())
		}
	}
	if _, err := newPresenter("vr", r, in, present.Options{}, "", zap.NewNop()); err == nil {
		t.Error("expected unknown presenter error")
	}
}

type destroyWatch struct {
	ecs.BaseScript
	destroyed *bool
}

func (d *destroyWatch) Name() string { return "destroyWatch" }
func (d *destroyWatch) OnDestroy()   { *d.destroyed = true }

func TestShutdownSavesThenUnloads(t *testing.T) {
	env := newDemoEnv(t)
	ser := scene.NewSerializer(zap.NewNop(), env.systems, env.scripts, env.lib)
	s := scene.NewScene("pong", env.svc)
	if err := buildPong(s, env.lib, env.scripts, 16.0/9.0); err != nil {
		t.Fatal(err)
	}
	var destroyed bool
	s.CreateObject().AddScript(&destroyWatch{destroyed: &destroyed})

	path := filepath.Join(t.TempDir(), "exit.json")
	if err := shutdown(s, ser, nil, path, zap.NewNop()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected the scene saved before unload: %v", err)
	}
	if !destroyed {
		t.Error("expected OnDestroy at shutdown")
	}
	if s.World().EntityCount() != 0 {
		t.Errorf("expected an empty world, got %d entities", s.World().EntityCount())
	}
}

func TestRenderSettingsRejectsBadClearColor(t *testing.T) {
	cfg := config.Default().Renderer
	cfg.ClearColor = "#nothex"
	if _, err := renderSettings(cfg); err == nil {
		t.Error("expected an error for a malformed clear color")
	}

	cfg.ClearColor = "#102030"
	cfg.LightDir = [3]float32{0, -2, 0}
	got, err := renderSettings(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got.ClearColor != 0xFF102030 {
		t.Errorf("expected 0xFF102030, got %#08x", got.ClearColor)
	}
	if got.LightDir != (mgl32.Vec3{0, -1, 0}) {
		t.Errorf("expected normalized light dir, got %v", got.LightDir)
	}
}
