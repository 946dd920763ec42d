package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/farixgo/engine/internal/asset"
	"github.com/farixgo/engine/internal/audio"
	"github.com/farixgo/engine/internal/config"
	coresys "github.com/farixgo/engine/internal/core/system"
	"github.com/farixgo/engine/internal/input"
	"github.com/farixgo/engine/internal/persist"
	"github.com/farixgo/engine/internal/present"
	"github.com/farixgo/engine/internal/render"
	"github.com/farixgo/engine/internal/scene"
	"github.com/farixgo/engine/internal/scripting"
	"github.com/farixgo/engine/internal/system"
)

type flags struct {
	scene     string
	frames    int
	snapshot  string
	profile   string
	presenter string
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.scene, "scene", "", "scene JSON file, or a scene name stored in the database")
	flag.IntVar(&f.frames, "frames", 0, "stop after this many frames (0 = until quit)")
	flag.StringVar(&f.snapshot, "snapshot", "", "write the last frame to this PNG (headless)")
	flag.StringVar(&f.profile, "profile", "", "cpu or mem profile written to the working directory")
	flag.StringVar(&f.presenter, "presenter", "", "window, terminal or headless (overrides config)")
	flag.Parse()
	return f
}

func main() {
	if err := run(parseFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(title string, w, h int) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m               farix  v0.1.0               \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m       software-rendered ECS engine        \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mgame:\033[0m %s \033[90m(%dx%d)\033[0m\n\n", title, w, h)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Engine startup ────────────────────────────────────────────────

func run(f flags) error {
	// 1. Load config
	cfgPath := config.Path()
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if f.presenter != "" {
		cfg.Renderer.Presenter = f.presenter
	}
	if f.scene != "" {
		cfg.Scene.Path = f.scene
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	switch f.profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", f.profile)
	}

	printBanner(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)

	// 3. Assets
	printSection("assets")
	lib := asset.NewLibrary(log)
	if cfg.Assets.Manifest != "" {
		man, err := asset.LoadManifest(cfg.Assets.Manifest)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Warn("asset manifest missing", zap.String("path", cfg.Assets.Manifest))
		case err != nil:
			return fmt.Errorf("assets: %w", err)
		default:
			printStat("manifest assets", lib.LoadManifest(man))
		}
	}

	// 4. Optional database
	var scenes *persist.SceneRepo
	if cfg.Database.Enabled {
		printSection("database")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		version, err := db.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK(fmt.Sprintf("schema at version %d", version))
		scenes = persist.NewSceneRepo(db)
	}
	fmt.Println()

	// 5. Scripts and systems
	printSection("scripting")
	lua, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer lua.Close()
	scripts := scripting.NewRegistry()
	scripting.RegisterBuiltins(scripts)
	lua.RegisterAll(scripts)
	printStat("lua scripts", len(lua.Scripts()))
	printStat("registered scripts", len(scripts.Names()))

	systems := coresys.NewRegistry()
	system.RegisterDefaults(systems)
	printStat("systems", len(systems.Names()))
	fmt.Println()

	// 6. Engine services
	settings, err := renderSettings(cfg.Renderer)
	if err != nil {
		return err
	}
	renderer := render.NewRenderer(cfg.Window.Width, cfg.Window.Height, log)
	in := input.NewState()

	var player *audio.Player
	if cfg.Audio.Enabled {
		player = audio.NewPlayer(log, cfg.Audio.SampleRate)
		if err := player.Initialize(cfg.Audio.Buffer); err != nil {
			log.Warn("audio disabled", zap.Error(err))
			player = nil
		} else {
			defer player.Close()
		}
	}

	svc := scene.Services{
		Log:      log,
		Renderer: renderer,
		Settings: &settings,
		Input:    in,
		Audio:    player,
		Assets:   lib,
	}

	// 7. Scene
	printSection("scene")
	ser := scene.NewSerializer(log, systems, scripts, lib)
	s := scene.NewScene(cfg.Scene.Name, svc)
	aspect := float32(cfg.Window.Width) / float32(cfg.Window.Height)
	if err := loadScene(s, ser, scenes, cfg.Scene.Path, lib, scripts, aspect); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	mgr := scene.NewManager(log, systems)
	mgr.Add(s)
	if _, err := mgr.Switch(s.Name()); err != nil {
		return err
	}
	printStat("entities", s.World().EntityCount())
	printOK("scene " + s.Name() + " loaded")
	fmt.Println()

	// 8. Presenter
	opts := present.Options{
		Title:  cfg.Window.Title,
		Scale:  cfg.Window.Scale,
		FPS:    cfg.Window.FPS,
		Frames: f.frames,
	}
	p, err := newPresenter(cfg.Renderer.Presenter, renderer, in, opts, f.snapshot, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printReady(fmt.Sprintf("running %s presenter at %d fps", p.Name(), opts.FPS))
	fmt.Println()

	step := func(dt float32) error {
		if in.Pressed(input.KeyEscape) {
			return present.ErrQuit
		}
		return mgr.Update(dt)
	}
	if err := p.Run(ctx, step); err != nil {
		return fmt.Errorf("%s presenter: %w", p.Name(), err)
	}
	log.Info("engine stopped", zap.String("scene", mgr.Current().Name()))

	return shutdown(mgr.Current(), ser, scenes, cfg.Scene.SaveOnExit, log)
}

// renderSettings maps the [renderer] section onto the render system's
// settings.
func renderSettings(cfg config.RendererConfig) (render.Settings, error) {
	settings := render.DefaultSettings()
	clearColor, err := cfg.ClearARGB()
	if err != nil {
		return settings, fmt.Errorf("renderer: %w", err)
	}
	settings.ClearColor = clearColor
	settings.Lighting = cfg.Lighting
	if d := mgl32.Vec3(cfg.LightDir); d.Len() > 0 {
		settings.LightDir = d.Normalize()
	}
	return settings, nil
}

// shutdown saves the final scene state and then unloads the scene so its
// scripts get OnDestroy. The scene is unloaded even when saving fails.
func shutdown(s *scene.Scene, ser *scene.Serializer, repo *persist.SceneRepo, path string, log *zap.Logger) error {
	err := saveScene(s, ser, repo, path, log)
	s.Unload()
	return err
}

// loadScene fills s from a JSON file, from the database when src is not a
// file, or with the built-in demo when src is empty.
func loadScene(s *scene.Scene, ser *scene.Serializer, repo *persist.SceneRepo, src string,
	lib *asset.Library, scripts *scripting.Registry, aspect float32) error {
	if src == "" {
		return buildPong(s, lib, scripts, aspect)
	}
	if _, err := os.Stat(src); err == nil {
		return ser.LoadSceneFile(s, src)
	}
	if repo == nil {
		return fmt.Errorf("scene %q: no such file and database disabled", src)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	row, err := repo.Load(ctx, src)
	if err != nil {
		return err
	}
	return ser.LoadScene(s, row.Document)
}

// saveScene writes the scene to path when set and, with a database, stores a
// new revision under the scene's name.
func saveScene(s *scene.Scene, ser *scene.Serializer, repo *persist.SceneRepo, path string, log *zap.Logger) error {
	if path == "" && repo == nil {
		return nil
	}
	doc, err := ser.SaveScene(s)
	if err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	if path != "" {
		if err := os.WriteFile(path, doc, 0o644); err != nil {
			return fmt.Errorf("save scene: %w", err)
		}
		log.Info("scene saved", zap.String("path", path))
	}
	if repo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		rev, err := repo.Save(ctx, s.Name(), doc)
		if err != nil {
			return fmt.Errorf("store scene: %w", err)
		}
		log.Info("scene stored", zap.String("scene", s.Name()), zap.Int("revision", rev))
	}
	return nil
}

func newPresenter(name string, r *render.Renderer, in *input.State, opts present.Options, snapshot string, log *zap.Logger) (present.Presenter, error) {
	switch name {
	case "window", "":
		return present.NewWindow(r, in, opts, log), nil
	case "terminal":
		return present.NewTerminal(nil, r, in, opts, log), nil
	case "headless":
		h := present.NewHeadless(r, in, opts, log)
		h.Snapshot = snapshot
		h.Realtime = opts.Frames == 0
		return h, nil
	default:
		return nil, fmt.Errorf("unknown presenter %q", name)
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
