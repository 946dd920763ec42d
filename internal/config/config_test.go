package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 160
height = 90

[renderer]
presenter = "headless"

[audio]
buffer = "50ms"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Width != 160 || cfg.Window.Height != 90 {
		t.Errorf("expected 160x90, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.FPS != 60 || cfg.Window.Title != "farix" {
		t.Errorf("defaults lost: %+v", cfg.Window)
	}
	if cfg.Renderer.Presenter != "headless" || !cfg.Renderer.Lighting {
		t.Errorf("unexpected renderer config: %+v", cfg.Renderer)
	}
	if cfg.Audio.Buffer != 50*time.Millisecond {
		t.Errorf("expected 50ms buffer, got %v", cfg.Audio.Buffer)
	}
	if cfg.Scripting.Dir != "scripts" {
		t.Errorf("expected scripts dir default, got %q", cfg.Scripting.Dir)
	}
}

func TestClearARGB(t *testing.T) {
	cases := []struct {
		in   string
		want uint32
		ok   bool
	}{
		{"#87CEEB", 0xFF87CEEB, true},
		{"80112233", 0x80112233, true},
		{"#12345", 0, false},
		{"#GGGGGG", 0, false},
	}
	for _, tc := range cases {
		got, err := RendererConfig{ClearColor: tc.in}.ClearARGB()
		if (err == nil) != tc.ok {
			t.Errorf("%s: unexpected error state %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: expected %08X, got %08X", tc.in, tc.want, got)
		}
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	for _, body := range []string{
		"[renderer]\nclear_color = \"red\"\n",
		"[window]\nwidth = 0\n",
		"not toml at all = = =",
	} {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Errorf("expected error for %q", body)
		}
	}
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv("FARIX_CONFIG", "/tmp/other.toml")
	if got := Path(); got != "/tmp/other.toml" {
		t.Errorf("expected env path, got %s", got)
	}
	t.Setenv("FARIX_CONFIG", "")
	if got := Path(); got != DefaultPath {
		t.Errorf("expected default path, got %s", got)
	}
}
