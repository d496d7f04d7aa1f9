package commands

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/agiangrant/golden"
	"github.com/agiangrant/golden/retained"
)

func TestScenesRender(t *testing.T) {
	cfg := golden.DefaultConfig()
	cfg.Render.Width, cfg.Render.Height = 320, 240
	for _, name := range SceneNames() {
		t.Run(name, func(t *testing.T) {
			build, err := Scene(name)
			if err != nil {
				t.Fatalf("Scene: %v", err)
			}
			var buf bytes.Buffer
			if err := golden.RenderPNG(cfg, build, &buf); err != nil {
				t.Fatalf("RenderPNG: %v", err)
			}
			if _, err := png.Decode(&buf); err != nil {
				t.Errorf("png.Decode: %v", err)
			}
		})
	}
}

func TestUnknownScene(t *testing.T) {
	if _, err := Scene("nope"); err == nil {
		t.Error("Scene(nope) succeeded, want error")
	}
}

func TestContainerSceneFollowsResize(t *testing.T) {
	ix, err := retained.NewSpatialIndex(nil)
	if err != nil {
		t.Fatalf("NewSpatialIndex: %v", err)
	}
	ix.Resize(80, 24)
	if err := containerScene(golden.Stage{Index: ix, Animations: retained.NewAnimationRegistry()}); err != nil {
		t.Fatalf("containerScene: %v", err)
	}
	ix.Resize(100, 40)
	box := ix.Widgets()[0]
	if x, y := box.Position(); x != 50 || y != 20 {
		t.Errorf("box position = (%d, %d), want (50, 20)", x, y)
	}
	if w, h := box.Size(); w != 50 || h != 20 {
		t.Errorf("box size = %dx%d, want 50x20", w, h)
	}
}

func TestInitWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golden.toml")
	if err := Init([]string{"-config", path}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if err := Init([]string{"-config", path}); err == nil {
		t.Error("second Init succeeded without --force")
	}
	if err := Init([]string{"-config", path, "-force"}); err != nil {
		t.Errorf("Init --force: %v", err)
	}
	cfg, err := golden.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != golden.DefaultConfig() {
		t.Errorf("written config = %+v, want defaults", cfg)
	}
}

func TestStartSceneGlides(t *testing.T) {
	ix, err := retained.NewSpatialIndex(nil)
	if err != nil {
		t.Fatalf("NewSpatialIndex: %v", err)
	}
	ix.Resize(80, 24)
	anims := retained.NewAnimationRegistry()
	if err := startScene(golden.Stage{Index: ix, Animations: anims}); err != nil {
		t.Fatalf("startScene: %v", err)
	}
	btn := ix.Widgets()[0]
	cx, cy := btn.X()+1, btn.Y()+1
	ix.OnMousePress(cx, cy, retained.MouseLeft, 0)
	ix.OnMouseRelease(cx, cy, retained.MouseLeft, 0)
	if anims.Count() != 1 {
		t.Fatalf("animations after click = %d, want 1", anims.Count())
	}
	anims.Tick(time.Now().Add(time.Second))
	if anims.HasActive() {
		t.Error("glide still active after its duration")
	}
	if x, y := btn.Position(); x < 0 || y < 0 || x > 80-btn.Width() || y > 24-btn.Height() {
		t.Errorf("button at (%d, %d) left the window", x, y)
	}
}
