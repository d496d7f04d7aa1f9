package commands

import (
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/agiangrant/golden"
	"github.com/agiangrant/golden/retained"
)

var scenes = map[string]golden.Build{
	"center":    centerScene,
	"container": containerScene,
	"start":     startScene,
	"flow":      flowScene,
}

// SceneNames returns the scene names in sorted order.
func SceneNames() []string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Scene returns the builder for a named scene.
func Scene(name string) (golden.Build, error) {
	build, ok := scenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (have %s)", name, strings.Join(SceneNames(), ", "))
	}
	return build, nil
}

// unit scales scene geometry: one terminal cell, or a few pixels on a
// canvas.
func unit(s golden.Stage) int {
	w, h := s.Index.Size()
	return max(1, min(w/80, h/24))
}

// centerScene keeps a button centered in the window across resizes.
func centerScene(s golden.Stage) error {
	ix := s.Index
	u := unit(s)
	btn, err := retained.NewButton("Hello", 0, 0, 18*u, 3*u, retained.WithName("hello"))
	if err != nil {
		return err
	}
	center, err := retained.NewCenter(btn.Widget(), true, 0, 0, 0, 0, retained.WithName("center"))
	if err != nil {
		return err
	}
	clicks := 0
	btn.OnClick(func(b *retained.Button) {
		clicks++
		b.SetLabel(fmt.Sprintf("Clicked %d", clicks))
	})
	ix.Add(center)
	return nil
}

// containerScene places a container in the bottom right quarter. Its
// button is clipped to the container; a second button sits on the window.
func containerScene(s golden.Stage) error {
	ix := s.Index
	u := unit(s)
	w, h := ix.Size()
	box, err := retained.NewContainer(w/2, h/2, w/2, h/2, nil, retained.WithName("box"))
	if err != nil {
		return err
	}
	inner, err := retained.NewButton("Inside", u, u, 48*u, 4*u, retained.WithName("inside"))
	if err != nil {
		return err
	}
	outer, err := retained.NewButton("Outside", u, u, 18*u, 4*u, retained.WithName("outside"))
	if err != nil {
		return err
	}
	box.Container().Add(inner.Widget())
	box.On(retained.EventResize, func(b *retained.Widget, e retained.Event) {
		re := e.(*retained.ResizeEvent)
		b.SetPosition(re.Width/2, re.Height/2)
		_ = b.SetSize(re.Width/2, re.Height/2)
	})
	ix.Add(box, outer.Widget())
	return nil
}

// startScene glides its button somewhere random on every click.
func startScene(s golden.Stage) error {
	ix := s.Index
	u := unit(s)
	w, h := ix.Size()
	bw, bh := 15*u, 3*u
	btn, err := retained.NewButton("Hello", (w-bw)/2, (h-bh)/2, bw, bh, retained.WithName("hello"))
	if err != nil {
		return err
	}
	var glide *retained.Animation
	btn.OnClick(func(b *retained.Button) {
		if glide != nil {
			glide.Cancel()
		}
		w, h := ix.Size()
		glide = b.Widget().Animate(s.Animations).
			Duration(400 * time.Millisecond).
			Easing(retained.EaseOutBack).
			Position(rand.IntN(max(1, w-bw)), rand.IntN(max(1, h-bh)))
	})
	ix.Add(btn.Widget())
	return nil
}

// flowScene wraps a row of buttons and a sprite inside a padded container.
func flowScene(s golden.Stage) error {
	ix := s.Index
	u := unit(s)
	w, h := ix.Size()
	margin, err := retained.NewSpace(u, 2*u)
	if err != nil {
		return err
	}
	box, err := retained.NewContainer(0, 0, w, h, retained.FlowLayout{Margin: margin}, retained.WithName("flow"))
	if err != nil {
		return err
	}
	for i := range 6 {
		btn, err := retained.NewButton(fmt.Sprintf("Item %d", i+1), 0, 0, 12*u, 3*u)
		if err != nil {
			return err
		}
		if i == 5 {
			btn.Widget().SetEnabled(false)
		}
		box.Container().Add(btn.Widget())
	}
	sprite, err := retained.NewSprite(gradient(8, 8), 0, 0, 12*u, 6*u, retained.WithName("gradient"))
	if err != nil {
		return err
	}
	box.Container().Add(sprite.Widget())
	box.On(retained.EventResize, func(b *retained.Widget, e retained.Event) {
		re := e.(*retained.ResizeEvent)
		_ = b.SetSize(re.Width, re.Height)
	})
	ix.Add(box)
	return nil
}

// gradient is a small image whose sampling makes the render filter visible.
func gradient(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{
				R: uint8(255 * x / max(1, w-1)),
				G: uint8(255 * y / max(1, h-1)),
				B: 0x80,
				A: 0xFF,
			})
		}
	}
	return img
}
