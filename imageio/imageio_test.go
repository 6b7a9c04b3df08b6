package imageio_test

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"palpack/imageio"
	"palpack/quant"
)

func TestSaveLoadPNG(t *testing.T) {
	g := quant.NewPixelGrid(3, 2, 4)
	for i := range g.Pix {
		g.Pix[i] = uint8(i * 31 % 256)
	}

	path := filepath.Join(t.TempDir(), "out.png")
	if err := imageio.Save(path, g); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := imageio.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Width != g.Width || loaded.Height != g.Height || loaded.Channels != 4 {
		t.Fatalf("unexpected grid shape: %dx%dx%d", loaded.Width, loaded.Height, loaded.Channels)
	}
	if !bytes.Equal(loaded.Pix, g.Pix) {
		t.Fatal("PNG round trip changed pixel data")
	}
}

func TestSaveRGBGrid(t *testing.T) {
	g := quant.NewPixelGrid(2, 2, 3)
	for i := range g.Pix {
		g.Pix[i] = uint8(40 * i)
	}

	path := filepath.Join(t.TempDir(), "rgb.png")
	if err := imageio.Save(path, g); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := imageio.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for y := range g.Height {
		for x := range g.Width {
			want := g.At(x, y)
			if got := loaded.At(x, y); got != want {
				t.Fatalf("pixel (%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	// Sub-images carry non-zero bounds; the grid must not.
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = uint8(i)
	}
	sub := src.SubImage(image.Rect(1, 1, 3, 3)).(*image.NRGBA)

	g := imageio.FromImage(sub)
	if g.Width != 2 || g.Height != 2 {
		t.Fatalf("expected 2x2 grid, got %dx%d", g.Width, g.Height)
	}
	want := src.NRGBAAt(1, 1)
	if got := g.At(0, 0); got != (quant.Color{want.R, want.G, want.B, want.A}) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestToImageOpaqueRGB(t *testing.T) {
	g := quant.NewPixelGrid(2, 1, 3)
	copy(g.Pix, []uint8{10, 20, 30, 40, 50, 60})

	img := imageio.ToImage(g)
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{40, 50, 60, 255}) {
		t.Fatalf("unexpected pixel: %v", got)
	}
}

func TestSaveUnsupportedFormat(t *testing.T) {
	g := quant.NewPixelGrid(1, 1, 4)
	if err := imageio.Save(filepath.Join(t.TempDir(), "out.xyz"), g); err == nil {
		t.Fatal("expected an error for an unknown extension")
	}
}