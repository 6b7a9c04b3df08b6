package quant_test

import (
	"bytes"
	"errors"
	"testing"

	"palpack/quant"
)

func TestRoundTripLossless(t *testing.T) {
	g := gradientGrid(24, 24, 4)

	res, err := quant.Compress(g, 1)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}

	out, err := quant.Reconstruct(res.Palette, res.Indices)
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	if !bytes.Equal(out.Pix, g.Pix) {
		t.Fatal("step 1 round trip is not the identity")
	}
}

func TestRoundTripLossy(t *testing.T) {
	g := gradientGrid(16, 16, 4)

	res, err := quant.Compress(g, 10)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}

	out, err := quant.Reconstruct(res.Palette, res.Indices)
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	for i, v := range out.Pix {
		want := g.Pix[i] / 10 * 10
		if v != want {
			t.Fatalf("pixel byte %d: expected %d, got %d", i, want, v)
		}
		if g.Pix[i]-v >= 10 {
			t.Fatalf("pixel byte %d: error %d not below tolerance", i, g.Pix[i]-v)
		}
	}
}

func TestReconstructAlwaysRGBA(t *testing.T) {
	g := gradientGrid(8, 4, 3)

	res, err := quant.Compress(g, 10)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}

	out, err := quant.Reconstruct(res.Palette, res.Indices)
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}
	if out.Channels != 4 {
		t.Fatalf("expected 4-channel output, got %d", out.Channels)
	}
	if out.Width != g.Width || out.Height != g.Height {
		t.Fatalf("expected %dx%d output, got %dx%d", g.Width, g.Height, out.Width, out.Height)
	}
	if len(out.Pix) != g.Width*g.Height*4 {
		t.Fatalf("unexpected output buffer length: %d", len(out.Pix))
	}
}

func TestReconstructIndexOutOfRange(t *testing.T) {
	pal := quant.Palette{
		{0, 0, 0, 255},
		{10, 10, 10, 255},
	}

	// One slot past the last valid index, as a corrupted archive would hold.
	idx := quant.NewIndexGrid(2, 1, quant.Depth8)
	idx.Idx[0] = 1
	idx.Idx[1] = uint32(len(pal))

	if _, err := quant.Reconstruct(pal, idx); !errors.Is(err, quant.ErrIndexRange) {
		t.Fatalf("expected ErrIndexRange, got %v", err)
	}
}

func TestReconstructEmptyPalette(t *testing.T) {
	idx := quant.NewIndexGrid(1, 1, quant.Depth8)
	if _, err := quant.Reconstruct(quant.Palette{}, idx); !errors.Is(err, quant.ErrIndexRange) {
		t.Fatalf("expected ErrIndexRange, got %v", err)
	}
}

func TestReconstructLookup(t *testing.T) {
	pal := quant.Palette{
		{0, 0, 0, 255},
		{100, 150, 200, 250},
	}
	idx := quant.NewIndexGrid(2, 2, quant.Depth8)
	idx.Idx = []uint32{1, 0, 0, 1}

	out, err := quant.Reconstruct(pal, idx)
	if err != nil {
		t.Fatalf("reconstruct: %v", err)
	}

	want := []quant.Color{pal[1], pal[0], pal[0], pal[1]}
	for p, w := range want {
		if got := out.At(p%2, p/2); got != w {
			t.Fatalf("pixel %d: expected %v, got %v", p, w, got)
		}
	}
}
