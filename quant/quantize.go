// Package quant reduces an RGBA image to a palette of distinct colors
// plus a per-pixel index map, and rebuilds the image from a stored pair.
package quant

import (
	"fmt"
	"slices"
)

// Result pairs a palette with the index grid referencing it. The two are
// produced together and only meaningful together; the image dimensions
// are those of Indices.
type Result struct {
	Palette Palette
	Indices *IndexGrid
}

// Compress buckets every channel value down to a multiple of step,
// deduplicates the bucketed pixels into a palette sorted ascending by
// (R, G, B, A), and records each pixel's palette slot in an index grid
// tagged with the smallest width that holds all slots.
//
// RGB input gains a constant 255 alpha after bucketing, so the
// synthetic channel is never snapped below 255. A native alpha channel
// is bucketed like any other. Output is deterministic: identical input
// always yields an identical palette and index grid.
func Compress(g *PixelGrid, step int) (*Result, error) {
	if step < 1 || step > 255 {
		return nil, fmt.Errorf("%w: %d, want 1..255", ErrInvalidStep, step)
	}
	if err := g.validate(); err != nil {
		return nil, err
	}

	// v/s*s floors v to a bucket boundary; for uint8 input the result
	// never leaves [0, 255], so no clamp is needed.
	s := uint8(step)
	n := g.Width * g.Height
	bucketed := make([]Color, n)
	for p := range n {
		i := p * g.Channels
		c := Color{0, 0, 0, 0xFF}
		for ch := range g.Channels {
			c[ch] = g.Pix[i+ch] / s * s
		}
		bucketed[p] = c
	}

	seen := make(map[Color]struct{})
	for _, c := range bucketed {
		seen[c] = struct{}{}
	}

	pal := make(Palette, 0, len(seen))
	for c := range seen {
		pal = append(pal, c)
	}
	slices.SortFunc(pal, Color.Compare)

	slot := make(map[Color]uint32, len(pal))
	for i, c := range pal {
		slot[c] = uint32(i)
	}

	idx := NewIndexGrid(g.Width, g.Height, DepthFor(len(pal)))
	for p, c := range bucketed {
		idx.Idx[p] = slot[c]
	}

	return &Result{Palette: pal, Indices: idx}, nil
}
