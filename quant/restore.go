package quant

import "fmt"

// Reconstruct resolves every index grid slot against the palette,
// producing a 4-channel grid of the same dimensions. The lookup is
// pure; a slot at or past the palette length fails with ErrIndexRange
// rather than being clamped or wrapped, since a well-formed pair never
// contains one.
func Reconstruct(pal Palette, idx *IndexGrid) (*PixelGrid, error) {
	if len(pal) == 0 {
		return nil, fmt.Errorf("%w: empty palette", ErrIndexRange)
	}

	limit := uint32(len(pal))
	out := NewPixelGrid(idx.Width, idx.Height, 4)
	for p, slot := range idx.Idx {
		if slot >= limit {
			return nil, fmt.Errorf("%w: slot %d at pixel %d, palette has %d colors",
				ErrIndexRange, slot, p, len(pal))
		}
		copy(out.Pix[p*4:p*4+4], pal[slot][:])
	}

	return out, nil
}
