package quant

// Color is an RGBA tuple, one byte per channel.
type Color [4]uint8

// Compare orders colors lexicographically over (R, G, B, A).
func (c Color) Compare(o Color) int {
	for i := range c {
		if c[i] != o[i] {
			if c[i] < o[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Palette is an ordered list of distinct colors. Compress produces
// palettes in ascending lexicographic order with no duplicates.
type Palette []Color
