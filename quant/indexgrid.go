package quant

// Depth is the storage width of an index grid element. The width is a
// storage-size decision only; in memory indices are always uint32.
type Depth uint8

const (
	Depth8  Depth = 1
	Depth16 Depth = 2
	Depth32 Depth = 4
)

// DepthFor picks the smallest width whose maximum value can hold
// paletteLen-1. A 256-color palette still fits 8 bits (max index 255).
func DepthFor(paletteLen int) Depth {
	maxIndex := paletteLen - 1
	switch {
	case maxIndex < 1<<8:
		return Depth8
	case maxIndex < 1<<16:
		return Depth16
	default:
		return Depth32
	}
}

// ByteSize returns the element size in bytes.
func (d Depth) ByteSize() int { return int(d) }

// IndexGrid maps every pixel of an H×W image to a palette slot.
type IndexGrid struct {
	Idx    []uint32 // row-major, Idx[y*Width+x]
	Width  int
	Height int
	Depth  Depth
}

// NewIndexGrid allocates a zeroed grid tagged with the given depth.
func NewIndexGrid(width, height int, depth Depth) *IndexGrid {
	return &IndexGrid{
		Idx:    make([]uint32, width*height),
		Width:  width,
		Height: height,
		Depth:  depth,
	}
}

// At returns the palette slot stored at (x, y).
func (g *IndexGrid) At(x, y int) uint32 {
	return g.Idx[y*g.Width+x]
}
