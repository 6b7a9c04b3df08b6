package quant

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidShape reports a pixel grid with an unsupported channel
	// count or a Pix buffer that does not match Width*Height*Channels.
	ErrInvalidShape = errors.New("invalid pixel grid shape")
	// ErrInvalidStep reports a tolerance step outside [1, 255].
	ErrInvalidStep = errors.New("invalid tolerance step")
	// ErrIndexRange reports an index grid slot past the end of the palette.
	ErrIndexRange = errors.New("palette index out of range")
)

// PixelGrid is a rectangular grid of 8-bit color values, row-major.
// The pixel at (x, y) starts at Pix[(y*Width+x)*Channels]. Channels is
// 3 (RGB) or 4 (RGBA).
type PixelGrid struct {
	Pix      []uint8
	Width    int
	Height   int
	Channels int
}

// NewPixelGrid allocates a zeroed grid of the given dimensions.
func NewPixelGrid(width, height, channels int) *PixelGrid {
	return &PixelGrid{
		Pix:      make([]uint8, width*height*channels),
		Width:    width,
		Height:   height,
		Channels: channels,
	}
}

func (g *PixelGrid) validate() error {
	if g.Channels != 3 && g.Channels != 4 {
		return fmt.Errorf("%w: %d channels, want 3 or 4", ErrInvalidShape, g.Channels)
	}
	if g.Width < 1 || g.Height < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidShape, g.Width, g.Height)
	}
	if len(g.Pix) != g.Width*g.Height*g.Channels {
		return fmt.Errorf("%w: %d pixel bytes for %dx%dx%d",
			ErrInvalidShape, len(g.Pix), g.Width, g.Height, g.Channels)
	}
	return nil
}

// At returns the color at (x, y). RGB grids report a 255 alpha.
func (g *PixelGrid) At(x, y int) Color {
	i := (y*g.Width + x) * g.Channels
	c := Color{g.Pix[i], g.Pix[i+1], g.Pix[i+2], 0xFF}
	if g.Channels == 4 {
		c[3] = g.Pix[i+3]
	}
	return c
}
