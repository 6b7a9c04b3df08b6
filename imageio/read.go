// Package imageio moves pixel grids in and out of standard raster
// formats. It registers the same decoders the rest of the toolchain
// expects: gif, jpeg and png from the standard library plus bmp, tiff
// and webp.
package imageio

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"palpack/quant"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

// Load decodes the image at path into a 4-channel pixel grid.
func Load(path string) (*quant.PixelGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode image %q: %w", path, err)
	}

	return FromImage(img), nil
}

// FromImage converts any image into a 4-channel grid with
// non-premultiplied alpha.
func FromImage(img image.Image) *quant.PixelGrid {
	bounds := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || bounds.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	grid := quant.NewPixelGrid(bounds.Dx(), bounds.Dy(), 4)
	for y := range grid.Height {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+grid.Width*4]
		copy(grid.Pix[y*grid.Width*4:], row)
	}
	return grid
}

// ToImage converts a grid back into an image for encoding. RGB grids
// come out fully opaque.
func ToImage(grid *quant.PixelGrid) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, grid.Width, grid.Height))
	if grid.Channels == 4 {
		for y := range grid.Height {
			copy(img.Pix[y*img.Stride:], grid.Pix[y*grid.Width*4:(y+1)*grid.Width*4])
		}
		return img
	}

	for y := range grid.Height {
		for x := range grid.Width {
			c := grid.At(x, y)
			i := y*img.Stride + x*4
			copy(img.Pix[i:i+4], c[:])
		}
	}
	return img
}
