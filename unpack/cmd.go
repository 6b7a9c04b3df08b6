// Package unpack implements the reconstruct command: load a palette
// archive, rebuild the full RGBA image and write it out.
package unpack

import (
	"fmt"
	"log/slog"
	"os"

	"palpack/container"
	"palpack/imageio"
	"palpack/palette"
	"palpack/quant"
)

type CLICmd struct {
	Out        string `help:"Destination image file, format picked by extension" default:"reconstructed.png"`
	PaletteOut string `help:"Also export the palette as a RIFF PAL file"`
	In         string `arg:"" help:"Palette archive to reconstruct" type:"existingfile"`
}

func (c *CLICmd) Run() error {
	res, err := container.ReadFile(c.In)
	if err != nil {
		return err
	}

	grid, err := quant.Reconstruct(res.Palette, res.Indices)
	if err != nil {
		return fmt.Errorf("archive %q is not reconstructible: %w", c.In, err)
	}

	if err = imageio.Save(c.Out, grid); err != nil {
		return err
	}
	slog.Info("reconstructed", "file", c.Out, "colors", len(res.Palette),
		"width", grid.Width, "height", grid.Height)

	if c.PaletteOut != "" {
		if err = exportPalette(c.PaletteOut, res.Palette); err != nil {
			return err
		}
		slog.Info("exported palette", "file", c.PaletteOut, "colors", len(res.Palette))
	}
	return nil
}

func exportPalette(path string, pal quant.Palette) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create palette file %q: %w", path, err)
	}
	defer func() {
		if defErr := f.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close palette file %q: %w", path, defErr)
		}
	}()

	if _, err = palette.WriteTo(f, pal); err != nil {
		return fmt.Errorf("could not export palette to %q: %w", path, err)
	}
	return nil
}
