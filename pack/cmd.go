// Package pack implements the compress command: decode an image,
// optionally resize it, quantize it into a palette plus index grid and
// persist the pair as an archive.
package pack

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"palpack/container"
	"palpack/imageio"
	"palpack/parallel"
	"palpack/quant"

	"github.com/alecthomas/kong"
	"github.com/disintegration/imaging"
)

// ArchiveExt is the extension given to derived archive names.
const ArchiveExt = ".palz"

type CLICmd struct {
	Tolerance int      `help:"Quantization step for channel values, 1 is lossless" default:"10"`
	Width     int      `help:"Resize to this width before compressing, 0 keeps aspect" group:"resize"`
	Height    int      `help:"Resize to this height before compressing, 0 keeps aspect" group:"resize"`
	Out       string   `help:"Output archive, or folder when compressing several images. Defaults to the input name with the archive extension."`
	In        []string `arg:"" help:"Images to compress" type:"existingfile"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.Tolerance < 1 || c.Tolerance > 255 {
		return fmt.Errorf("invalid tolerance %d, want 1..255", c.Tolerance)
	}
	switch {
	case c.Width < 0:
		return fmt.Errorf("invalid resize width: %d", c.Width)
	case c.Height < 0:
		return fmt.Errorf("invalid resize height: %d", c.Height)
	}
	return nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if c.Out != "" && (len(c.In) > 1 || isDir(c.Out)) {
		if err := os.MkdirAll(c.Out, 0o755); err != nil {
			return fmt.Errorf("unable to create destination folder %q: %w", c.Out, err)
		}
	}

	var packedCount, errCount atomic.Uint64
	for _, in := range c.In {
		worker(func(src string) func() {
			return func() {
				logger := slog.Default().With("file", src)

				grid, err := imageio.Load(src)
				if err != nil {
					errCount.Add(1)
					logger.Error("could not load image", "error", err)
					return
				}

				if c.Width > 0 || c.Height > 0 {
					img := imaging.Resize(imageio.ToImage(grid), c.Width, c.Height, imaging.Lanczos)
					grid = imageio.FromImage(img)
					logger.Info("resized", "width", grid.Width, "height", grid.Height)
				}

				res, err := quant.Compress(grid, c.Tolerance)
				if err != nil {
					errCount.Add(1)
					logger.Error("could not quantize image", "error", err)
					return
				}

				dest := c.destFor(src)
				if err = container.WriteFile(dest, res); err != nil {
					errCount.Add(1)
					logger.Error("could not write archive", "dest", dest, "error", err)
					return
				}

				logger.Info("packed", "dest", dest, "colors", len(res.Palette),
					"width", res.Indices.Width, "height", res.Indices.Height,
					"index_bits", res.Indices.Depth.ByteSize()*8)
				packedCount.Add(1)
			}
		}(in))
	}

	wait(true)

	packed := packedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "packed", packed, "errors", errors, "total", packed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func (c *CLICmd) destFor(src string) string {
	base := filepath.Base(src)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ArchiveExt
	switch {
	case c.Out == "":
		return filepath.Join(filepath.Dir(src), name)
	case len(c.In) > 1 || isDir(c.Out):
		return filepath.Join(c.Out, name)
	default:
		return c.Out
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
