// Package inspect implements the describe command for palette archives.
package inspect

import (
	"fmt"
	"log/slog"
	"os"

	"palpack/container"
)

type CLICmd struct {
	In []string `arg:"" help:"Palette archives to describe" type:"existingfile"`
}

func (c *CLICmd) Run() error {
	errCount := 0
	for _, in := range c.In {
		res, err := container.ReadFile(in)
		if err != nil {
			errCount++
			slog.Error("could not read archive", "file", in, "error", err)
			continue
		}

		var size int64
		if info, err := os.Stat(in); err == nil {
			size = info.Size()
		}

		idx := res.Indices
		slog.Info("archive", "file", in, "colors", len(res.Palette),
			"width", idx.Width, "height", idx.Height,
			"index_bits", idx.Depth.ByteSize()*8, "bytes", size)
	}

	if errCount > 0 {
		return fmt.Errorf("error reading %d archives", errCount)
	}
	return nil
}
