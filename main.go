package main

import (
	"log/slog"
	"os"

	"palpack/inspect"
	"palpack/pack"
	"palpack/parallel"
	"palpack/unpack"

	"github.com/alecthomas/kong"
)

var cli struct {
	Jobs    int            `help:"Number of parallel workers, 0 for one per CPU" default:"0"`
	Pack    pack.CLICmd    `cmd:"" help:"Compress images into palette archives"`
	Unpack  unpack.CLICmd  `cmd:"" help:"Reconstruct an image from a palette archive"`
	Inspect inspect.CLICmd `cmd:"" help:"Describe palette archives"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("palpack"),
		kong.Description("Compress images into a palette plus index map archive, and reconstruct them."),
		kong.UsageOnError(),
	)

	pool := parallel.Start(cli.Jobs)
	if err := kctx.Run(pool.Do, pool.Wait); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
