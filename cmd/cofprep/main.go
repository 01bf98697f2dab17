// Command cofprep regenerates the competition files from the raw COF table.
//
// The run takes no flags and reads no environment: input path, output
// directory and seed are fixed so that every regeneration yields the same
// four artifacts byte for byte.
package main

import (
	"log/slog"
	"os"

	"github.com/YuminosukeSato/cofprep/pipeline"
	cflog "github.com/YuminosukeSato/cofprep/pkg/log"
)

const (
	inputPath = "cof_raw.csv"
	outDir    = "data"
)

func main() {
	cflog.SetupLogger("info")

	cfg := pipeline.DefaultConfig(inputPath, outDir)
	slog.Info("regenerating competition dataset",
		cflog.InputPathKey, cfg.InputPath,
		cflog.SeedKey, cfg.Seed,
	)

	if err := pipeline.Run(cfg); err != nil {
		slog.Error("dataset generation failed", cflog.ErrAttr(err))
		os.Exit(1)
	}
	slog.Info("competition dataset ready", "out_dir", outDir)
}
