package cmd

import (
	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/urfave/cli"
)

// Write the calibration gradient without tracing any rays.
func WritePattern(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg := config.Default()
	cfg.Resolve(config.Flags{
		Output:   ctx.String("out"),
		Width:    ctx.Int("width"),
		Height:   ctx.Int("height"),
		MaxDepth: config.Unset,
		Seed:     config.Unset,
	})
	// Only the size and output path matter for the pattern
	cfg.ApplySceneDefaults(scene.DefaultSamplingConfig())
	if err := cfg.Validate(); err != nil {
		return err
	}

	img := output.GradientPattern(cfg.Width, cfg.Height)
	if cfg.Output == StdoutPath {
		return output.WritePPM(ctx.App.Writer, img)
	}
	if err := output.Save(cfg.Output, img); err != nil {
		return err
	}

	logger.Noticef("pattern saved as %s", cfg.Output)
	return nil
}
