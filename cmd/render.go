package cmd

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"
	"time"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/urfave/cli"
)

// StdoutPath selects binary PPM on standard output instead of a file
const StdoutPath = "-"

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, sc, err := buildRenderConfig(ctx.String("config"), flagsFromContext(ctx))
	if err != nil {
		return err
	}

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	img, stats, err := renderImage(renderCtx, cfg, sc)
	if err != nil {
		return err
	}

	if cfg.Output == StdoutPath {
		err = output.WritePPM(ctx.App.Writer, img)
	} else {
		err = output.Save(cfg.Output, img)
	}
	if err != nil {
		return err
	}

	displayRenderStats(cfg, sc, stats)
	if cfg.Output != StdoutPath {
		logger.Noticef("render saved as %s", cfg.Output)
	}
	return nil
}

func flagsFromContext(ctx *cli.Context) config.Flags {
	return config.Flags{
		Scene:           ctx.String("scene"),
		SceneFile:       ctx.String("scene-file"),
		Output:          ctx.String("out"),
		Width:           ctx.Int("width"),
		Height:          ctx.Int("height"),
		SamplesPerPixel: ctx.Int("spp"),
		MaxDepth:        ctx.Int("depth"),
		Gamma:           ctx.Float64("gamma"),
		Seed:            ctx.Int64("seed"),
		Workers:         ctx.Int("workers"),
		TileSize:        ctx.Int("tile-size"),
		Supersample:     ctx.Int("supersample"),
	}
}

func buildRenderConfig(configPath string, flags config.Flags) (config.RenderConfig, *scene.Scene, error) {
	base := config.Default()
	if configPath != "" {
		var err error
		if base, err = config.Load(configPath); err != nil {
			return config.RenderConfig{}, nil, err
		}
	}

	cfg, sc, err := config.Build(base, flags)
	if err != nil {
		return config.RenderConfig{}, nil, err
	}
	if cfg.SceneFile != "" {
		logger.Infof("loaded %d shapes from %s", sc.Shapes.Len(), cfg.SceneFile)
	}
	return cfg, sc, nil
}

// renderImage traces sc at Supersample times the configured size and
// scales the result back down.
func renderImage(ctx context.Context, cfg config.RenderConfig, sc *scene.Scene) (*image.RGBA, renderer.RenderStats, error) {
	width := cfg.Width * cfg.Supersample
	height := cfg.Height * cfg.Supersample

	camera := renderer.NewCamera(sc.CameraConfigFor(width, height))
	integ := integrator.NewPathTracingIntegrator(cfg.MaxDepth)

	rt := renderer.NewRaytracer(camera, sc.Shapes, integ, renderer.Options{
		Width:           width,
		Height:          height,
		SamplesPerPixel: cfg.SamplesPerPixel,
		Seed:            uint64(cfg.Seed),
		TileSize:        cfg.TileSize,
		NumWorkers:      cfg.Workers,
		Logger:          logger,
		OnTile:          logTileProgress(),
	})

	logger.Noticef("rendering scene %q", sc.Name)
	frame, stats, err := rt.Render(ctx)
	if err != nil {
		return nil, stats, fmt.Errorf("render %q: %w", sc.Name, err)
	}

	return frame.Downsample(cfg.Supersample).Image(cfg.Gamma), stats, nil
}

// logTileProgress reports completion in steps of roughly ten percent
func logTileProgress() func(renderer.TileProgress) {
	start := time.Now()
	lastDecile := 0
	return func(p renderer.TileProgress) {
		logger.Debugf("tile %d done (%d/%d)", p.Tile.ID, p.TileNumber, p.TotalTiles)
		decile := p.TileNumber * 10 / p.TotalTiles
		if decile > lastDecile {
			lastDecile = decile
			logger.Infof("%3d%% of tiles done in %s", decile*10, time.Since(start).Round(time.Millisecond))
		}
	}
}
