package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// DefaultTileSize is the edge length of a render tile in pixels
const DefaultTileSize = 32

// Options controls how an image is rendered
type Options struct {
	Width           int
	Height          int
	SamplesPerPixel int    // Number of rays per pixel
	Seed            uint64 // Base seed for the per-pixel random streams
	TileSize        int    // Tile edge in pixels (0 = DefaultTileSize)
	NumWorkers      int    // Number of parallel workers (0 = use CPU count)

	Logger core.Logger        // nil discards log output
	OnTile func(TileProgress) // Called once per finished tile, from a single goroutine
}

// TileProgress describes a finished tile for progress reporting
type TileProgress struct {
	Tile       *Tile
	Stats      TileStats
	Frame      *Frame // The tile's region is final; other regions may still be in progress
	TileNumber int    // 1-based completion order
	TotalTiles int
}

// Raytracer renders a world through a camera into a Frame
type Raytracer struct {
	camera     *Camera
	world      geometry.Shape
	integrator integrator.Integrator
	options    Options
	logger     core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(camera *Camera, world geometry.Shape, integratorInst integrator.Integrator, options Options) *Raytracer {
	if options.TileSize <= 0 {
		options.TileSize = DefaultTileSize
	}
	logger := options.Logger
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		camera:     camera,
		world:      world,
		integrator: integratorInst,
		options:    options,
		logger:     logger,
	}
}

// Render traces every pixel and returns the linear frame.
// Cancellation is checked between tiles; a cancelled render returns ctx's error
// and no frame.
func (rt *Raytracer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	opts := rt.options
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid image size %dx%d", opts.Width, opts.Height)
	}
	if opts.SamplesPerPixel <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid samples per pixel %d", opts.SamplesPerPixel)
	}

	startTime := time.Now()
	frame := NewFrame(opts.Width, opts.Height)
	tiles := NewTileGrid(opts.Width, opts.Height, opts.TileSize)

	tileRenderer := NewTileRenderer(rt.camera, rt.world, rt.integrator,
		opts.Width, opts.Height, opts.SamplesPerPixel, opts.Seed)
	workerPool := NewWorkerPool(tileRenderer, opts.NumWorkers, len(tiles))

	stats := RenderStats{
		Tiles:   len(tiles),
		Workers: workerPool.GetNumWorkers(),
	}

	rt.logger.Infof("Rendering %dx%d at %d spp: %d tiles on %d workers",
		opts.Width, opts.Height, opts.SamplesPerPixel, stats.Tiles, stats.Workers)

	workerPool.Start(ctx)
	for _, tile := range tiles {
		workerPool.SubmitTask(TileTask{Tile: tile, Frame: frame})
	}

	// Collect every result so no worker is left blocked, then report the first error
	var firstErr error
	for i := 0; i < len(tiles); i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			firstErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}

		stats.merge(result.Stats)
		rt.logger.Debugf("Tile %d done (%d/%d)", result.Tile.ID, i+1, len(tiles))

		if opts.OnTile != nil {
			opts.OnTile(TileProgress{
				Tile:       result.Tile,
				Stats:      result.Stats,
				Frame:      frame,
				TileNumber: i + 1,
				TotalTiles: len(tiles),
			})
		}
	}
	workerPool.Stop()

	stats.Duration = time.Since(startTime)
	if firstErr != nil {
		rt.logger.Warningf("Render aborted: %v", firstErr)
		return nil, stats, firstErr
	}

	if stats.NonFiniteSamples > 0 {
		rt.logger.Warningf("%d samples had non-finite channels and were zeroed", stats.NonFiniteSamples)
	}
	rt.logger.Infof("Render completed in %v", stats.Duration)

	return frame, stats, nil
}
