package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX      int    `json:"tileX"` // Pixel column of the tile's left edge
	TileY      int    `json:"tileY"` // Pixel row of the tile's top edge
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Completion order (1-based)
	TotalTiles int    `json:"totalTiles"`
}

// RenderComplete is the final event of a successful render
type RenderComplete struct {
	ElapsedMs        int64   `json:"elapsedMs"`
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int     `json:"totalSamples"`
	AverageSamples   float64 `json:"averageSamples"`
	NonFiniteSamples int     `json:"nonFiniteSamples"`
	Tiles            int     `json:"tiles"`
	Workers          int     `json:"workers"`
	ImageData        string  `json:"imageData"` // Base64 encoded PNG of the whole frame
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "error", "complete"
	Data string `json:"data"` // JSON-encoded data, or a plain message for errors
}

// handleRender renders a scene and streams finished tiles via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	setSSEHeaders(w)
	ctx := r.Context()

	// All writes to w happen on the writer goroutine
	events := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		writeSSEEvents(ctx, w, events)
		close(writerDone)
	}()
	defer func() {
		close(events)
		<-writerDone
	}()

	cfg, sc, err := s.parseRenderRequest(r)
	if err != nil {
		events <- SSEEvent{Type: "error", Data: fmt.Sprintf("Invalid request: %v", err)}
		return
	}

	consoleChan := make(chan ConsoleMessage, 50)
	streamDone := make(chan struct{})
	go func() {
		streamConsoleMessages(consoleChan, events)
		close(streamDone)
	}()
	webLogger := NewWebLogger(fmt.Sprintf("render-%d", time.Now().UnixNano()), consoleChan, s.logger)

	startTime := time.Now()
	img, stats, err := renderStreamed(ctx, cfg, sc, webLogger, func(update TileUpdate) {
		if data, err := json.Marshal(update); err == nil {
			events <- SSEEvent{Type: "tile", Data: string(data)}
		}
	})

	close(consoleChan)
	<-streamDone

	if err != nil {
		if ctx.Err() == nil {
			events <- SSEEvent{Type: "error", Data: fmt.Sprintf("Rendering failed: %v", err)}
		}
		return
	}

	imageData, err := imageToBase64PNG(img)
	if err != nil {
		events <- SSEEvent{Type: "error", Data: fmt.Sprintf("Failed to encode image: %v", err)}
		return
	}
	data, err := json.Marshal(RenderComplete{
		ElapsedMs:        time.Since(startTime).Milliseconds(),
		TotalPixels:      stats.TotalPixels,
		TotalSamples:     stats.TotalSamples,
		AverageSamples:   stats.AverageSamples(),
		NonFiniteSamples: stats.NonFiniteSamples,
		Tiles:            stats.Tiles,
		Workers:          stats.Workers,
		ImageData:        imageData,
	})
	if err != nil {
		events <- SSEEvent{Type: "error", Data: err.Error()}
		return
	}
	events <- SSEEvent{Type: "complete", Data: string(data)}
}

// renderStreamed renders sc and reports every finished tile as a PNG fragment
func renderStreamed(ctx context.Context, cfg config.RenderConfig, sc *scene.Scene, logger *WebLogger, onTile func(TileUpdate)) (*image.RGBA, renderer.RenderStats, error) {
	camera := renderer.NewCamera(sc.CameraConfigFor(cfg.Width, cfg.Height))
	rt := renderer.NewRaytracer(camera, sc.Shapes, integrator.NewPathTracingIntegrator(cfg.MaxDepth), renderer.Options{
		Width:           cfg.Width,
		Height:          cfg.Height,
		SamplesPerPixel: cfg.SamplesPerPixel,
		Seed:            uint64(cfg.Seed),
		TileSize:        DefaultTileSize,
		Logger:          logger,
		OnTile: func(p renderer.TileProgress) {
			bounds := p.Tile.Bounds
			tileData, err := imageToBase64PNG(p.Frame.RegionImage(bounds, cfg.Gamma))
			if err != nil {
				logger.Warningf("Error encoding tile %d: %v", p.Tile.ID, err)
				return
			}
			onTile(TileUpdate{
				TileX:      bounds.Min.X,
				TileY:      bounds.Min.Y,
				Width:      bounds.Dx(),
				Height:     bounds.Dy(),
				ImageData:  tileData,
				TileNumber: p.TileNumber,
				TotalTiles: p.TotalTiles,
			})
		},
	})

	frame, stats, err := rt.Render(ctx)
	if err != nil {
		return nil, stats, err
	}
	return frame.Image(cfg.Gamma), stats, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents writes events until the channel is closed.
// After the client disconnects remaining events are drained so senders never block.
func writeSSEEvents(ctx context.Context, w http.ResponseWriter, events <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	for event := range events {
		if ctx.Err() != nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			continue
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages forwards console messages as SSE events until consoleChan is closed
func streamConsoleMessages(consoleChan <-chan ConsoleMessage, events chan<- SSEEvent) {
	for msg := range consoleChan {
		data, err := json.Marshal(msg)
		if err != nil {
			continue
		}
		events <- SSEEvent{Type: "console", Data: string(data)}
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := output.Encode(&buf, img, output.FormatPNG); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
