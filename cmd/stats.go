package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
)

func displayRenderStats(cfg config.RenderConfig, sc *scene.Scene, stats renderer.RenderStats) {
	logger.Noticef("render statistics\n%s", formatRenderStats(cfg, sc, stats))
}

func formatRenderStats(cfg config.RenderConfig, sc *scene.Scene, stats renderer.RenderStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Resolution", "Samples/pixel", "Max depth", "Tiles", "Workers", "Non-finite", "Render time"})
	table.Append([]string{
		sc.Name,
		resolution(cfg),
		fmt.Sprintf("%.1f", stats.AverageSamples()),
		fmt.Sprintf("%d", cfg.MaxDepth),
		fmt.Sprintf("%d", stats.Tiles),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%d", stats.NonFiniteSamples),
		stats.Duration.Round(time.Millisecond).String(),
	})
	table.SetFooter([]string{"", "", "", "", "", "", "SAMPLES/SEC", fmt.Sprintf("%.0f", stats.SamplesPerSecond())})

	table.Render()
	return buf.String()
}

func resolution(cfg config.RenderConfig) string {
	if cfg.Supersample > 1 {
		return fmt.Sprintf("%dx%d (x%d)", cfg.Width, cfg.Height, cfg.Supersample)
	}
	return fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)
}
