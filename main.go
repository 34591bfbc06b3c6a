package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/df07/go-pathtracer/cmd"
	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "pathtracer"
	app.Usage = "render sphere scenes using path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to an image file",
			Description: `
Render a built-in scene or a JSON scene file. Settings are taken from the
--config file, then overridden by any flags given, and whatever is still
unset falls back to the scene's own sampling settings.

The output format is chosen from the file extension (` + formatList() + `).
Use "-o -" to write binary PPM to standard output.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene",
					Usage: "built-in scene name (see the scenes command)",
				},
				cli.StringFlag{
					Name:  "scene-file",
					Usage: "JSON scene description; takes priority over --scene",
				},
				cli.StringFlag{
					Name:  "config",
					Usage: "JSON render config file",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "image width",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "image height",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "depth",
					Value: config.Unset,
					Usage: "maximum number of bounces per path",
				},
				cli.Float64Flag{
					Name:  "gamma",
					Usage: "display gamma",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: config.Unset,
					Usage: "random seed; the same seed reproduces the same image",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of render workers (0 = one per CPU)",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Usage: "tile edge in pixels",
				},
				cli.IntFlag{
					Name:  "supersample",
					Usage: "render at N times the size and downscale",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "output image filename",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:  "scenes",
			Usage: "list available scenes",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dir",
					Value: "scenes",
					Usage: "directory scanned for JSON scene files",
				},
			},
			Action: cmd.ListScenes,
			Subcommands: []cli.Command{
				{
					Name:      "export",
					Usage:     "write a built-in scene as a JSON scene file",
					ArgsUsage: "scene_name",
					Flags: []cli.Flag{
						cli.Uint64Flag{
							Name:  "seed",
							Value: scene.DefaultSamplingConfig().Seed,
							Usage: "seed for randomly laid out scenes",
						},
						cli.StringFlag{
							Name:  "out, o",
							Usage: "output filename (default: standard output)",
						},
					},
					Action: cmd.ExportScene,
				},
			},
		},
		{
			Name:  "serve",
			Usage: "serve scene listing, inspection and streamed renders over HTTP",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port",
					Value: 8080,
					Usage: "port to serve on",
				},
				cli.StringFlag{
					Name:  "dir",
					Value: "scenes",
					Usage: "directory scanned for JSON scene files",
				},
			},
			Action: cmd.Serve,
		},
		{
			Name:  "pattern",
			Usage: "write the calibration gradient image",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 256,
					Usage: "image width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 256,
					Usage: "image height",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "pattern.ppm",
					Usage: "output image filename",
				},
			},
			Action: cmd.WritePattern,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func formatList() string {
	names := make([]string, 0, len(output.Formats()))
	for _, f := range output.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
