package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/df07/go-pathtracer/web/server"
	"github.com/urfave/cli"
)

// Serve the HTTP API for interactive renders until interrupted.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	port := ctx.Int("port")
	srv := server.NewServer(port, ctx.String("dir"), logger)

	serveCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Noticef("visit http://localhost:%d/api/scenes to list scenes", port)
	return srv.Start(serveCtx)
}
