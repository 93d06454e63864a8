// Command contentkit renders a local content tree into static pages, keeps
// them up to date while the tree changes, or renders pages per request.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

// CLI definition and global flags.
type CLI struct {
	Config  string `short:"c" help:"Configuration file path" type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Render RenderCmd `cmd:"" help:"Render every page of the content tree"`
	Watch  WatchCmd  `cmd:"" help:"Render, then render again whenever content changes"`
	Serve  ServeCmd  `cmd:"" help:"Render pages per request from the saved snapshot"`
}

// Global carries process-wide state into commands.
type Global struct {
	Context context.Context
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("contentkit"),
		kong.Description("Render structured content trees into pages."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := kctx.Run(&Global{Context: ctx}, &cli)
	kctx.FatalIfErrorf(err)
}
