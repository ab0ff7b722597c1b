package main

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

type cli struct {
	Serve    serveCmd    `cmd:"" default:"withargs" help:"Run the admin console server."`
	Routes   routesCmd   `cmd:"" help:"Print the route table."`
	Render   renderCmd   `cmd:"" help:"Render one page of a fresh shell to HTML."`
	Fixtures fixturesCmd `cmd:"" help:"Work with mock data fixtures."`
}

func main() {
	ctx := context.Background()
	var out io.Writer = os.Stdout
	parser := kong.Parse(&cli{},
		kong.Name("dashboardctl"),
		kong.Description("Server-rendered admin console with mock data."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.BindTo(out, (*io.Writer)(nil)),
	)
	err := parser.Run()
	parser.FatalIfErrorf(err)
}
