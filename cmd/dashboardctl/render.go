package main

import (
	"context"
	"fmt"
	"io"
	"os"

	core "github.com/goliatone/go-dashboard-ui/components/dashboard"
	"github.com/goliatone/go-dashboard-ui/components/dashboard/commands"
	pkgdashboard "github.com/goliatone/go-dashboard-ui/pkg/dashboard"
)

type renderCmd struct {
	Path      string `arg:"" default:"/" help:"Route path to render (e.g. /analytics)."`
	Out       string `short:"o" type:"path" help:"Write the HTML to this file instead of stdout."`
	Dark      bool   `help:"Render with the dark theme."`
	Collapsed bool   `help:"Render with the sidebar collapsed."`
	BasePath  string `name:"base-path" default:"/admin" help:"Mount prefix used for links."`
	Fixtures  string `type:"existingfile" help:"YAML fixtures replacing the built-in mock data."`

	renderer core.Renderer
}

func (cmd *renderCmd) Run(ctx context.Context, out io.Writer) error {
	data, err := core.LoadDataset(cmd.Fixtures)
	if err != nil {
		return err
	}
	console, err := pkgdashboard.NewConsole(pkgdashboard.ConsoleOptions{
		Service:  core.Options{Dataset: &data},
		BasePath: cmd.BasePath,
		Renderer: cmd.renderer,
	})
	if err != nil {
		return err
	}
	defer console.Close(ctx)

	snap, err := console.Service.CreateShell(ctx, cmd.Path)
	if err != nil {
		return err
	}
	shell := commands.ShellInput{ShellID: snap.ID}
	if cmd.Dark {
		if err := commands.NewToggleThemeCommand(console.Service, nil).Execute(ctx, shell); err != nil {
			return err
		}
	}
	if cmd.Collapsed {
		if err := commands.NewToggleSidebarCommand(console.Service, nil).Execute(ctx, shell); err != nil {
			return err
		}
	}

	if cmd.Out != "" {
		f, err := os.Create(cmd.Out)
		if err != nil {
			return fmt.Errorf("dashboardctl: create %s: %w", cmd.Out, err)
		}
		defer f.Close()
		out = f
	}
	return console.Controller.RenderShell(ctx, snap.ID, out)
}
