package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	core "github.com/goliatone/go-dashboard-ui/components/dashboard"
	"github.com/goliatone/go-dashboard-ui/components/dashboard/queries"
)

type routesCmd struct {
	BasePath string `name:"base-path" default:"/admin" help:"Mount prefix shown in front of each path."`
	Resolve  string `help:"Only print the route a path resolves to."`
}

func (cmd *routesCmd) Run(ctx context.Context, out io.Writer) error {
	svc, err := core.NewService(core.Options{})
	if err != nil {
		return err
	}
	defer svc.Close(ctx)

	table, err := queries.NewRouteTableQuery(svc).Query(ctx, queries.RouteTableInput{Path: cmd.Resolve})
	if err != nil {
		return err
	}
	base := core.NormalizeBasePath(cmd.BasePath)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tPAGE\tLABEL\tICON")
	for _, route := range table {
		fmt.Fprintf(tw, "%s%s\t%s\t%s\t%s\n", base, route.Path, route.Page, route.Label, route.Icon)
	}
	return tw.Flush()
}
