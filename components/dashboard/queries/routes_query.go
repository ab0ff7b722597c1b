package queries

import (
	"context"
	"strings"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-dashboard-ui/components/dashboard"
)

// RouteTableInput optionally resolves a single path.
type RouteTableInput struct {
	Path string
}

type routeService interface {
	Routes() dashboard.RouteTable
}

// RouteTableQuery lists the console routes, or the one serving Path.
type RouteTableQuery struct {
	service routeService
}

// NewRouteTableQuery builds the query.
func NewRouteTableQuery(service routeService) *RouteTableQuery {
	return &RouteTableQuery{service: service}
}

var _ gocommand.Querier[RouteTableInput, dashboard.RouteTable] = (*RouteTableQuery)(nil)

// Query returns the matching routes.
func (q *RouteTableQuery) Query(_ context.Context, input RouteTableInput) (dashboard.RouteTable, error) {
	routes := q.service.Routes()
	if strings.TrimSpace(input.Path) == "" {
		return routes, nil
	}
	route, err := routes.Resolve(input.Path)
	if err != nil {
		return nil, err
	}
	return dashboard.RouteTable{route}, nil
}
