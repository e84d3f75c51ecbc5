package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/notepad/pkg/domain/types"
)

func TestParseRoute(t *testing.T) {
	tests := []struct {
		path string
		want types.Route
	}{
		{"/", types.RouteAuth},
		{"/dashboard", types.RouteDashboard},
		{"", types.RouteNone},
		{"/dashboard/", types.RouteNone},
		{"/Dashboard", types.RouteNone},
		{"/dashboard?x=1", types.RouteNone},
		{"/api/notes", types.RouteNone},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			gt.Value(t, types.ParseRoute(tt.path)).Equal(tt.want)
		})
	}
}

func TestRoute_Path(t *testing.T) {
	gt.Value(t, types.RouteAuth.Path()).Equal("/")
	gt.Value(t, types.RouteDashboard.Path()).Equal("/dashboard")
	gt.Value(t, types.RouteNone.Path()).Equal("")

	for _, r := range []types.Route{types.RouteAuth, types.RouteDashboard} {
		gt.Value(t, types.ParseRoute(r.Path())).Equal(r)
	}
}

func TestRoute_String(t *testing.T) {
	gt.Value(t, types.RouteAuth.String()).Equal("auth")
	gt.Value(t, types.RouteDashboard.String()).Equal("dashboard")
	gt.Value(t, types.RouteNone.String()).Equal("none")
	gt.Value(t, types.Route(42).String()).Equal("route(42)")
}
