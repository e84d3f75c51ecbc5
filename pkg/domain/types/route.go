package types

import "fmt"

// Route identifies which page a path boots
type Route int

const (
	// RouteNone is any path that has no page controller
	RouteNone Route = iota
	RouteAuth
	RouteDashboard
)

const (
	PathAuth      = "/"
	PathDashboard = "/dashboard"
)

// ParseRoute resolves a path by exact match. Query strings and fragments are not stripped.
func ParseRoute(path string) Route {
	switch path {
	case PathAuth:
		return RouteAuth
	case PathDashboard:
		return RouteDashboard
	default:
		return RouteNone
	}
}

// Path returns the canonical path of the route. RouteNone has no path.
func (r Route) Path() string {
	switch r {
	case RouteAuth:
		return PathAuth
	case RouteDashboard:
		return PathDashboard
	default:
		return ""
	}
}

// String returns the route name
func (r Route) String() string {
	switch r {
	case RouteAuth:
		return "auth"
	case RouteDashboard:
		return "dashboard"
	case RouteNone:
		return "none"
	default:
		return fmt.Sprintf("route(%d)", int(r))
	}
}
