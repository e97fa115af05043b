package router

import "net/http"

// Route enumerates the operations the service answers.
type Route uint8

const (
	RouteUnknown Route = iota
	RouteCreateArticle
	RouteGetArticle
	RouteRandomArticles
)

const (
	PathArticle        = "/article"
	PathRandomArticles = "/article/random"
)

// Routes lists every registered route.
var Routes = []Route{RouteCreateArticle, RouteGetArticle, RouteRandomArticles}

// Resolve maps a (path, method) pair onto a route.
func Resolve(path, method string) Route {
	switch {
	case path == PathArticle && method == http.MethodPost:
		return RouteCreateArticle
	case path == PathArticle && method == http.MethodGet:
		return RouteGetArticle
	case path == PathRandomArticles && method == http.MethodGet:
		return RouteRandomArticles
	default:
		return RouteUnknown
	}
}

func (r Route) Path() string {
	switch r {
	case RouteCreateArticle, RouteGetArticle:
		return PathArticle
	case RouteRandomArticles:
		return PathRandomArticles
	default:
		return ""
	}
}

func (r Route) Method() string {
	switch r {
	case RouteCreateArticle:
		return http.MethodPost
	case RouteGetArticle, RouteRandomArticles:
		return http.MethodGet
	default:
		return ""
	}
}

func (r Route) String() string {
	if r == RouteUnknown {
		return "unknown"
	}

	return r.Method() + " " + r.Path()
}
