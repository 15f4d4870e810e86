package router

import (
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/gorilla/mux"
)

type View int

const (
	List View = iota
	Create
	Detail
)

func (v View) String() string {
	switch v {
	case Create:
		return "create"
	case Detail:
		return "detail"
	default:
		return "list"
	}
}

// Route is a resolved view. EventId is only set for Detail.
type Route struct {
	View    View
	EventId int
}

func ListRoute() Route {
	return Route{View: List}
}

func CreateRoute() Route {
	return Route{View: Create}
}

func DetailRoute(id int) Route {
	return Route{View: Detail, EventId: id}
}

// Selector maps request paths to views:
//
//	/            -> List
//	/add         -> Create
//	/event/{id}  -> Detail(id), id decimal
type Selector struct {
	router *mux.Router
}

func NewSelector() *Selector {
	r := mux.NewRouter()
	r.NewRoute().Name(List.String()).Path("/")
	r.NewRoute().Name(Create.String()).Path("/add")
	r.NewRoute().Name(Detail.String()).Path("/event/{id:[0-9]+}")
	return &Selector{router: r}
}

// Match resolves p to a route. It reports false for paths that name no view.
func (s *Selector) Match(p string) (Route, bool) {
	if p == "" {
		p = "/"
	}
	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: path.Clean(p)}}
	var match mux.RouteMatch
	if !s.router.Match(req, &match) {
		return Route{}, false
	}

	switch match.Route.GetName() {
	case Create.String():
		return CreateRoute(), true
	case Detail.String():
		id, err := strconv.Atoi(match.Vars["id"])
		if err != nil {
			return Route{}, false
		}
		return DetailRoute(id), true
	default:
		return ListRoute(), true
	}
}

// Resolve is Match with List as the fallback, which is also the initial view.
func (s *Selector) Resolve(p string) Route {
	if route, ok := s.Match(p); ok {
		return route
	}
	return ListRoute()
}

// Path builds the path of a route.
func (s *Selector) Path(route Route) string {
	var (
		u   *url.URL
		err error
	)
	switch route.View {
	case Detail:
		u, err = s.router.Get(Detail.String()).URL("id", strconv.Itoa(route.EventId))
	default:
		u, err = s.router.Get(route.View.String()).URL()
	}
	if err != nil {
		// the routes are static, so this only happens for negative ids
		return fmt.Sprintf("/event/%d", route.EventId)
	}
	return u.Path
}
