package view

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/klokku/eventboard/pkg/event"
	"github.com/klokku/eventboard/pkg/router"
	log "github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

// view handles the two interactions every page supports: rendering and form submission.
type view interface {
	Render(w http.ResponseWriter, r *http.Request, route router.Route)
	Submit(w http.ResponseWriter, r *http.Request, route router.Route)
}

type page struct {
	Title     string
	Nav       []navLink
	CSRFField template.HTML
	Content   any
}

type navLink struct {
	Label  string
	Href   string
	Active bool
}

// Shell composes the header, navigation and the view selected by the path.
type Shell struct {
	selector *router.Selector
	views    map[router.View]view
}

func NewShell(title string, store event.Store, selector *router.Selector) *Shell {
	shared := &layout{title: title, selector: selector}
	return &Shell{
		selector: selector,
		views: map[router.View]view{
			router.List:   newListView(store, shared),
			router.Create: newCreateView(store, shared),
			router.Detail: newDetailView(store, shared),
		},
	}
}

func (s *Shell) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route, ok := s.selector.Match(r.URL.Path)
	if !ok {
		log.Debugf("no view for path %s", r.URL.Path)
		http.NotFound(w, r)
		return
	}
	v := s.views[route.View]

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		v.Render(w, r, route)
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		v.Submit(w, r, route)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

type layout struct {
	title    string
	selector *router.Selector
}

func parseTemplate(name string) *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name))
}

func (l *layout) render(w http.ResponseWriter, r *http.Request, status int, tmpl *template.Template, active router.View, content any) {
	data := page{
		Title: l.title,
		Nav: []navLink{
			{Label: "Calendar", Href: l.selector.Path(router.ListRoute()), Active: active == router.List},
			{Label: "Add Event", Href: l.selector.Path(router.CreateRoute()), Active: active == router.Create},
		},
		CSRFField: csrf.TemplateField(r),
		Content:   content,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Errorf("failed to render %s view: %v", active, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Errorf("failed to write %s view: %v", active, err)
	}
}

func (l *layout) redirect(w http.ResponseWriter, r *http.Request, route router.Route) {
	http.Redirect(w, r, l.selector.Path(route), http.StatusSeeOther)
}
