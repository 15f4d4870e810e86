package view

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/klokku/eventboard/pkg/event"
	"github.com/klokku/eventboard/pkg/router"
	log "github.com/sirupsen/logrus"
)

type listEntry struct {
	Label string
	Href  string
}

type listContent struct {
	Events       []listEntry
	Filter       string
	Categories   []string
	FilterAction string
}

// ListView renders the filtered events and the category selector.
type ListView struct {
	store  event.Store
	layout *layout
	tmpl   *template.Template
}

func newListView(store event.Store, layout *layout) *ListView {
	return &ListView{store: store, layout: layout, tmpl: parseTemplate("list.html")}
}

func (v *ListView) Render(w http.ResponseWriter, r *http.Request, route router.Route) {
	log.Trace("Rendering event list")
	ctx := r.Context()

	events := v.store.List(ctx)
	entries := make([]listEntry, 0, len(events))
	for _, e := range events {
		entries = append(entries, listEntry{
			Label: Label(e),
			Href:  v.layout.selector.Path(router.DetailRoute(e.Id)),
		})
	}

	v.layout.render(w, r, http.StatusOK, v.tmpl, router.List, listContent{
		Events:       entries,
		Filter:       v.store.Filter(ctx),
		Categories:   append([]string{event.AllCategories}, v.store.Categories(ctx)...),
		FilterAction: v.layout.selector.Path(router.ListRoute()),
	})
}

// Submit applies the category chosen in the selector.
func (v *ListView) Submit(w http.ResponseWriter, r *http.Request, route router.Route) {
	category := r.PostFormValue("category")
	log.Debugf("Changing filter to %q", category)
	v.store.SetFilter(r.Context(), category)
	v.layout.redirect(w, r, router.ListRoute())
}

// Label is the list entry text of an event.
func Label(e event.Event) string {
	return fmt.Sprintf("%s - %s", e.Date, e.Title)
}
