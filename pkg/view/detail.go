package view

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/klokku/eventboard/pkg/event"
	"github.com/klokku/eventboard/pkg/router"
	log "github.com/sirupsen/logrus"
)

type detailContent struct {
	Found    bool
	Event    event.Event
	Action   string
	BackHref string
}

// DetailView edits or deletes a single event. The lookup ignores the active
// filter; an unknown id renders a not-found page.
type DetailView struct {
	store  event.Store
	layout *layout
	tmpl   *template.Template
}

func newDetailView(store event.Store, layout *layout) *DetailView {
	return &DetailView{store: store, layout: layout, tmpl: parseTemplate("detail.html")}
}

func (v *DetailView) Render(w http.ResponseWriter, r *http.Request, route router.Route) {
	found, ok := v.lookup(w, r, route)
	if !ok {
		return
	}
	v.layout.render(w, r, http.StatusOK, v.tmpl, router.Detail, detailContent{
		Found:  true,
		Event:  found,
		Action: v.layout.selector.Path(route),
	})
}

func (v *DetailView) Submit(w http.ResponseWriter, r *http.Request, route router.Route) {
	if _, ok := v.lookup(w, r, route); !ok {
		return
	}

	switch action := r.PostFormValue("action"); action {
	case "save":
		v.store.Edit(r.Context(), event.Event{
			Id:       route.EventId,
			Title:    r.PostFormValue("title"),
			Date:     r.PostFormValue("date"),
			Category: r.PostFormValue("category"),
		})
		v.layout.redirect(w, r, route)
	case "delete":
		v.store.Delete(r.Context(), route.EventId)
		v.layout.redirect(w, r, router.ListRoute())
	default:
		log.Debugf("Unknown detail action %q", action)
		http.Error(w, "unknown action", http.StatusBadRequest)
	}
}

func (v *DetailView) lookup(w http.ResponseWriter, r *http.Request, route router.Route) (event.Event, bool) {
	found, err := v.store.Get(r.Context(), route.EventId)
	if err == nil {
		return found, true
	}
	if !errors.Is(err, event.ErrEventNotFound) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return event.Event{}, false
	}
	log.Debugf("Event %d not found", route.EventId)
	v.layout.render(w, r, http.StatusNotFound, v.tmpl, router.Detail, detailContent{
		BackHref: v.layout.selector.Path(router.ListRoute()),
	})
	return event.Event{}, false
}
