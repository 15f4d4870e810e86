package view

import (
	"html/template"
	"net/http"

	"github.com/klokku/eventboard/pkg/event"
	"github.com/klokku/eventboard/pkg/router"
	log "github.com/sirupsen/logrus"
)

type createContent struct {
	Action  string
	Draft   event.Draft
	Missing []string
}

// CreateView collects a draft and adds it to the store.
type CreateView struct {
	store  event.Store
	layout *layout
	tmpl   *template.Template
}

func newCreateView(store event.Store, layout *layout) *CreateView {
	return &CreateView{store: store, layout: layout, tmpl: parseTemplate("create.html")}
}

func (v *CreateView) Render(w http.ResponseWriter, r *http.Request, route router.Route) {
	v.renderForm(w, r, http.StatusOK, event.Draft{}, nil)
}

func (v *CreateView) Submit(w http.ResponseWriter, r *http.Request, route router.Route) {
	draft := event.Draft{
		Title:    r.PostFormValue("title"),
		Date:     r.PostFormValue("date"),
		Category: r.PostFormValue("category"),
	}
	if missing := draft.MissingFields(); len(missing) > 0 {
		log.Debugf("Rejecting draft with missing fields %v", missing)
		v.renderForm(w, r, http.StatusBadRequest, draft, missing)
		return
	}

	created, _ := v.store.Add(r.Context(), draft)
	log.Debugf("Created event %d from form", created.Id)
	v.layout.redirect(w, r, router.ListRoute())
}

func (v *CreateView) renderForm(w http.ResponseWriter, r *http.Request, status int, draft event.Draft, missing []string) {
	v.layout.render(w, r, status, v.tmpl, router.Create, createContent{
		Action:  v.layout.selector.Path(router.CreateRoute()),
		Draft:   draft,
		Missing: missing,
	})
}
