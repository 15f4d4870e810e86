package export

import (
	"bytes"
	"io"
	"net/http"

	"github.com/klokku/eventboard/pkg/event"
	log "github.com/sirupsen/logrus"
)

type Renderer interface {
	Render(w io.Writer, events []event.Event) (int, error)
}

// Handler exports the events visible under the active filter.
type Handler struct {
	store event.Store
	ics   Renderer
	csv   Renderer
}

func NewHandler(store event.Store, ics Renderer, csv Renderer) *Handler {
	return &Handler{store: store, ics: ics, csv: csv}
}

func (h *Handler) ExportIcs(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.ics, "text/calendar; charset=utf-8", "events.ics")
}

func (h *Handler) ExportCsv(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.csv, "text/csv; charset=utf-8", "events.csv")
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request, renderer Renderer, contentType, filename string) {
	events := h.store.List(r.Context())

	var buf bytes.Buffer
	written, err := renderer.Render(&buf, events)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Debugf("Exported %d of %d events to %s", written, len(events), filename)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Errorf("failed to write %s: %v", filename, err)
	}
}
