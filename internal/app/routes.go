package app

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes registers the API, the exports and, last, the HTML views.
func RegisterRoutes(r *mux.Router, deps *Dependencies, views http.Handler) {

	// Events
	r.Handle("/api/event/stream", deps.EventStream).Methods("GET")
	r.HandleFunc("/api/event", deps.EventHandler.ListEvents).Methods("GET")
	r.HandleFunc("/api/event", deps.EventHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.GetEvent).Methods("GET")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.DeleteEvent).Methods("DELETE")

	// Filter
	r.HandleFunc("/api/filter", deps.EventHandler.GetFilter).Methods("GET")
	r.HandleFunc("/api/filter", deps.EventHandler.SetFilter).Methods("PUT")

	// Export
	r.HandleFunc("/export/events.ics", deps.ExportHandler.ExportIcs).Methods("GET")
	r.HandleFunc("/export/events.csv", deps.ExportHandler.ExportCsv).Methods("GET")

	// Views: /, /add, /event/{id}
	r.PathPrefix("/").Handler(views)
}
