package event

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/klokku/eventboard/internal/rest"
	log "github.com/sirupsen/logrus"
)

type EventDTO struct {
	Id       int    `json:"id"`
	Date     string `json:"date"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

type FilterDTO struct {
	Category   string   `json:"category"`
	Categories []string `json:"categories,omitempty"`
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// ListEvents godoc
// @Summary List events
// @Description Visible events in insertion order, or every event with scope=all
// @Tags Event
// @Produce json
// @Param scope query string false "'all' to ignore the category filter"
// @Success 200 {array} EventDTO
// @Router /api/event [get]
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	log.Trace("Listing events")
	var events []Event
	if r.URL.Query().Get("scope") == "all" {
		events = h.store.All(r.Context())
	} else {
		events = h.store.List(r.Context())
	}
	rest.WriteJSON(w, http.StatusOK, toDTOs(events))
}

// CreateEvent godoc
// @Summary Add an event
// @Tags Event
// @Accept json
// @Produce json
// @Param event body EventDTO true "Event (id is ignored)"
// @Success 201 {object} EventDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/event [post]
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating event")
	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	draft := Draft{Title: dto.Title, Date: dto.Date, Category: dto.Category}
	if missing := draft.MissingFields(); len(missing) > 0 {
		rest.WriteError(w, http.StatusBadRequest, "Missing required fields", strings.Join(missing, ", "))
		return
	}

	created, _ := h.store.Add(r.Context(), draft)
	rest.WriteJSON(w, http.StatusCreated, toDTO(created))
}

// GetEvent godoc
// @Summary Get an event by id, regardless of the active filter
// @Tags Event
// @Produce json
// @Param eventId path int true "Event ID"
// @Success 200 {object} EventDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/event/{eventId} [get]
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventId, ok := eventIdFromPath(w, r)
	if !ok {
		return
	}
	found, err := h.store.Get(r.Context(), eventId)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(found))
}

// UpdateEvent godoc
// @Summary Replace an event
// @Tags Event
// @Accept json
// @Produce json
// @Param eventId path int true "Event ID"
// @Param event body EventDTO true "Event"
// @Success 200 {object} EventDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/event/{eventId} [put]
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating event")
	eventId, ok := eventIdFromPath(w, r)
	if !ok {
		return
	}
	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if dto.Id != 0 && dto.Id != eventId {
		rest.WriteError(w, http.StatusBadRequest, "Invalid event id in request body", "body id must match the path")
		return
	}
	dto.Id = eventId

	_, applied := h.store.Edit(r.Context(), fromDTO(dto))
	if !applied {
		writeStoreError(w, ErrEventNotFound)
		return
	}
	rest.WriteJSON(w, http.StatusOK, dto)
}

// DeleteEvent godoc
// @Summary Delete an event; deleting an absent event succeeds
// @Tags Event
// @Param eventId path int true "Event ID"
// @Success 204 "No Content"
// @Router /api/event/{eventId} [delete]
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventId, ok := eventIdFromPath(w, r)
	if !ok {
		return
	}
	h.store.Delete(r.Context(), eventId)
	w.WriteHeader(http.StatusNoContent)
}

// GetFilter godoc
// @Summary Active category filter and known categories
// @Tags Filter
// @Produce json
// @Success 200 {object} FilterDTO
// @Router /api/filter [get]
func (h *Handler) GetFilter(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, FilterDTO{
		Category:   h.store.Filter(r.Context()),
		Categories: h.store.Categories(r.Context()),
	})
}

// SetFilter godoc
// @Summary Replace the category filter; "All" disables filtering
// @Tags Filter
// @Accept json
// @Produce json
// @Param filter body FilterDTO true "Filter"
// @Success 200 {object} FilterDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/filter [put]
func (h *Handler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var dto FilterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	snapshot := h.store.SetFilter(r.Context(), dto.Category)
	rest.WriteJSON(w, http.StatusOK, FilterDTO{
		Category:   snapshot.Filter,
		Categories: h.store.Categories(r.Context()),
	})
}

func eventIdFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	eventId, err := strconv.Atoi(mux.Vars(r)["eventId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid event id", err.Error())
		return 0, false
	}
	return eventId, true
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrEventNotFound) {
		rest.WriteError(w, http.StatusNotFound, "Event not found", err.Error())
		return
	}
	rest.WriteError(w, http.StatusInternalServerError, "Internal error", err.Error())
}

func toDTO(e Event) EventDTO {
	return EventDTO{Id: e.Id, Date: e.Date, Title: e.Title, Category: e.Category}
}

func toDTOs(events []Event) []EventDTO {
	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, toDTO(e))
	}
	return dtos
}

func fromDTO(dto EventDTO) Event {
	return Event{Id: dto.Id, Date: dto.Date, Title: dto.Title, Category: dto.Category}
}
