package event

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/klokku/eventboard/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

const streamBuffer = 16

type SnapshotDTO struct {
	Filter string     `json:"filter"`
	Events []EventDTO `json:"events"`
	Total  int        `json:"total"`
}

// Stream pushes a snapshot of the visible events to Server-Sent Events
// clients on connect and after every store mutation.
type Stream struct {
	store    Store
	eventBus *event_bus.EventBus
}

func NewStream(store Store, eventBus *event_bus.EventBus) *Stream {
	return &Stream{store: store, eventBus: eventBus}
}

func (s *Stream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	updates := make(chan Snapshot, streamBuffer)
	unsubscribe := event_bus.SubscribeTyped(s.eventBus, event_bus.StoreChangedType,
		func(e event_bus.EventT[event_bus.StoreChanged]) error {
			select {
			case updates <- SnapshotFromChange(e.Data):
			default:
				log.Warn("stream client buffer full, snapshot dropped")
			}
			return nil
		})
	defer unsubscribe()

	// Long-lived connection, the server WriteTimeout must not cut it.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		log.Debugf("stream write deadline not cleared: %v", err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ctx := r.Context()
	initial := Snapshot{Events: s.store.All(ctx), Filter: s.store.Filter(ctx)}
	if err := writeSnapshot(w, initial); err != nil {
		log.Debugf("stream client gone: %v", err)
		return
	}
	flusher.Flush()
	log.Debug("stream client connected")

	for {
		select {
		case <-ctx.Done():
			log.Debug("stream client disconnected")
			return
		case snapshot := <-updates:
			if err := writeSnapshot(w, snapshot); err != nil {
				log.Debugf("stream client gone: %v", err)
				return
			}
			flusher.Flush()
		}
	}
}

func writeSnapshot(w http.ResponseWriter, snapshot Snapshot) error {
	data, err := json.Marshal(SnapshotDTO{
		Filter: snapshot.Filter,
		Events: toDTOs(snapshot.Visible()),
		Total:  len(snapshot.Events),
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data)
	return err
}
