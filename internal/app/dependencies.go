package app

import (
	"fmt"

	"github.com/klokku/eventboard/internal/config"
	"github.com/klokku/eventboard/internal/event_bus"
	"github.com/klokku/eventboard/internal/utils"
	"github.com/klokku/eventboard/pkg/event"
	"github.com/klokku/eventboard/pkg/export"
	"github.com/klokku/eventboard/pkg/router"
	"github.com/klokku/eventboard/pkg/view"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds the shared store and every handler built on top of it.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	EventStore   *event.StoreImpl
	EventHandler *event.Handler
	EventStream  *event.Stream

	Selector *router.Selector
	Shell    *view.Shell

	ExportHandler *export.Handler
}

// BuildDependencies creates the single store instance and passes it to every consumer.
func BuildDependencies(cfg config.Application) (*Dependencies, error) {
	strategy, err := event.ParseIdStrategy(cfg.Store.IdStrategy)
	if err != nil {
		return nil, fmt.Errorf("invalid store configuration: %w", err)
	}

	deps := &Dependencies{}
	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = utils.SystemClock{}

	var seed []event.Event
	if cfg.Store.Seed {
		seed = event.DefaultSeed()
	}
	deps.EventStore = event.NewStore(deps.EventBus, event.Options{
		IdStrategy: strategy,
		Categories: cfg.Categories,
		Seed:       seed,
	})
	deps.EventHandler = event.NewHandler(deps.EventStore)
	deps.EventStream = event.NewStream(deps.EventStore, deps.EventBus)

	deps.Selector = router.NewSelector()
	deps.Shell = view.NewShell(cfg.Title, deps.EventStore, deps.Selector)

	deps.ExportHandler = export.NewHandler(
		deps.EventStore,
		export.NewIcsRenderer(deps.Clock, cfg.Title),
		export.NewCsvRenderer(),
	)

	event_bus.SubscribeTyped(deps.EventBus, event_bus.StoreChangedType, func(e event_bus.EventT[event_bus.StoreChanged]) error {
		log.WithFields(log.Fields{
			"operation": e.Data.Operation,
			"event_id":  e.Data.EventId,
			"events":    len(e.Data.Events),
			"filter":    e.Data.Filter,
		}).Info("store changed")
		return nil
	})

	return deps, nil
}
