package event_bus

const StoreChangedType EventType = "event.store.changed"

// StoreChanged is published after every completed store mutation.
type StoreChanged struct {
	// Operation is one of "add", "edit", "delete" or "filter".
	Operation string
	// EventId is the id the operation targeted, 0 for filter changes.
	EventId int
	Events  []EventRecord
	Filter  string
}

// EventRecord mirrors event.Event without importing it, so the bus stays a leaf package.
type EventRecord struct {
	Id       int
	Date     string
	Title    string
	Category string
}
