package events

import (
	"fmt"
	"sync"

	console "gestaotemplate/internal/utils/logger"
)

var log = console.New("EVENTS")

// StorageDeleteFailed carries a storage key (string) whose removal failed
// after its row was already updated or deleted.
const StorageDeleteFailed = "storage.delete_failed"

// RecordActions are published for every row change as Record(table, action).
var RecordActions = []string{"created", "updated", "deleted"}

// Record names the event of action on a row of table, e.g. "anuncios.created".
func Record(table, action string) string {
	return table + "." + action
}

// RecordID extracts the row id carried by a record event: the id itself on
// deletes, the row on creates and updates.
func RecordID(data interface{}) string {
	switch v := data.(type) {
	case string:
		return v
	case interface{ GetID() string }:
		return v.GetID()
	}
	return fmt.Sprintf("%v", data)
}

type EventHandler func(interface{})

type EventBus struct {
	handlers map[string][]EventHandler
	mu       sync.RWMutex
}

var defaultBus = NewEventBus()

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]EventHandler),
	}
}

// On registers a handler for an event
func (bus *EventBus) On(event string, handler EventHandler) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	bus.handlers[event] = append(bus.handlers[event], handler)
	log.Debug("Registered handler for event: %s", event)
}

// OnRecords registers handler for every record event of tables.
func (bus *EventBus) OnRecords(tables []string, handler func(event, id string)) {
	for _, table := range tables {
		for _, action := range RecordActions {
			event := Record(table, action)
			bus.On(event, func(data interface{}) {
				handler(event, RecordID(data))
			})
		}
	}
}

// Emit runs every handler of event in its own goroutine.
func (bus *EventBus) Emit(event string, data interface{}) {
	bus.mu.RLock()
	handlers := bus.handlers[event]
	bus.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	log.Debug("Emitting event: %s", event)

	for _, handler := range handlers {
		go func(h EventHandler) {
			defer func() {
				if r := recover(); r != nil {
					_ = log.Error("Panic in event handler for %s", fmt.Errorf("panic: %v", r), event)
				}
			}()
			h(data)
		}(handler)
	}
}

// On Global event functions that use the default event bus
func On(event string, handler EventHandler) {
	defaultBus.On(event, handler)
}

func Emit(event string, data interface{}) {
	defaultBus.Emit(event, data)
}

// LogRecords logs every record event of tables at debug level.
func LogRecords(tables ...string) {
	defaultBus.OnRecords(tables, func(event, id string) {
		log.Debug("📝 %s %s", event, id)
	})
}
