package events

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// EventType represents different event types
type EventType string

const (
	LedgerChanged     EventType = "LEDGER_CHANGED"
	TradeExecuted     EventType = "TRADE_EXECUTED"
	InsightsGenerated EventType = "INSIGHTS_GENERATED"
	AlertTriggered    EventType = "ALERT_TRIGGERED"
	QuotesRefreshed   EventType = "QUOTES_REFRESHED"
)

// Event represents a system event
type Event struct {
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
	Module    string                 `json:"module"`
}

// Listener receives emitted events. Listeners must not block; anything
// expensive belongs in a goroutine owned by the listener.
type Listener func(Event)

// Manager handles event emission and subscription. It replaces the
// publish/subscribe reactivity the UI used to own: mutating services emit,
// analytics consumers subscribe and recompute.
type Manager struct {
	mu        sync.RWMutex
	listeners map[EventType][]Listener
	log       zerolog.Logger
}

// NewManager creates a new event manager
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		listeners: make(map[EventType][]Listener),
		log:       log.With().Str("service", "events").Logger(),
	}
}

// Subscribe registers a listener for an event type
func (m *Manager) Subscribe(eventType EventType, fn Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners[eventType] = append(m.listeners[eventType], fn)
}

// Emit emits an event to all listeners registered for its type
func (m *Manager) Emit(eventType EventType, module string, data map[string]interface{}) {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
		Module:    module,
	}

	m.mu.RLock()
	listeners := m.listeners[eventType]
	m.mu.RUnlock()

	m.log.Debug().
		Str("event_type", string(eventType)).
		Str("module", module).
		Int("listeners", len(listeners)).
		Msg("Event emitted")

	for _, fn := range listeners {
		fn(event)
	}
}
