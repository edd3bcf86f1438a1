package game

// EventKind identifies a session event.
type EventKind uint8

const (
	EventGameStart EventKind = iota
	EventGameOver
	EventLevelComplete
	EventScoreChanged
	EventLifeLost
)

func (k EventKind) String() string {
	switch k {
	case EventGameStart:
		return "game_start"
	case EventGameOver:
		return "game_over"
	case EventLevelComplete:
		return "level_complete"
	case EventScoreChanged:
		return "score_changed"
	case EventLifeLost:
		return "life_lost"
	default:
		return "unknown"
	}
}

// Event carries the session state at the moment it was published.
// Points is the score delta for EventScoreChanged and zero otherwise.
type Event struct {
	Kind   EventKind
	Score  int
	Lives  int
	Level  int
	Points int
}

// Handler receives published events.
type Handler func(Event)

// SubscriptionID identifies a registered handler for Unsubscribe.
type SubscriptionID int

type subscription struct {
	id      SubscriptionID
	kind    EventKind
	all     bool
	handler Handler
}

// EventBus delivers session events synchronously, in registration order.
type EventBus struct {
	subs   []subscription
	nextID SubscriptionID
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{nextID: 1}
}

// Subscribe registers h for events of one kind.
func (b *EventBus) Subscribe(kind EventKind, h Handler) SubscriptionID {
	return b.add(subscription{kind: kind, handler: h})
}

// SubscribeAll registers h for every event kind.
func (b *EventBus) SubscribeAll(h Handler) SubscriptionID {
	return b.add(subscription{all: true, handler: h})
}

func (b *EventBus) add(s subscription) SubscriptionID {
	s.id = b.nextID
	b.nextID++
	b.subs = append(b.subs, s)
	return s.id
}

// Unsubscribe removes a handler. Returns false if id was not registered.
// Safe to call from inside a handler; the event being delivered still
// reaches every handler that was registered when Publish began.
func (b *EventBus) Unsubscribe(id SubscriptionID) bool {
	for i, s := range b.subs {
		if s.id != id {
			continue
		}
		// Copy so an in-flight Publish keeps iterating its own slice
		next := make([]subscription, 0, len(b.subs)-1)
		next = append(next, b.subs[:i]...)
		next = append(next, b.subs[i+1:]...)
		b.subs = next
		return true
	}
	return false
}

// Publish delivers e to every matching handler.
func (b *EventBus) Publish(e Event) {
	subs := b.subs
	for _, s := range subs {
		if s.all || s.kind == e.Kind {
			s.handler(e)
		}
	}
}

// Len returns the number of registered handlers.
func (b *EventBus) Len() int {
	return len(b.subs)
}
