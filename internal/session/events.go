package session

// EventType tags the notification emitted after each applied submit. A
// winning answer emits correct then won; a losing one incorrect then lost.
type EventType string

const (
	EventCorrect   EventType = "correct"
	EventIncorrect EventType = "incorrect"
	EventWon       EventType = "won"
	EventLost      EventType = "lost"
)

// Event carries the counters as they stood when the event fired. The
// presentation layer renders or sonifies these; the core never waits on it.
type Event struct {
	Type     EventType `json:"type"`
	Score    int       `json:"score"`
	Mistakes int       `json:"mistakes"`
	Level    int       `json:"level"`
}

// Listener receives events synchronously during Submit. Implementations
// must return quickly and must not call back into the session.
type Listener func(Event)
