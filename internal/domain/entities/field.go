package entities

// EventField is one ordered title/text pair shown in the event details.
type EventField struct {
	ID      int64
	EventID int64
	Title   string
	Text    string
}
