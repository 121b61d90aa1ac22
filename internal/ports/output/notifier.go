package output

import (
	"context"

	"slotbot/internal/domain/entities"
)

// EventNotifier is the outbound contract towards the external messaging
// side: Discord message sync, calendar files and reminder scheduling. Calls
// happen after the domain transaction committed and are fire-and-forget from
// the engine's perspective; a failing notifier never rolls anything back.
type EventNotifier interface {
	// RebuildCalendar regenerates the calendar the event is published in.
	RebuildCalendar(ctx context.Context, eventID int64) error
	// UpdateEventNotifications recomputes the reminder schedule after a
	// date/time change.
	UpdateEventNotifications(ctx context.Context, eventID int64) error
	// InformAboutSlotChange reports an occupant change of a single slot,
	// carrying both the previous and the new occupant (0 = empty).
	InformAboutSlotChange(ctx context.Context, event *entities.Event, slot *entities.Slot, newUserID, previousUserID int64) error
	// Update resyncs the externally visible event representation (the
	// Discord slotlist message).
	Update(ctx context.Context, event *entities.Event) error
}
