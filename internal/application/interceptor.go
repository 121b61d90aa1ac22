package application

import (
	"slotbot/internal/domain"
	"slotbot/internal/domain/entities"
)

// IntentKind is one logical notification category.
type IntentKind int

const (
	IntentRebuildCalendar IntentKind = iota
	IntentUpdateNotifications
	IntentSlotChange
	IntentUpdate
)

// Intent is one notifier call the interceptor decided on. Intents are
// produced inside the domain transaction and dispatched after commit.
type Intent struct {
	Kind  IntentKind
	Event *entities.Event

	// Slot change payload, set for IntentSlotChange only.
	Slot           *entities.Slot
	NewUserID      int64
	PreviousUserID int64
}

// UpdateInterceptor turns committed change records into notification intents.
// Decide is pure: it holds no state and performs no I/O, so the per-write
// trigger rules stay independently testable.
type UpdateInterceptor struct{}

// Decide evaluates the change records of one committed write. Rules:
//
//   - events without a Discord channel are never synced
//   - reserve-squad traffic is internal bookkeeping and never notifies
//   - a date/time change triggers a reminder recompute plus a calendar
//     rebuild and supersedes name/hidden handling in the same write
//   - otherwise a name or hidden change triggers exactly one calendar
//     rebuild, even when both changed
//   - an occupant change of a non-reserve slot reports the old and new user
//   - every remaining tracked write collapses into one generic update
func (UpdateInterceptor) Decide(event *entities.Event, changes []domain.Change) []Intent {
	if event == nil || !event.IsAssigned() {
		return nil
	}

	var intents []Intent
	genericUpdate := false
	calendarRebuilt := false

	for _, change := range changes {
		if change.Reserve {
			continue
		}
		genericUpdate = true

		switch entity := change.Entity.(type) {
		case *entities.Event:
			if change.Field(domain.PropDateTime) != nil {
				intents = append(intents,
					Intent{Kind: IntentUpdateNotifications, Event: event},
					Intent{Kind: IntentRebuildCalendar, Event: event},
				)
				calendarRebuilt = true
				continue
			}
			if !calendarRebuilt &&
				(change.Field(domain.PropName) != nil || change.Field(domain.PropHidden) != nil) {
				intents = append(intents, Intent{Kind: IntentRebuildCalendar, Event: event})
				calendarRebuilt = true
			}
		case *entities.Slot:
			if change.Op != domain.OpUpdate {
				// Creations and deletions only resync the event message.
				continue
			}
			if field := change.Field(domain.PropUserID); field != nil {
				intents = append(intents, Intent{
					Kind:           IntentSlotChange,
					Event:          event,
					Slot:           entity,
					NewUserID:      field.New.(int64),
					PreviousUserID: field.Old.(int64),
				})
			}
		}
	}

	if genericUpdate {
		intents = append(intents, Intent{Kind: IntentUpdate, Event: event})
	}
	return intents
}
