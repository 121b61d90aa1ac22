package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotbot/internal/domain"
	"slotbot/internal/domain/entities"
)

func assignedEvent() *entities.Event {
	return &entities.Event{
		ID:                1,
		Name:              "Operation Test",
		DateTime:          time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC),
		ChannelID:         4242,
		InfoMessageID:     1,
		SlotlistMessageID: 2,
	}
}

func kinds(intents []Intent) []IntentKind {
	out := make([]IntentKind, 0, len(intents))
	for _, intent := range intents {
		out = append(out, intent.Kind)
	}
	return out
}

func TestDecideUnassignedEventIsSilent(t *testing.T) {
	event := assignedEvent()
	event.ChannelID = 0

	intents := UpdateInterceptor{}.Decide(event, []domain.Change{
		{Op: domain.OpUpdate, Entity: event, Fields: []domain.FieldChange{
			{Name: domain.PropName, Old: "a", New: "b"},
		}},
	})
	assert.Empty(t, intents)
}

func TestDecideDescriptionOnlyChange(t *testing.T) {
	event := assignedEvent()

	intents := UpdateInterceptor{}.Decide(event, []domain.Change{
		{Op: domain.OpUpdate, Entity: event, Fields: []domain.FieldChange{
			{Name: domain.PropDescription, Old: "a", New: "b"},
		}},
	})

	// No calendar rebuild, just the generic message resync.
	assert.Equal(t, []IntentKind{IntentUpdate}, kinds(intents))
}

func TestDecideNameAndHiddenTriggerOneRebuild(t *testing.T) {
	event := assignedEvent()

	intents := UpdateInterceptor{}.Decide(event, []domain.Change{
		{Op: domain.OpUpdate, Entity: event, Fields: []domain.FieldChange{
			{Name: domain.PropName, Old: "a", New: "b"},
			{Name: domain.PropHidden, Old: false, New: true},
		}},
	})

	assert.Equal(t, []IntentKind{IntentRebuildCalendar, IntentUpdate}, kinds(intents))
}

func TestDecideDateTimeSupersedesNameHandling(t *testing.T) {
	event := assignedEvent()

	intents := UpdateInterceptor{}.Decide(event, []domain.Change{
		{Op: domain.OpUpdate, Entity: event, Fields: []domain.FieldChange{
			{Name: domain.PropName, Old: "a", New: "b"},
			{Name: domain.PropDateTime, Old: time.Now(), New: time.Now().Add(time.Hour)},
		}},
	})

	assert.Equal(t,
		[]IntentKind{IntentUpdateNotifications, IntentRebuildCalendar, IntentUpdate},
		kinds(intents))
}

func TestDecideSlotOccupantChange(t *testing.T) {
	event := assignedEvent()
	slot := &entities.Slot{Number: 3, UserID: 500}

	intents := UpdateInterceptor{}.Decide(event, []domain.Change{
		{Op: domain.OpUpdate, Entity: slot, Fields: []domain.FieldChange{
			{Name: domain.PropUserID, Old: int64(200), New: int64(500)},
		}},
	})

	require.Equal(t, []IntentKind{IntentSlotChange, IntentUpdate}, kinds(intents))
	assert.Equal(t, int64(500), intents[0].NewUserID)
	assert.Equal(t, int64(200), intents[0].PreviousUserID)
	assert.Same(t, slot, intents[0].Slot)
}

func TestDecideReserveChangesAreSilent(t *testing.T) {
	event := assignedEvent()

	intents := UpdateInterceptor{}.Decide(event, []domain.Change{
		{Op: domain.OpUpdate, Reserve: true, Entity: &entities.Slot{Number: 9}, Fields: []domain.FieldChange{
			{Name: domain.PropUserID, Old: int64(0), New: int64(500)},
		}},
		{Op: domain.OpCreate, Reserve: true, Entity: &entities.Slot{Number: 10}},
	})

	assert.Empty(t, intents)
}

func TestDecideSlotCreateOnlyResyncs(t *testing.T) {
	event := assignedEvent()

	intents := UpdateInterceptor{}.Decide(event, []domain.Change{
		{Op: domain.OpCreate, Entity: &entities.Slot{Number: 5}},
	})

	assert.Equal(t, []IntentKind{IntentUpdate}, kinds(intents))
}
