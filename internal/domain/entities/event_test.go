package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotbot/internal/domain"
)

// twoSquadEvent returns an event with two squads of two slots each, numbered
// 1..4, all empty.
func twoSquadEvent(t *testing.T) *Event {
	t.Helper()
	return &Event{
		ID:       1,
		Name:     "Operation Test",
		DateTime: time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC),
		Squads: []Squad{
			{ID: 10, Name: "Alpha", Position: 0, Slots: []Slot{
				{ID: 100, Name: "Lead", Number: 1},
				{ID: 101, Name: "Medic", Number: 2},
			}},
			{ID: 11, Name: "Bravo", Position: 1, Slots: []Slot{
				{ID: 102, Name: "Lead", Number: 3},
				{ID: 103, Name: "AT", Number: 4},
			}},
		},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid event", func(t *testing.T) {
		assert.NoError(t, twoSquadEvent(t).Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		event := twoSquadEvent(t)
		event.Name = ""
		assert.ErrorIs(t, event.Validate(), domain.ErrEventUnnamed)
	})

	t.Run("missing date", func(t *testing.T) {
		event := twoSquadEvent(t)
		event.DateTime = time.Time{}
		assert.ErrorIs(t, event.Validate(), domain.ErrDateTimeMissing)
	})

	t.Run("duplicate slot number across squads", func(t *testing.T) {
		event := twoSquadEvent(t)
		event.Squads[1].Slots[0].Number = 1
		assert.ErrorIs(t, event.Validate(), domain.ErrDuplicateNumber)
	})
}

func TestFindSlot(t *testing.T) {
	event := twoSquadEvent(t)

	slot, err := event.FindSlot(3)
	require.NoError(t, err)
	assert.Equal(t, int64(102), slot.ID)

	_, err = event.FindSlot(99)
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)
}

func TestFindSlotOfUser(t *testing.T) {
	event := twoSquadEvent(t)
	event.Squads[1].Slots[1].UserID = 500

	slot, err := event.FindSlotOfUser(500)
	require.NoError(t, err)
	assert.Equal(t, 4, slot.Number)

	_, err = event.FindSlotOfUser(600)
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)
}

func TestFindSquadByPosition(t *testing.T) {
	event := twoSquadEvent(t)

	squad, err := event.FindSquadByPosition(1)
	require.NoError(t, err)
	assert.Equal(t, "Bravo", squad.Name)

	_, err = event.FindSquadByPosition(2)
	assert.ErrorIs(t, err, domain.ErrSquadNotFound)
	_, err = event.FindSquadByPosition(-1)
	assert.ErrorIs(t, err, domain.ErrSquadNotFound)
}

func TestRandomSlot(t *testing.T) {
	t.Run("skips occupied, blocked and reserve slots", func(t *testing.T) {
		event := twoSquadEvent(t)
		event.Squads[0].Slots[0].UserID = 500
		event.Squads[0].Slots[1].Block("")
		event.Squads[1].Slots[1].UserID = 600
		event.ParkInReserve(700)

		// Only slot 3 is left.
		for i := 0; i < 20; i++ {
			slot, err := event.RandomSlot()
			require.NoError(t, err)
			assert.Equal(t, 3, slot.Number)
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		event := twoSquadEvent(t)
		for i := range event.Squads {
			for j := range event.Squads[i].Slots {
				event.Squads[i].Slots[j].UserID = int64(500 + i*10 + j)
			}
		}
		_, err := event.RandomSlot()
		assert.ErrorIs(t, err, domain.ErrNoSlotAvailable)
	})
}

func TestAddSquadKeepsReserveLast(t *testing.T) {
	event := twoSquadEvent(t)
	event.ParkInReserve(500)
	require.Equal(t, ReserveName, event.Squads[2].Name)

	event.AddSquad(Squad{Name: "Charlie"})

	require.Len(t, event.Squads, 4)
	assert.Equal(t, "Charlie", event.Squads[2].Name)
	assert.Equal(t, ReserveName, event.Squads[3].Name)
	for i, squad := range event.Squads {
		assert.Equal(t, i, squad.Position)
	}
}

func TestParkInReserve(t *testing.T) {
	event := twoSquadEvent(t)

	slot := event.ParkInReserve(500)

	reserve := event.Reserve()
	require.NotNil(t, reserve)
	assert.Equal(t, len(event.Squads)-1, reserve.Position)
	assert.Equal(t, 5, slot.Number, "reserve slots are numbered above every regular slot")
	assert.Equal(t, int64(500), slot.UserID)

	second := event.ParkInReserve(600)
	assert.Equal(t, 6, second.Number)
	assert.Len(t, event.Reserve().Slots, 2)
}

func TestRebalanceReserve(t *testing.T) {
	t.Run("reservists move up in order", func(t *testing.T) {
		event := twoSquadEvent(t)
		event.Squads[0].Slots[0].UserID = 100
		event.Squads[0].Slots[1].UserID = 200
		event.Squads[1].Slots[0].UserID = 300
		event.ParkInReserve(500)
		event.ParkInReserve(600)

		// Free one regular slot, then rebalance.
		event.Squads[0].Slots[1].UserID = EmptyUserID
		event.RebalanceReserve()

		slot, err := event.FindSlotOfUser(500)
		require.NoError(t, err)
		assert.Equal(t, 2, slot.Number, "first reservist takes the freed slot")

		reserve := event.Reserve()
		require.NotNil(t, reserve)
		require.Len(t, reserve.Slots, 1)
		assert.Equal(t, int64(600), reserve.Slots[0].UserID)
	})

	t.Run("empty reserve squad disappears", func(t *testing.T) {
		event := twoSquadEvent(t)
		event.ParkInReserve(500)
		require.NotNil(t, event.Reserve())

		event.RebalanceReserve()

		assert.Nil(t, event.Reserve())
		slot, err := event.FindSlotOfUser(500)
		require.NoError(t, err)
		assert.Equal(t, 1, slot.Number)
	})

	t.Run("no reserve is a no-op", func(t *testing.T) {
		event := twoSquadEvent(t)
		event.RebalanceReserve()
		assert.Len(t, event.Squads, 2)
	})
}

func TestCloneIsIndependent(t *testing.T) {
	event := twoSquadEvent(t)
	event.Squads[0].Slots[0].UserID = 100

	clone := event.Clone()
	clone.Name = "changed"
	clone.Squads[0].Slots[0].UserID = 999
	clone.Squads[1].Name = "changed"

	assert.Equal(t, "Operation Test", event.Name)
	assert.Equal(t, int64(100), event.Squads[0].Slots[0].UserID)
	assert.Equal(t, "Bravo", event.Squads[1].Name)
}
