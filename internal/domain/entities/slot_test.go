package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotbot/internal/domain"
)

func TestAssertSlottable(t *testing.T) {
	tests := []struct {
		name    string
		slot    Slot
		userID  int64
		wantErr error
	}{
		{
			name:   "empty slot accepts anyone",
			slot:   Slot{Number: 1},
			userID: 100,
		},
		{
			name:    "same user already on the slot",
			slot:    Slot{Number: 1, UserID: 100},
			userID:  100,
			wantErr: domain.ErrAlreadySlotted,
		},
		{
			name:    "occupied by someone else",
			slot:    Slot{Number: 1, UserID: 200},
			userID:  100,
			wantErr: domain.ErrSlotOccupied,
		},
		{
			name:    "blocked slot",
			slot:    Slot{Number: 1, UserID: BlockedUserID},
			userID:  100,
			wantErr: domain.ErrSlotBlocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slot.AssertSlottable(tt.userID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAssignClearsReplacement(t *testing.T) {
	slot := Slot{Number: 3, UserID: BlockedUserID, Replacement: "closed"}
	slot.Assign(100)

	assert.Equal(t, int64(100), slot.UserID)
	assert.Empty(t, slot.Replacement)
}

func TestUnslot(t *testing.T) {
	t.Run("occupant leaves", func(t *testing.T) {
		slot := Slot{Number: 1, UserID: 100}
		require.NoError(t, slot.Unslot(100))
		assert.True(t, slot.IsEmpty())
	})

	t.Run("idempotent on empty slot", func(t *testing.T) {
		slot := Slot{Number: 1}
		require.NoError(t, slot.Unslot(100))
		assert.True(t, slot.IsEmpty())
	})

	t.Run("clearing a blocked slot drops the replacement", func(t *testing.T) {
		slot := Slot{Number: 1, UserID: BlockedUserID, Replacement: "closed"}
		require.NoError(t, slot.Unslot(BlockedUserID))
		assert.True(t, slot.IsEmpty())
		assert.Empty(t, slot.Replacement)
	})

	t.Run("rejects a different occupant", func(t *testing.T) {
		slot := Slot{Number: 1, UserID: 200}
		err := slot.Unslot(100)
		assert.ErrorIs(t, err, domain.ErrSlotOccupied)
		assert.Equal(t, int64(200), slot.UserID)
	})
}

func TestBlock(t *testing.T) {
	slot := Slot{Number: 2, UserID: 100}
	slot.Block("maintenance")

	assert.True(t, slot.IsBlocked())
	assert.False(t, slot.IsEmpty())
	assert.Equal(t, "maintenance", slot.Replacement)
}
