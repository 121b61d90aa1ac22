package entities

import (
	"slotbot/internal/domain"
)

// Occupant sentinels. A slot is empty when its user id is EmptyUserID and
// administratively blocked when it is BlockedUserID; the two never combine
// with a real Discord user id.
const (
	EmptyUserID   int64 = 0
	BlockedUserID int64 = -1
)

// Slot is a single reservable position inside a squad. Its number is unique
// within the owning event.
type Slot struct {
	ID                 int64
	SquadID            int64
	Name               string
	Number             int
	UserID             int64
	Replacement        string
	ReservedForGuildID int64
}

func (s *Slot) IsEmpty() bool {
	return s.UserID == EmptyUserID
}

func (s *Slot) IsBlocked() bool {
	return s.UserID == BlockedUserID
}

func (s *Slot) HasNumber(number int) bool {
	return s.Number == number
}

func (s *Slot) HasUser(userID int64) bool {
	return s.UserID == userID
}

// AssertSlottable checks that the given user may take this slot. Re-slotting
// onto the slot one already holds is a conflict, not a no-op.
func (s *Slot) AssertSlottable(userID int64) error {
	switch {
	case s.HasUser(userID):
		return domain.ErrAlreadySlotted
	case s.IsBlocked():
		return domain.ErrSlotBlocked
	case !s.IsEmpty():
		return domain.ErrSlotOccupied
	}
	return nil
}

// Assign puts the user on the slot. Preconditions (AssertSlottable, the
// displacement of the user's previous slot) are the event engine's job.
func (s *Slot) Assign(userID int64) {
	s.UserID = userID
	s.Replacement = ""
}

// Unslot removes the given user from the slot. Unslotting an already empty
// slot is a no-op; unslotting a slot held by someone else is a conflict.
func (s *Slot) Unslot(userID int64) error {
	if s.HasUser(userID) || s.IsEmpty() {
		s.UserID = EmptyUserID
		s.Replacement = ""
		return nil
	}
	return domain.ErrSlotOccupied
}

// Block marks the slot as administratively unavailable, showing replacement
// instead of an occupant. Any occupant must be parked by the caller first.
func (s *Slot) Block(replacement string) {
	s.UserID = BlockedUserID
	s.Replacement = replacement
}

func (s *Slot) Rename(name string) {
	s.Name = name
}
