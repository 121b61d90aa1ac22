package entities

import (
	"slotbot/internal/domain"
)

// ReserveName is the sentinel squad name that marks the reserve. The reserve
// holds displaced users, is excluded from manual editing and never triggers
// external notifications.
const ReserveName = "Reserve"

// Squad is a named, ordered group of slots. Its lifetime is bound to the
// owning event.
type Squad struct {
	ID                 int64
	EventID            int64
	Name               string
	Position           int
	ReservedForGuildID int64
	Slots              []Slot
}

func (s *Squad) IsReserve() bool {
	return s.Name == ReserveName
}

// FindSlot returns the slot with the given number.
func (s *Squad) FindSlot(number int) (*Slot, error) {
	for i := range s.Slots {
		if s.Slots[i].HasNumber(number) {
			return &s.Slots[i], nil
		}
	}
	return nil, domain.ErrSlotNotFound
}

// FindSlotOfUser returns the slot currently occupied by the given user.
func (s *Squad) FindSlotOfUser(userID int64) (*Slot, error) {
	for i := range s.Slots {
		if s.Slots[i].HasUser(userID) {
			return &s.Slots[i], nil
		}
	}
	return nil, domain.ErrSlotNotFound
}

// AddSlot appends the slot to the squad.
func (s *Squad) AddSlot(slot Slot) {
	slot.SquadID = s.ID
	s.Slots = append(s.Slots, slot)
}

// DeleteSlot removes the slot with the given number from the squad.
func (s *Squad) DeleteSlot(number int) {
	for i := range s.Slots {
		if s.Slots[i].HasNumber(number) {
			s.Slots = append(s.Slots[:i], s.Slots[i+1:]...)
			return
		}
	}
}
