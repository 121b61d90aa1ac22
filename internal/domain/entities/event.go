package entities

import (
	"math/rand"
	"time"

	"slotbot/internal/domain"
)

// Event is the aggregate root of the slotting domain: a scheduled activity
// with an ordered list of squads, each holding numbered slots. All navigation
// (slot by number, slot by user, squad by position) goes through the event;
// child entities carry parent ids instead of live back-pointers.
type Event struct {
	ID            int64
	Name          string
	DateTime      time.Time
	Description   string
	MissionType   string
	MissionLength string
	PictureURL    string
	CreatorID     int64
	Hidden        bool
	Shareable     bool
	Archived      bool
	OwnerGuildID  int64

	// Discord assignment. Zero values mean the event has no channel yet and
	// must not be synced externally.
	ChannelID         int64
	InfoMessageID     int64
	SlotlistMessageID int64

	Squads  []Squad
	Details []EventField

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAssigned reports whether the event is bound to a Discord channel.
func (e *Event) IsAssigned() bool {
	return e.ChannelID != 0
}

// Validate applies the structural invariants checked on creation.
func (e *Event) Validate() error {
	if e.Name == "" {
		return domain.ErrEventUnnamed
	}
	if e.DateTime.IsZero() {
		return domain.ErrDateTimeMissing
	}
	return e.assertUniqueSlotNumbers()
}

func (e *Event) assertUniqueSlotNumbers() error {
	seen := make(map[int]struct{})
	for i := range e.Squads {
		for j := range e.Squads[i].Slots {
			number := e.Squads[i].Slots[j].Number
			if _, dup := seen[number]; dup {
				return domain.ErrDuplicateNumber
			}
			seen[number] = struct{}{}
		}
	}
	return nil
}

// FindSlot returns the unique slot with the given number, searching all
// squads.
func (e *Event) FindSlot(number int) (*Slot, error) {
	for i := range e.Squads {
		if slot, err := e.Squads[i].FindSlot(number); err == nil {
			return slot, nil
		}
	}
	return nil, domain.ErrSlotNotFound
}

// FindSlotOfUser returns the slot currently occupied by the given user. The
// engine guarantees a user holds at most one slot per event.
func (e *Event) FindSlotOfUser(userID int64) (*Slot, error) {
	for i := range e.Squads {
		if slot, err := e.Squads[i].FindSlotOfUser(userID); err == nil {
			return slot, nil
		}
	}
	return nil, domain.ErrSlotNotFound
}

// FindSquadByPosition returns the squad at the 0-indexed position.
func (e *Event) FindSquadByPosition(position int) (*Squad, error) {
	if position < 0 || position >= len(e.Squads) {
		return nil, domain.ErrSquadNotFound
	}
	return &e.Squads[position], nil
}

// SquadOf returns the squad containing the given slot, or nil. The slot must
// be a pointer obtained from this event's tree.
func (e *Event) SquadOf(slot *Slot) *Squad {
	for i := range e.Squads {
		for j := range e.Squads[i].Slots {
			if &e.Squads[i].Slots[j] == slot {
				return &e.Squads[i]
			}
		}
	}
	return nil
}

// InReserve reports whether the given slot belongs to the reserve squad.
func (e *Event) InReserve(slot *Slot) bool {
	squad := e.SquadOf(slot)
	return squad != nil && squad.IsReserve()
}

// Reserve returns the reserve squad, or nil if the event has none.
func (e *Event) Reserve() *Squad {
	for i := range e.Squads {
		if e.Squads[i].IsReserve() {
			return &e.Squads[i]
		}
	}
	return nil
}

// UnslotIfAlreadySlotted clears the user's current slot, if any. Used for the
// implicit displacement before assigning a new slot.
func (e *Event) UnslotIfAlreadySlotted(userID int64) {
	if slot, err := e.FindSlotOfUser(userID); err == nil {
		slot.UserID = EmptyUserID
	}
}

// randomSlotCandidates returns the slots eligible for random assignment:
// empty, not blocked and outside the reserve.
func (e *Event) randomSlotCandidates() []*Slot {
	var candidates []*Slot
	for i := range e.Squads {
		if e.Squads[i].IsReserve() {
			continue
		}
		for j := range e.Squads[i].Slots {
			slot := &e.Squads[i].Slots[j]
			if slot.IsEmpty() {
				candidates = append(candidates, slot)
			}
		}
	}
	return candidates
}

// RandomSlot picks one eligible slot uniformly at random.
func (e *Event) RandomSlot() (*Slot, error) {
	candidates := e.randomSlotCandidates()
	if len(candidates) == 0 {
		return nil, domain.ErrNoSlotAvailable
	}
	return candidates[rand.Intn(len(candidates))], nil
}

// MaxSlotNumber returns the highest slot number in use, 0 for a slotless
// event.
func (e *Event) MaxSlotNumber() int {
	max := 0
	for i := range e.Squads {
		for j := range e.Squads[i].Slots {
			if n := e.Squads[i].Slots[j].Number; n > max {
				max = n
			}
		}
	}
	return max
}

// AddSquad appends a squad, keeping the reserve in last position.
func (e *Event) AddSquad(squad Squad) {
	squad.EventID = e.ID
	if reserve := e.Reserve(); reserve != nil {
		last := len(e.Squads) - 1
		e.Squads = append(e.Squads[:last], squad, e.Squads[last])
	} else {
		e.Squads = append(e.Squads, squad)
	}
	e.renumberSquads()
}

// DeleteSquad removes the squad at the given position.
func (e *Event) DeleteSquad(position int) {
	e.Squads = append(e.Squads[:position], e.Squads[position+1:]...)
	e.renumberSquads()
}

func (e *Event) renumberSquads() {
	for i := range e.Squads {
		e.Squads[i].Position = i
	}
}

// ensureReserve returns the reserve squad, creating it as the last squad when
// missing.
func (e *Event) ensureReserve() *Squad {
	if reserve := e.Reserve(); reserve != nil {
		return reserve
	}
	e.Squads = append(e.Squads, Squad{
		EventID:  e.ID,
		Name:     ReserveName,
		Position: len(e.Squads),
	})
	return &e.Squads[len(e.Squads)-1]
}

// ParkInReserve moves the user onto a fresh reserve slot. The reserve squad
// is created on demand; reserve slots are numbered above every regular slot.
func (e *Event) ParkInReserve(userID int64) *Slot {
	reserve := e.ensureReserve()
	reserve.AddSlot(Slot{
		Name:   ReserveName,
		Number: e.MaxSlotNumber() + 1,
		UserID: userID,
	})
	return &reserve.Slots[len(reserve.Slots)-1]
}

// RebalanceReserve moves reservists up into freed regular slots (in reserve
// order) and removes the reserve squad once it no longer holds anyone. Called
// by the engine after any mutation that can change slot availability.
func (e *Event) RebalanceReserve() {
	reserve := e.Reserve()
	if reserve == nil {
		return
	}
	for i := range reserve.Slots {
		reservist := &reserve.Slots[i]
		if reservist.IsEmpty() || reservist.IsBlocked() {
			continue
		}
		target := e.firstFreeRegularSlot()
		if target == nil {
			break
		}
		target.Assign(reservist.UserID)
		reservist.UserID = EmptyUserID
	}

	occupied := reserve.Slots[:0]
	for _, slot := range reserve.Slots {
		if !slot.IsEmpty() {
			occupied = append(occupied, slot)
		}
	}
	reserve.Slots = occupied
	if len(reserve.Slots) == 0 {
		e.DeleteSquad(reserve.Position)
	}
}

func (e *Event) firstFreeRegularSlot() *Slot {
	for i := range e.Squads {
		if e.Squads[i].IsReserve() {
			continue
		}
		for j := range e.Squads[i].Slots {
			if e.Squads[i].Slots[j].IsEmpty() {
				return &e.Squads[i].Slots[j]
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the event subtree. The persistence layer
// snapshots the aggregate before mutating it so committed changes can be
// diffed for the update interceptor.
func (e *Event) Clone() *Event {
	clone := *e
	clone.Squads = make([]Squad, len(e.Squads))
	for i := range e.Squads {
		clone.Squads[i] = e.Squads[i]
		clone.Squads[i].Slots = append([]Slot(nil), e.Squads[i].Slots...)
	}
	clone.Details = append([]EventField(nil), e.Details...)
	return &clone
}
