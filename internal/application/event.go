package application

import (
	"context"
	"fmt"
	"time"

	"slotbot/internal/domain"
	"slotbot/internal/domain/entities"
	"slotbot/internal/ports/input"
	"slotbot/internal/ports/output"
)

var _ input.EventUseCase = (*EventService)(nil)

// EventService implements every inbound event operation. Each mutation runs
// as one unit of work on the event subtree; the resulting change records go
// through the update interceptor and the dispatcher after commit.
type EventService struct {
	events      output.EventStore
	users       *UserService
	interceptor UpdateInterceptor
	dispatcher  *Dispatcher
}

func NewEventService(events output.EventStore, users *UserService, dispatcher *Dispatcher) *EventService {
	return &EventService{
		events:     events,
		users:      users,
		dispatcher: dispatcher,
	}
}

// resolveID turns an event reference into an event id, resolving channel
// references through the one-to-one channel mapping.
func (s *EventService) resolveID(ctx context.Context, ref input.EventRef) (int64, error) {
	if ref.ChannelID == 0 {
		return ref.EventID, nil
	}
	event, err := s.events.FindByChannel(ctx, ref.ChannelID)
	if err != nil {
		return 0, err
	}
	return event.ID, nil
}

// modify runs fn inside the event's unit of work and dispatches the resulting
// notification intents after commit.
func (s *EventService) modify(ctx context.Context, ref input.EventRef, fn func(*entities.Event) error) (*entities.Event, error) {
	id, err := s.resolveID(ctx, ref)
	if err != nil {
		return nil, err
	}
	event, changes, err := s.events.Modify(ctx, id, fn)
	if err != nil {
		return nil, err
	}
	s.dispatcher.Dispatch(ctx, s.interceptor.Decide(event, changes))
	return event, nil
}

// CreateEvent validates and persists a new event subtree. Reserved-for guild
// markers carrying the placeholder id are resolved to "no restriction".
func (s *EventService) CreateEvent(ctx context.Context, event *entities.Event) (*entities.Event, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}
	setReservedFor(event)
	if event.ChannelID != 0 {
		taken, err := s.events.ChannelAssigned(ctx, event.ChannelID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrChannelTaken
		}
	}
	if event.CreatorID != 0 {
		if _, err := s.users.Find(ctx, input.UserRef{ID: event.CreatorID}); err != nil {
			return nil, fmt.Errorf("resolve creator: %w", err)
		}
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// setReservedFor resolves the placeholder guild id on every squad and slot to
// "no restriction", applied once across the whole subtree at creation time.
func setReservedFor(event *entities.Event) {
	for i := range event.Squads {
		squad := &event.Squads[i]
		if squad.ReservedForGuildID == entities.PlaceholderGuildID {
			squad.ReservedForGuildID = 0
		}
		for j := range squad.Slots {
			if squad.Slots[j].ReservedForGuildID == entities.PlaceholderGuildID {
				squad.Slots[j].ReservedForGuildID = 0
			}
		}
	}
}

func (s *EventService) UpdateEvent(ctx context.Context, eventID int64, update input.EventUpdate) (*entities.Event, error) {
	return s.modify(ctx, input.ByID(eventID), func(event *entities.Event) error {
		ifPresent(update.Name, &event.Name)
		ifPresent(update.Description, &event.Description)
		ifPresent(update.MissionType, &event.MissionType)
		ifPresent(update.MissionLength, &event.MissionLength)
		ifPresent(update.PictureURL, &event.PictureURL)
		ifPresent(update.Hidden, &event.Hidden)
		ifPresent(update.Shareable, &event.Shareable)
		if update.DateTime != nil {
			event.DateTime = *update.DateTime
		}
		return event.Validate()
	})
}

func ifPresent[T any](src *T, dst *T) {
	if src != nil {
		*dst = *src
	}
}

// ArchiveEvent soft-deletes an event that is still referenced by Discord
// messages.
func (s *EventService) ArchiveEvent(ctx context.Context, ref input.EventRef) error {
	_, err := s.modify(ctx, ref, func(event *entities.Event) error {
		event.Archived = true
		return nil
	})
	return err
}

func (s *EventService) DeleteEvent(ctx context.Context, eventID int64) error {
	return s.events.Delete(ctx, eventID)
}

// AssignChannel binds the event to its Discord channel and messages. Events
// stay invisible to the notifier until this happened.
func (s *EventService) AssignChannel(ctx context.Context, eventID, channelID, infoMessageID, slotlistMessageID int64) (*entities.Event, error) {
	taken, err := s.events.ChannelAssigned(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrChannelTaken
	}
	return s.modify(ctx, input.ByID(eventID), func(event *entities.Event) error {
		event.ChannelID = channelID
		event.InfoMessageID = infoMessageID
		event.SlotlistMessageID = slotlistMessageID
		return nil
	})
}

func (s *EventService) GetEvent(ctx context.Context, ref input.EventRef) (*entities.Event, error) {
	if ref.ChannelID != 0 {
		return s.events.FindByChannel(ctx, ref.ChannelID)
	}
	return s.events.FindByID(ctx, ref.EventID)
}

func (s *EventService) ListEventsBetween(ctx context.Context, guildID int64, start, end time.Time, includeHidden bool) ([]entities.Event, error) {
	return s.events.FindAllBetween(ctx, guildID, start, end, includeHidden)
}

// Slot assigns the user to the numbered slot. If the user already holds a
// different slot in the event it is vacated in the same transaction, so no
// concurrent reader ever sees the user on two slots or on none.
func (s *EventService) Slot(ctx context.Context, ref input.EventRef, slotNumber int, user input.UserRef) (*entities.Event, error) {
	resolved, err := s.users.Find(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.modify(ctx, ref, func(event *entities.Event) error {
		slot, err := event.FindSlot(slotNumber)
		if err != nil {
			return fmt.Errorf("slot %d: %w", slotNumber, err)
		}
		if err := slot.AssertSlottable(resolved.ID); err != nil {
			return fmt.Errorf("slot %d: %w", slotNumber, err)
		}
		event.UnslotIfAlreadySlotted(resolved.ID)
		slot.Assign(resolved.ID)
		event.RebalanceReserve()
		return nil
	})
}

// Unslot removes the user from their current slot.
func (s *EventService) Unslot(ctx context.Context, ref input.EventRef, user input.UserRef) (*entities.Event, error) {
	resolved, err := s.users.Find(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.modify(ctx, ref, func(event *entities.Event) error {
		slot, err := event.FindSlotOfUser(resolved.ID)
		if err != nil {
			return domain.ErrUserNotSlotted
		}
		if err := slot.Unslot(resolved.ID); err != nil {
			return err
		}
		event.RebalanceReserve()
		return nil
	})
}

// UnslotNumber clears whichever occupant holds the numbered slot and reports
// the removed user id.
func (s *EventService) UnslotNumber(ctx context.Context, ref input.EventRef, slotNumber int) (*entities.Event, int64, error) {
	var removed int64
	event, err := s.modify(ctx, ref, func(event *entities.Event) error {
		slot, err := event.FindSlot(slotNumber)
		if err != nil {
			return fmt.Errorf("slot %d: %w", slotNumber, err)
		}
		removed = slot.UserID
		if err := slot.Unslot(removed); err != nil {
			return err
		}
		event.RebalanceReserve()
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return event, removed, nil
}

// RandomSlot assigns the user to a uniformly chosen empty slot outside the
// reserve. Blocked slots are never candidates.
func (s *EventService) RandomSlot(ctx context.Context, ref input.EventRef, user input.UserRef) (*entities.Event, int, error) {
	resolved, err := s.users.Find(ctx, user)
	if err != nil {
		return nil, 0, err
	}
	var number int
	event, err := s.modify(ctx, ref, func(event *entities.Event) error {
		slot, err := event.RandomSlot()
		if err != nil {
			return err
		}
		number = slot.Number
		event.UnslotIfAlreadySlotted(resolved.ID)
		slot.Assign(resolved.ID)
		event.RebalanceReserve()
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return event, number, nil
}

// AddSlot appends a slot to the squad at the given position. The reserve
// cannot receive manual slots and slot numbers stay unique per event.
func (s *EventService) AddSlot(ctx context.Context, ref input.EventRef, squadPosition int, spec input.SlotSpec) (*entities.Event, error) {
	return s.modify(ctx, ref, func(event *entities.Event) error {
		squad, err := event.FindSquadByPosition(squadPosition)
		if err != nil {
			return err
		}
		if squad.IsReserve() {
			return domain.ErrReserveImmutable
		}
		if _, err := event.FindSlot(spec.Number); err == nil {
			return fmt.Errorf("slot %d: %w", spec.Number, domain.ErrDuplicateNumber)
		}
		reservedFor := spec.ReservedForGuildID
		if reservedFor == entities.PlaceholderGuildID {
			reservedFor = 0
		}
		squad.AddSlot(entities.Slot{
			Name:               spec.Name,
			Number:             spec.Number,
			ReservedForGuildID: reservedFor,
		})
		event.RebalanceReserve()
		return nil
	})
}

// DeleteSlot removes the numbered slot; a displaced occupant is parked in the
// reserve.
func (s *EventService) DeleteSlot(ctx context.Context, ref input.EventRef, slotNumber int) (*entities.Event, error) {
	return s.modify(ctx, ref, func(event *entities.Event) error {
		slot, err := event.FindSlot(slotNumber)
		if err != nil {
			return fmt.Errorf("slot %d: %w", slotNumber, err)
		}
		squad := event.SquadOf(slot)
		if squad.IsReserve() {
			return domain.ErrReserveImmutable
		}
		occupant := slot.UserID
		squad.DeleteSlot(slotNumber)
		if occupant != entities.EmptyUserID && occupant != entities.BlockedUserID {
			event.ParkInReserve(occupant)
		}
		event.RebalanceReserve()
		return nil
	})
}

func (s *EventService) RenameSlot(ctx context.Context, ref input.EventRef, slotNumber int, name string) (*entities.Event, error) {
	return s.modify(ctx, ref, func(event *entities.Event) error {
		slot, err := event.FindSlot(slotNumber)
		if err != nil {
			return fmt.Errorf("slot %d: %w", slotNumber, err)
		}
		if event.InReserve(slot) {
			return domain.ErrReserveImmutable
		}
		slot.Rename(name)
		return nil
	})
}

// BlockSlot marks the slot unavailable; its occupant, if any, moves to the
// reserve.
func (s *EventService) BlockSlot(ctx context.Context, ref input.EventRef, slotNumber int, replacement string) (*entities.Event, error) {
	return s.modify(ctx, ref, func(event *entities.Event) error {
		slot, err := event.FindSlot(slotNumber)
		if err != nil {
			return fmt.Errorf("slot %d: %w", slotNumber, err)
		}
		if event.InReserve(slot) {
			return domain.ErrReserveImmutable
		}
		occupant := slot.UserID
		slot.Block(replacement)
		if occupant != entities.EmptyUserID && occupant != entities.BlockedUserID {
			event.ParkInReserve(occupant)
		}
		event.RebalanceReserve()
		return nil
	})
}

func (s *EventService) AddSquad(ctx context.Context, ref input.EventRef, name string) (*entities.Event, error) {
	return s.modify(ctx, ref, func(event *entities.Event) error {
		if name == entities.ReserveName {
			return domain.ErrReserveImmutable
		}
		event.AddSquad(entities.Squad{Name: name})
		return nil
	})
}

// DeleteSquad removes the squad at the given position; displaced occupants
// are parked in the reserve.
func (s *EventService) DeleteSquad(ctx context.Context, ref input.EventRef, position int) (*entities.Event, error) {
	return s.modify(ctx, ref, func(event *entities.Event) error {
		squad, err := event.FindSquadByPosition(position)
		if err != nil {
			return err
		}
		if squad.IsReserve() {
			return domain.ErrReserveImmutable
		}
		var displaced []int64
		for _, slot := range squad.Slots {
			if !slot.IsEmpty() && !slot.IsBlocked() {
				displaced = append(displaced, slot.UserID)
			}
		}
		event.DeleteSquad(position)
		for _, userID := range displaced {
			event.ParkInReserve(userID)
		}
		event.RebalanceReserve()
		return nil
	})
}

func (s *EventService) RenameSquad(ctx context.Context, ref input.EventRef, position int, name string) (*entities.Event, error) {
	return s.modify(ctx, ref, func(event *entities.Event) error {
		squad, err := event.FindSquadByPosition(position)
		if err != nil {
			return err
		}
		if squad.IsReserve() || name == entities.ReserveName {
			return domain.ErrReserveImmutable
		}
		squad.Name = name
		return nil
	})
}

// FindSwapSlots resolves the slots of two slotted users.
func (s *EventService) FindSwapSlots(ctx context.Context, ref input.EventRef, users []input.UserRef) ([2]int, error) {
	var numbers [2]int
	if len(users) != 2 {
		return numbers, domain.ErrSwapArity
	}
	event, err := s.GetEvent(ctx, ref)
	if err != nil {
		return numbers, err
	}
	for i, user := range users {
		resolved, err := s.users.Find(ctx, user)
		if err != nil {
			return numbers, err
		}
		slot, err := event.FindSlotOfUser(resolved.ID)
		if err != nil {
			return numbers, domain.ErrUserNotSlotted
		}
		numbers[i] = slot.Number
	}
	return numbers, nil
}

// FindSwapSlotsByNumber resolves one side by slot number and the other by
// user. Swapping with a blocked slot is rejected.
func (s *EventService) FindSwapSlotsByNumber(ctx context.Context, ref input.EventRef, slotNumber int, user input.UserRef) ([2]int, error) {
	var numbers [2]int
	event, err := s.GetEvent(ctx, ref)
	if err != nil {
		return numbers, err
	}
	target, err := event.FindSlot(slotNumber)
	if err != nil {
		return numbers, fmt.Errorf("slot %d: %w", slotNumber, err)
	}
	if target.IsBlocked() {
		return numbers, domain.ErrSwapBlockedSlot
	}
	resolved, err := s.users.Find(ctx, user)
	if err != nil {
		return numbers, err
	}
	own, err := event.FindSlotOfUser(resolved.ID)
	if err != nil {
		return numbers, domain.ErrUserNotSlotted
	}
	return [2]int{own.Number, target.Number}, nil
}

// Swap exchanges the occupants of exactly two slots atomically.
func (s *EventService) Swap(ctx context.Context, ref input.EventRef, slotNumbers []int) (*entities.Event, error) {
	if len(slotNumbers) != 2 {
		return nil, domain.ErrSwapArity
	}
	return s.modify(ctx, ref, func(event *entities.Event) error {
		first, err := event.FindSlot(slotNumbers[0])
		if err != nil {
			return fmt.Errorf("slot %d: %w", slotNumbers[0], err)
		}
		second, err := event.FindSlot(slotNumbers[1])
		if err != nil {
			return fmt.Errorf("slot %d: %w", slotNumbers[1], err)
		}
		if first.IsBlocked() || second.IsBlocked() {
			return domain.ErrSwapBlockedSlot
		}
		first.UserID, second.UserID = second.UserID, first.UserID
		return nil
	})
}
