package discord

import (
	"errors"

	"slotbot/internal/domain"
)

// MessageKey maps a domain error to a translation key. This is the single
// place where engine errors turn into user-facing message identifiers.
func MessageKey(err error) string {
	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		return "event.notfound"
	case errors.Is(err, domain.ErrSlotNotFound):
		return "event.slot.notfound"
	case errors.Is(err, domain.ErrSquadNotFound):
		return "event.squad.notfound"
	case errors.Is(err, domain.ErrAlreadySlotted):
		return "event.slot.already"
	case errors.Is(err, domain.ErrSlotOccupied):
		return "event.slot.occupied"
	case errors.Is(err, domain.ErrSlotBlocked):
		return "event.slot.blocked"
	case errors.Is(err, domain.ErrUserNotSlotted):
		return "event.unslot.none"
	case errors.Is(err, domain.ErrNoSlotAvailable):
		return "event.random.none"
	case errors.Is(err, domain.ErrReserveImmutable):
		return "event.reserve.immutable"
	case errors.Is(err, domain.ErrSwapArity):
		return "event.swap.arity"
	case errors.Is(err, domain.ErrSwapBlockedSlot):
		return "event.swap.blocked"
	case errors.Is(err, domain.ErrDuplicateNumber):
		return "event.addslot.duplicate"
	default:
		return "generic.error"
	}
}
