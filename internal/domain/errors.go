package domain

import "errors"

// Domain errors.
var (
	ErrEventNotFound = errors.New("event not found")
	ErrSquadNotFound = errors.New("squad not found")
	ErrSlotNotFound  = errors.New("slot not found")
	ErrUserNotFound  = errors.New("user not found")

	ErrUserNotSlotted   = errors.New("user is not slotted in this event")
	ErrAlreadySlotted   = errors.New("user is already on this slot")
	ErrSlotOccupied     = errors.New("slot is occupied by someone else")
	ErrSlotBlocked      = errors.New("slot is blocked")
	ErrNoSlotAvailable  = errors.New("no free slot available")
	ErrReserveImmutable = errors.New("the reserve squad cannot be edited manually")
	ErrSwapArity        = errors.New("a swap requires exactly two parties")
	ErrSwapBlockedSlot  = errors.New("cannot swap with a blocked slot")
	ErrDuplicateNumber  = errors.New("slot number is already in use in this event")
	ErrChannelTaken     = errors.New("another event is already assigned to this channel")
	ErrEventUnnamed     = errors.New("event name must not be empty")
	ErrDateTimeMissing  = errors.New("event date and time must be set")
)

var notFoundErrors = []error{
	ErrEventNotFound,
	ErrSquadNotFound,
	ErrSlotNotFound,
	ErrUserNotFound,
	ErrUserNotSlotted,
}

var conflictErrors = []error{
	ErrAlreadySlotted,
	ErrSlotOccupied,
	ErrSlotBlocked,
	ErrNoSlotAvailable,
	ErrReserveImmutable,
	ErrSwapArity,
	ErrSwapBlockedSlot,
	ErrDuplicateNumber,
	ErrChannelTaken,
	ErrEventUnnamed,
	ErrDateTimeMissing,
}

// IsNotFound reports whether err maps to a 404-equivalent at the boundary.
func IsNotFound(err error) bool {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsConflict reports whether err is a business-rule violation rather than a
// system failure.
func IsConflict(err error) bool {
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
