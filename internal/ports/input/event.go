package input

import (
	"context"
	"time"

	"slotbot/internal/domain/entities"
)

// EventUseCase is the inbound operation contract invoked by the Discord bot
// and the HTTP API. eventRef arguments accept either an opaque event id or a
// Discord channel id.
type EventUseCase interface {
	CreateEvent(ctx context.Context, event *entities.Event) (*entities.Event, error)
	UpdateEvent(ctx context.Context, eventID int64, update EventUpdate) (*entities.Event, error)
	ArchiveEvent(ctx context.Context, ref EventRef) error
	DeleteEvent(ctx context.Context, eventID int64) error
	AssignChannel(ctx context.Context, eventID, channelID, infoMessageID, slotlistMessageID int64) (*entities.Event, error)
	GetEvent(ctx context.Context, ref EventRef) (*entities.Event, error)
	ListEventsBetween(ctx context.Context, guildID int64, start, end time.Time, includeHidden bool) ([]entities.Event, error)

	Slot(ctx context.Context, ref EventRef, slotNumber int, user UserRef) (*entities.Event, error)
	Unslot(ctx context.Context, ref EventRef, user UserRef) (*entities.Event, error)
	// UnslotNumber clears the numbered slot and reports the removed occupant.
	UnslotNumber(ctx context.Context, ref EventRef, slotNumber int) (*entities.Event, int64, error)
	RandomSlot(ctx context.Context, ref EventRef, user UserRef) (*entities.Event, int, error)

	AddSlot(ctx context.Context, ref EventRef, squadPosition int, slot SlotSpec) (*entities.Event, error)
	DeleteSlot(ctx context.Context, ref EventRef, slotNumber int) (*entities.Event, error)
	RenameSlot(ctx context.Context, ref EventRef, slotNumber int, name string) (*entities.Event, error)
	BlockSlot(ctx context.Context, ref EventRef, slotNumber int, replacement string) (*entities.Event, error)

	AddSquad(ctx context.Context, ref EventRef, name string) (*entities.Event, error)
	DeleteSquad(ctx context.Context, ref EventRef, position int) (*entities.Event, error)
	RenameSquad(ctx context.Context, ref EventRef, position int, name string) (*entities.Event, error)

	// FindSwapSlots resolves the two slot numbers a swap would exchange,
	// either from two slotted users or from one slot number and one user.
	FindSwapSlots(ctx context.Context, ref EventRef, users []UserRef) ([2]int, error)
	FindSwapSlotsByNumber(ctx context.Context, ref EventRef, slotNumber int, user UserRef) ([2]int, error)
	// Swap exchanges the occupants of exactly two slots.
	Swap(ctx context.Context, ref EventRef, slotNumbers []int) (*entities.Event, error)
}
