package output

import (
	"context"
	"time"

	"slotbot/internal/domain"
	"slotbot/internal/domain/entities"
)

// EventStore is the persistence port for the event subtree. One event is one
// unit of work: Modify serializes concurrent writers per event and reports
// the committed writes as change records for the update interceptor.
type EventStore interface {
	Create(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, id int64) (*entities.Event, error)
	// FindByChannel resolves an event through its one-to-one Discord channel
	// assignment.
	FindByChannel(ctx context.Context, channelID int64) (*entities.Event, error)
	ChannelAssigned(ctx context.Context, channelID int64) (bool, error)
	FindAllBetween(ctx context.Context, guildID int64, start, end time.Time, includeHidden bool) ([]entities.Event, error)
	FindAllInFuture(ctx context.Context, now time.Time) ([]entities.Event, error)
	// Modify loads the event, locks it against concurrent writers, applies fn
	// and commits the whole subtree atomically. It returns the committed
	// aggregate together with the before/after diff of the write.
	Modify(ctx context.Context, id int64, fn func(*entities.Event) error) (*entities.Event, []domain.Change, error)
	Delete(ctx context.Context, id int64) error
}
