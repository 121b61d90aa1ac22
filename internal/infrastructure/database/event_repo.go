package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"slotbot/internal/domain"
	"slotbot/internal/domain/entities"
	"slotbot/internal/ports/output"
)

var _ output.EventStore = (*EventStore)(nil)

// EventStore persists the event subtree in PostgreSQL. One event is one unit
// of work: Modify locks the event row, so concurrent writers targeting the
// same event serialize while different events proceed independently.
type EventStore struct {
	pool *pgxpool.Pool
}

func NewEventStore(pool *pgxpool.Pool) *EventStore {
	return &EventStore{pool: pool}
}

const eventColumns = `id, name, date_time, description, mission_type, mission_length,
	picture_url, creator_id, hidden, shareable, archived, owner_guild_id,
	channel_id, info_message_id, slotlist_message_id, created_at, updated_at`

func (s *EventStore) Create(ctx context.Context, event *entities.Event) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO events (name, date_time, description, mission_type, mission_length,
			picture_url, creator_id, hidden, shareable, archived, owner_guild_id,
			channel_id, info_message_id, slotlist_message_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at`,
		event.Name, event.DateTime, event.Description, event.MissionType, event.MissionLength,
		event.PictureURL, event.CreatorID, event.Hidden, event.Shareable, event.Archived,
		event.OwnerGuildID, event.ChannelID, event.InfoMessageID, event.SlotlistMessageID,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	for i := range event.Squads {
		squad := &event.Squads[i]
		squad.EventID = event.ID
		squad.Position = i
		if err := insertSquad(ctx, tx, squad); err != nil {
			return err
		}
		for j := range squad.Slots {
			squad.Slots[j].SquadID = squad.ID
			if err := insertSlot(ctx, tx, &squad.Slots[j]); err != nil {
				return err
			}
		}
	}
	for i := range event.Details {
		event.Details[i].EventID = event.ID
		if err := insertDetail(ctx, tx, &event.Details[i], i); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *EventStore) FindByID(ctx context.Context, id int64) (*entities.Event, error) {
	return loadEvent(ctx, s.pool, id)
}

func (s *EventStore) FindByChannel(ctx context.Context, channelID int64) (*entities.Event, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`SELECT id FROM events WHERE channel_id = $1`, channelID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find event by channel: %w", err)
	}
	return loadEvent(ctx, s.pool, id)
}

func (s *EventStore) ChannelAssigned(ctx context.Context, channelID int64) (bool, error) {
	var assigned bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM events WHERE channel_id = $1)`, channelID).Scan(&assigned)
	if err != nil {
		return false, fmt.Errorf("check channel assignment: %w", err)
	}
	return assigned, nil
}

// FindAllBetween returns shallow events (no squads) owned by the guild in the
// given period, for calendar and listing purposes. guildID 0 matches all
// guilds.
func (s *EventStore) FindAllBetween(ctx context.Context, guildID int64, start, end time.Time, includeHidden bool) ([]entities.Event, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE ($1 = 0 OR owner_guild_id = $1)
		  AND date_time BETWEEN $2 AND $3
		  AND (NOT hidden OR $4)
		  AND NOT archived
		ORDER BY date_time`,
		guildID, start, end, includeHidden)
	if err != nil {
		return nil, fmt.Errorf("find events between: %w", err)
	}
	return scanEvents(rows)
}

func (s *EventStore) FindAllInFuture(ctx context.Context, now time.Time) ([]entities.Event, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE date_time > $1 AND NOT archived
		ORDER BY date_time`, now)
	if err != nil {
		return nil, fmt.Errorf("find future events: %w", err)
	}
	return scanEvents(rows)
}

// Modify runs one unit of work against the event subtree. The event row is
// locked with SELECT ... FOR UPDATE before the aggregate is loaded, so fn
// always validates its preconditions against the latest committed state. The
// returned change records are the diff between the pre-mutation snapshot and
// the committed tree.
func (s *EventStore) Modify(ctx context.Context, id int64, fn func(*entities.Event) error) (*entities.Event, []domain.Change, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var locked int64
	err = tx.QueryRow(ctx, `SELECT id FROM events WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("lock event: %w", err)
	}

	event, err := loadEvent(ctx, tx, id)
	if err != nil {
		return nil, nil, err
	}
	before := event.Clone()

	if err := fn(event); err != nil {
		return nil, nil, err
	}

	if err := saveTree(ctx, tx, before, event); err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit: %w", err)
	}
	return event, entities.Diff(before, event), nil
}

func (s *EventStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// saveTree reconciles the mutated aggregate against its snapshot: updated
// rows are written, new children inserted (ids assigned in place), removed
// children deleted. Child deletion cascades at the schema level.
func saveTree(ctx context.Context, tx pgx.Tx, before, event *entities.Event) error {
	_, err := tx.Exec(ctx, `
		UPDATE events SET name = $2, date_time = $3, description = $4, mission_type = $5,
			mission_length = $6, picture_url = $7, hidden = $8, shareable = $9,
			archived = $10, channel_id = $11, info_message_id = $12,
			slotlist_message_id = $13, updated_at = now()
		WHERE id = $1`,
		event.ID, event.Name, event.DateTime, event.Description, event.MissionType,
		event.MissionLength, event.PictureURL, event.Hidden, event.Shareable,
		event.Archived, event.ChannelID, event.InfoMessageID, event.SlotlistMessageID)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	keptSquads := make(map[int64]struct{})
	keptSlots := make(map[int64]struct{})
	for i := range event.Squads {
		squad := &event.Squads[i]
		squad.EventID = event.ID
		squad.Position = i
		if squad.ID == 0 {
			if err := insertSquad(ctx, tx, squad); err != nil {
				return err
			}
		} else {
			_, err := tx.Exec(ctx, `
				UPDATE squads SET name = $2, position = $3, reserved_for_guild_id = $4
				WHERE id = $1`,
				squad.ID, squad.Name, squad.Position, squad.ReservedForGuildID)
			if err != nil {
				return fmt.Errorf("update squad: %w", err)
			}
		}
		keptSquads[squad.ID] = struct{}{}

		for j := range squad.Slots {
			slot := &squad.Slots[j]
			slot.SquadID = squad.ID
			if slot.ID == 0 {
				if err := insertSlot(ctx, tx, slot); err != nil {
					return err
				}
			} else {
				_, err := tx.Exec(ctx, `
					UPDATE slots SET squad_id = $2, name = $3, number = $4, user_id = $5,
						replacement = $6, reserved_for_guild_id = $7
					WHERE id = $1`,
					slot.ID, slot.SquadID, slot.Name, slot.Number, slot.UserID,
					slot.Replacement, slot.ReservedForGuildID)
				if err != nil {
					return fmt.Errorf("update slot: %w", err)
				}
			}
			keptSlots[slot.ID] = struct{}{}
		}
	}

	for i := range before.Squads {
		old := &before.Squads[i]
		if _, kept := keptSquads[old.ID]; old.ID != 0 && !kept {
			if _, err := tx.Exec(ctx, `DELETE FROM squads WHERE id = $1`, old.ID); err != nil {
				return fmt.Errorf("delete squad: %w", err)
			}
			continue
		}
		for j := range old.Slots {
			slotID := old.Slots[j].ID
			if _, kept := keptSlots[slotID]; slotID != 0 && !kept {
				if _, err := tx.Exec(ctx, `DELETE FROM slots WHERE id = $1`, slotID); err != nil {
					return fmt.Errorf("delete slot: %w", err)
				}
			}
		}
	}

	return saveDetails(ctx, tx, before, event)
}

func saveDetails(ctx context.Context, tx pgx.Tx, before, event *entities.Event) error {
	if len(before.Details) == len(event.Details) {
		equal := true
		for i := range event.Details {
			if before.Details[i] != event.Details[i] {
				equal = false
				break
			}
		}
		if equal {
			return nil
		}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM event_fields WHERE event_id = $1`, event.ID); err != nil {
		return fmt.Errorf("clear event fields: %w", err)
	}
	for i := range event.Details {
		event.Details[i].EventID = event.ID
		if err := insertDetail(ctx, tx, &event.Details[i], i); err != nil {
			return err
		}
	}
	return nil
}
