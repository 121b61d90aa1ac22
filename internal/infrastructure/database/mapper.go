package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"slotbot/internal/domain"
	"slotbot/internal/domain/entities"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so aggregate loading
// works inside and outside a unit of work.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// loadEvent reads the full event subtree: event row, squads in position
// order, slots in number order, detail fields.
func loadEvent(ctx context.Context, q querier, id int64) (*entities.Event, error) {
	row := q.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	event, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load event: %w", err)
	}

	squadRows, err := q.Query(ctx, `
		SELECT id, name, position, reserved_for_guild_id
		FROM squads WHERE event_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("load squads: %w", err)
	}
	squadIndex := make(map[int64]int)
	for squadRows.Next() {
		var squad entities.Squad
		squad.EventID = id
		if err := squadRows.Scan(&squad.ID, &squad.Name, &squad.Position, &squad.ReservedForGuildID); err != nil {
			squadRows.Close()
			return nil, fmt.Errorf("scan squad: %w", err)
		}
		squadIndex[squad.ID] = len(event.Squads)
		event.Squads = append(event.Squads, squad)
	}
	squadRows.Close()
	if err := squadRows.Err(); err != nil {
		return nil, fmt.Errorf("load squads: %w", err)
	}

	slotRows, err := q.Query(ctx, `
		SELECT s.id, s.squad_id, s.name, s.number, s.user_id, s.replacement, s.reserved_for_guild_id
		FROM slots s
		JOIN squads sq ON sq.id = s.squad_id
		WHERE sq.event_id = $1
		ORDER BY s.number`, id)
	if err != nil {
		return nil, fmt.Errorf("load slots: %w", err)
	}
	for slotRows.Next() {
		var slot entities.Slot
		if err := slotRows.Scan(&slot.ID, &slot.SquadID, &slot.Name, &slot.Number,
			&slot.UserID, &slot.Replacement, &slot.ReservedForGuildID); err != nil {
			slotRows.Close()
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		if i, ok := squadIndex[slot.SquadID]; ok {
			event.Squads[i].Slots = append(event.Squads[i].Slots, slot)
		}
	}
	slotRows.Close()
	if err := slotRows.Err(); err != nil {
		return nil, fmt.Errorf("load slots: %w", err)
	}

	detailRows, err := q.Query(ctx, `
		SELECT id, title, text FROM event_fields
		WHERE event_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("load event fields: %w", err)
	}
	defer detailRows.Close()
	for detailRows.Next() {
		field := entities.EventField{EventID: id}
		if err := detailRows.Scan(&field.ID, &field.Title, &field.Text); err != nil {
			return nil, fmt.Errorf("scan event field: %w", err)
		}
		event.Details = append(event.Details, field)
	}
	if err := detailRows.Err(); err != nil {
		return nil, fmt.Errorf("load event fields: %w", err)
	}

	return event, nil
}

func scanEvent(row pgx.Row) (*entities.Event, error) {
	var event entities.Event
	err := row.Scan(&event.ID, &event.Name, &event.DateTime, &event.Description,
		&event.MissionType, &event.MissionLength, &event.PictureURL, &event.CreatorID,
		&event.Hidden, &event.Shareable, &event.Archived, &event.OwnerGuildID,
		&event.ChannelID, &event.InfoMessageID, &event.SlotlistMessageID,
		&event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func scanEvents(rows pgx.Rows) ([]entities.Event, error) {
	defer rows.Close()
	var out []entities.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan events: %w", err)
	}
	return out, nil
}

func insertSquad(ctx context.Context, q querier, squad *entities.Squad) error {
	err := q.QueryRow(ctx, `
		INSERT INTO squads (event_id, name, position, reserved_for_guild_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		squad.EventID, squad.Name, squad.Position, squad.ReservedForGuildID).Scan(&squad.ID)
	if err != nil {
		return fmt.Errorf("insert squad: %w", err)
	}
	return nil
}

func insertSlot(ctx context.Context, q querier, slot *entities.Slot) error {
	err := q.QueryRow(ctx, `
		INSERT INTO slots (squad_id, name, number, user_id, replacement, reserved_for_guild_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		slot.SquadID, slot.Name, slot.Number, slot.UserID, slot.Replacement,
		slot.ReservedForGuildID).Scan(&slot.ID)
	if err != nil {
		return fmt.Errorf("insert slot: %w", err)
	}
	return nil
}

func insertDetail(ctx context.Context, q querier, field *entities.EventField, position int) error {
	err := q.QueryRow(ctx, `
		INSERT INTO event_fields (event_id, position, title, text)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		field.EventID, position, field.Title, field.Text).Scan(&field.ID)
	if err != nil {
		return fmt.Errorf("insert event field: %w", err)
	}
	return nil
}
