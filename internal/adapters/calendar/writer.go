// Package calendar publishes guild events as .ics files, one calendar per
// guild, rebuilt whole whenever an event in it changes.
package calendar

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"slotbot/internal/domain/entities"
	"slotbot/internal/ports/output"
)

const (
	productID = "-//slotbot//event calendar//EN"
	// Calendars cover one year back and one year ahead.
	horizon = 365 * 24 * time.Hour
	// Events without a mission length block this long in the calendar.
	defaultDuration = 2 * time.Hour
)

// Writer rebuilds guild calendars from the event store.
type Writer struct {
	store  output.EventStore
	dir    string
	logger *zap.Logger
}

func NewWriter(store output.EventStore, dir string, logger *zap.Logger) *Writer {
	return &Writer{store: store, dir: dir, logger: logger}
}

// Rebuild regenerates the calendar file of the guild owning the given event.
// Hidden and archived events are left out.
func (w *Writer) Rebuild(ctx context.Context, eventID int64) error {
	event, err := w.store.FindByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("load event %d: %w", eventID, err)
	}
	return w.RebuildGuild(ctx, event.OwnerGuildID)
}

// RebuildGuild regenerates a single guild calendar.
func (w *Writer) RebuildGuild(ctx context.Context, guildID int64) error {
	now := time.Now()
	events, err := w.store.FindAllBetween(ctx, guildID, now.Add(-horizon), now.Add(horizon), false)
	if err != nil {
		return fmt.Errorf("load guild %d events: %w", guildID, err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	for i := range events {
		addEvent(cal, &events[i])
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create calendar dir: %w", err)
	}
	path := filepath.Join(w.dir, fmt.Sprintf("guild-%d.ics", guildID))
	if err := os.WriteFile(path, []byte(cal.Serialize()), 0o644); err != nil {
		return fmt.Errorf("write calendar: %w", err)
	}
	w.logger.Debug("calendar rebuilt",
		zap.Int64("guild_id", guildID), zap.Int("events", len(events)))
	return nil
}

func addEvent(cal *ics.Calendar, event *entities.Event) {
	vevent := cal.AddEvent(fmt.Sprintf("event-%d@slotbot", event.ID))
	vevent.SetDtStampTime(event.UpdatedAt)
	vevent.SetStartAt(event.DateTime)
	vevent.SetEndAt(event.DateTime.Add(defaultDuration))
	vevent.SetSummary(event.Name)
	if event.Description != "" {
		vevent.SetDescription(event.Description)
	}
	if event.MissionType != "" {
		vevent.SetProperty(ics.ComponentProperty(ics.PropertyCategories), event.MissionType)
	}
}
