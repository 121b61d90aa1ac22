package calendar

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"slotbot/internal/domain"
	"slotbot/internal/domain/entities"
)

// stubStore serves a fixed event list.
type stubStore struct {
	events []entities.Event
}

func (s *stubStore) Create(ctx context.Context, event *entities.Event) error { return nil }

func (s *stubStore) FindByID(ctx context.Context, id int64) (*entities.Event, error) {
	for i := range s.events {
		if s.events[i].ID == id {
			return &s.events[i], nil
		}
	}
	return nil, domain.ErrEventNotFound
}

func (s *stubStore) FindByChannel(ctx context.Context, channelID int64) (*entities.Event, error) {
	return nil, domain.ErrEventNotFound
}

func (s *stubStore) ChannelAssigned(ctx context.Context, channelID int64) (bool, error) {
	return false, nil
}

func (s *stubStore) FindAllBetween(ctx context.Context, guildID int64, start, end time.Time, includeHidden bool) ([]entities.Event, error) {
	var out []entities.Event
	for _, event := range s.events {
		if event.OwnerGuildID != guildID {
			continue
		}
		if event.Hidden && !includeHidden {
			continue
		}
		out = append(out, event)
	}
	return out, nil
}

func (s *stubStore) FindAllInFuture(ctx context.Context, now time.Time) ([]entities.Event, error) {
	return s.events, nil
}

func (s *stubStore) Modify(ctx context.Context, id int64, fn func(*entities.Event) error) (*entities.Event, []domain.Change, error) {
	return nil, nil, domain.ErrEventNotFound
}

func (s *stubStore) Delete(ctx context.Context, id int64) error { return nil }

func TestRebuildWritesGuildCalendar(t *testing.T) {
	dir := t.TempDir()
	store := &stubStore{events: []entities.Event{
		{
			ID:           1,
			Name:         "Operation Test",
			DateTime:     time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC),
			Description:  "Night op",
			OwnerGuildID: 7,
			UpdatedAt:    time.Now(),
		},
		{
			ID:           2,
			Name:         "Hidden Op",
			DateTime:     time.Date(2026, 3, 15, 19, 0, 0, 0, time.UTC),
			OwnerGuildID: 7,
			Hidden:       true,
			UpdatedAt:    time.Now(),
		},
	}}
	writer := NewWriter(store, dir, zap.NewNop())

	require.NoError(t, writer.Rebuild(context.Background(), 1))

	raw, err := os.ReadFile(filepath.Join(dir, "guild-7.ics"))
	require.NoError(t, err)
	content := string(raw)

	assert.Contains(t, content, "BEGIN:VCALENDAR")
	assert.Contains(t, content, "SUMMARY:Operation Test")
	assert.Contains(t, content, "DESCRIPTION:Night op")
	assert.Contains(t, content, "UID:event-1@slotbot")
	assert.NotContains(t, content, "Hidden Op", "hidden events stay out of the calendar")
}

func TestRebuildUnknownEvent(t *testing.T) {
	writer := NewWriter(&stubStore{}, t.TempDir(), zap.NewNop())
	err := writer.Rebuild(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}
