package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"slotbot/internal/domain"
	"slotbot/internal/domain/entities"
)

type stubStore struct {
	events map[int64]*entities.Event
}

func (s *stubStore) Create(ctx context.Context, event *entities.Event) error { return nil }

func (s *stubStore) FindByID(ctx context.Context, id int64) (*entities.Event, error) {
	event, ok := s.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (s *stubStore) FindByChannel(ctx context.Context, channelID int64) (*entities.Event, error) {
	return nil, domain.ErrEventNotFound
}

func (s *stubStore) ChannelAssigned(ctx context.Context, channelID int64) (bool, error) {
	return false, nil
}

func (s *stubStore) FindAllBetween(ctx context.Context, guildID int64, start, end time.Time, includeHidden bool) ([]entities.Event, error) {
	return nil, nil
}

func (s *stubStore) FindAllInFuture(ctx context.Context, now time.Time) ([]entities.Event, error) {
	var out []entities.Event
	for _, event := range s.events {
		if event.DateTime.After(now) {
			out = append(out, *event)
		}
	}
	return out, nil
}

func (s *stubStore) Modify(ctx context.Context, id int64, fn func(*entities.Event) error) (*entities.Event, []domain.Change, error) {
	return nil, nil, domain.ErrEventNotFound
}

func (s *stubStore) Delete(ctx context.Context, id int64) error { return nil }

func TestOnceAt(t *testing.T) {
	at := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	schedule := onceAt{t: at}

	t.Run("fires once at the fixed time", func(t *testing.T) {
		assert.Equal(t, at, schedule.Next(at.Add(-time.Minute)))
	})

	t.Run("never fires again afterwards", func(t *testing.T) {
		assert.True(t, schedule.Next(at).IsZero())
		assert.True(t, schedule.Next(at.Add(time.Minute)).IsZero())
	})
}

func TestStartSchedulesFutureEvents(t *testing.T) {
	store := &stubStore{events: map[int64]*entities.Event{
		1: {ID: 1, Name: "Future", DateTime: time.Now().Add(48 * time.Hour)},
		2: {ID: 2, Name: "Past", DateTime: time.Now().Add(-time.Hour)},
		3: {ID: 3, Name: "Too close", DateTime: time.Now().Add(30 * time.Minute)},
	}}
	s := New(store, zap.NewNop())
	s.OnRemind(func(*entities.Event) {})

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Contains(t, s.entries, int64(1))
	assert.NotContains(t, s.entries, int64(2), "past events get no reminder")
	assert.NotContains(t, s.entries, int64(3), "events inside the lead window get no reminder")
}

func TestReschedule(t *testing.T) {
	event := &entities.Event{ID: 1, Name: "Op", DateTime: time.Now().Add(48 * time.Hour)}
	store := &stubStore{events: map[int64]*entities.Event{1: event}}
	s := New(store, zap.NewNop())

	require.NoError(t, s.Reschedule(context.Background(), 1))
	s.mu.Lock()
	first := s.entries[1]
	s.mu.Unlock()
	assert.NotZero(t, first)

	t.Run("recomputes on date change", func(t *testing.T) {
		event.DateTime = time.Now().Add(72 * time.Hour)
		require.NoError(t, s.Reschedule(context.Background(), 1))
		s.mu.Lock()
		defer s.mu.Unlock()
		assert.NotZero(t, s.entries[1])
		assert.NotEqual(t, first, s.entries[1])
	})

	t.Run("archived events lose their entry", func(t *testing.T) {
		event.Archived = true
		require.NoError(t, s.Reschedule(context.Background(), 1))
		s.mu.Lock()
		defer s.mu.Unlock()
		assert.NotContains(t, s.entries, int64(1))
	})

	t.Run("unknown event", func(t *testing.T) {
		err := s.Reschedule(context.Background(), 99)
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})
}
