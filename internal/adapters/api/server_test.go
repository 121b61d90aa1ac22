package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"slotbot/internal/domain"
	"slotbot/internal/domain/entities"
	"slotbot/internal/ports/input"
)

// stubUseCase overrides the handful of operations a test needs; everything
// else panics via the embedded nil interface.
type stubUseCase struct {
	input.EventUseCase
	getEvent func(ctx context.Context, ref input.EventRef) (*entities.Event, error)
	slot     func(ctx context.Context, ref input.EventRef, slotNumber int, user input.UserRef) (*entities.Event, error)
	swap     func(ctx context.Context, ref input.EventRef, slotNumbers []int) (*entities.Event, error)
	list     func(ctx context.Context, guildID int64, start, end time.Time, includeHidden bool) ([]entities.Event, error)
}

func (s *stubUseCase) GetEvent(ctx context.Context, ref input.EventRef) (*entities.Event, error) {
	return s.getEvent(ctx, ref)
}

func (s *stubUseCase) Slot(ctx context.Context, ref input.EventRef, slotNumber int, user input.UserRef) (*entities.Event, error) {
	return s.slot(ctx, ref, slotNumber, user)
}

func (s *stubUseCase) Swap(ctx context.Context, ref input.EventRef, slotNumbers []int) (*entities.Event, error) {
	return s.swap(ctx, ref, slotNumbers)
}

func (s *stubUseCase) ListEventsBetween(ctx context.Context, guildID int64, start, end time.Time, includeHidden bool) ([]entities.Event, error) {
	return s.list(ctx, guildID, start, end, includeHidden)
}

func sampleEvent() *entities.Event {
	return &entities.Event{
		ID:       1,
		Name:     "Operation Test",
		DateTime: time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC),
		Squads: []entities.Squad{
			{ID: 10, Name: "Alpha", Slots: []entities.Slot{
				{ID: 100, Name: "Lead", Number: 1, UserID: 500},
				{ID: 101, Name: "Medic", Number: 2},
			}},
		},
	}
}

func serve(t *testing.T, uc input.EventUseCase, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	server := NewServer(":0", uc, nil, zap.NewNop())

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	server.routes().ServeHTTP(rec, req)
	return rec
}

func TestGetEvent(t *testing.T) {
	uc := &stubUseCase{
		getEvent: func(ctx context.Context, ref input.EventRef) (*entities.Event, error) {
			assert.Equal(t, int64(1), ref.EventID)
			return sampleEvent(), nil
		},
	}

	rec := serve(t, uc, http.MethodGet, "/api/events/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var dto eventDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "Operation Test", dto.Name)
	require.Len(t, dto.Squads, 1)
	require.Len(t, dto.Squads[0].Slots, 2)
	assert.Equal(t, int64(500), dto.Squads[0].Slots[0].UserID)
	assert.Zero(t, dto.Squads[0].Slots[1].UserID)
}

func TestGetEventNotFound(t *testing.T) {
	uc := &stubUseCase{
		getEvent: func(ctx context.Context, ref input.EventRef) (*entities.Event, error) {
			return nil, domain.ErrEventNotFound
		},
	}

	rec := serve(t, uc, http.MethodGet, "/api/events/7", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetEventBadID(t *testing.T) {
	rec := serve(t, &stubUseCase{}, http.MethodGet, "/api/events/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSlotConflictMapsTo409(t *testing.T) {
	uc := &stubUseCase{
		slot: func(ctx context.Context, ref input.EventRef, slotNumber int, user input.UserRef) (*entities.Event, error) {
			return nil, domain.ErrSlotOccupied
		},
	}

	rec := serve(t, uc, http.MethodPost, "/api/events/1/slot", `{"number":1,"userId":500}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSlotSuccess(t *testing.T) {
	uc := &stubUseCase{
		slot: func(ctx context.Context, ref input.EventRef, slotNumber int, user input.UserRef) (*entities.Event, error) {
			assert.Equal(t, 2, slotNumber)
			assert.Equal(t, int64(600), user.ID)
			assert.Equal(t, "six", user.Name)
			return sampleEvent(), nil
		},
	}

	rec := serve(t, uc, http.MethodPost, "/api/events/1/slot", `{"number":2,"userId":600,"userName":"six"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSwapArityMapsTo409(t *testing.T) {
	uc := &stubUseCase{
		swap: func(ctx context.Context, ref input.EventRef, slotNumbers []int) (*entities.Event, error) {
			return nil, domain.ErrSwapArity
		},
	}

	rec := serve(t, uc, http.MethodPost, "/api/events/1/swap", `{"numbers":[1]}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListEvents(t *testing.T) {
	uc := &stubUseCase{
		list: func(ctx context.Context, guildID int64, start, end time.Time, includeHidden bool) ([]entities.Event, error) {
			assert.Equal(t, int64(7), guildID)
			assert.True(t, includeHidden)
			return []entities.Event{*sampleEvent()}, nil
		},
	}

	rec := serve(t, uc, http.MethodGet, "/api/events?guild=7&includeHidden=true", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var dtos []eventDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dtos))
	require.Len(t, dtos, 1)
}

func TestListEventsBadRange(t *testing.T) {
	rec := serve(t, &stubUseCase{}, http.MethodGet, "/api/events?start=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
