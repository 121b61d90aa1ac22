package discord

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"slotbot/internal/domain/entities"
)

func TestRenderSlotlist(t *testing.T) {
	event := &entities.Event{
		Name: "Operation Test",
		Squads: []entities.Squad{
			{Name: "Alpha", Slots: []entities.Slot{
				{Name: "Lead", Number: 1, UserID: 100},
				{Name: "Medic", Number: 2},
				{Name: "AT", Number: 3, UserID: entities.BlockedUserID, Replacement: "closed"},
			}},
			{Name: "Bravo", Slots: []entities.Slot{
				{Name: "Lead", Number: 4},
			}},
		},
	}

	out := RenderSlotlist(event)

	assert.Contains(t, out, "**Alpha**")
	assert.Contains(t, out, "**Bravo**")
	assert.Contains(t, out, "1 Lead: <@100>")
	assert.Contains(t, out, "2 Medic\n")
	assert.Contains(t, out, "~~3 AT~~ closed")
	assert.NotContains(t, out, "<@-1>", "blocked slots never render a mention")
}

func TestBuildEventEmbed(t *testing.T) {
	event := &entities.Event{
		Name:        "Operation Test",
		DateTime:    time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC),
		Description: "Night op",
		MissionType: "COOP",
		CreatorID:   100,
		PictureURL:  "https://example.com/pic.png",
		Details: []entities.EventField{
			{Title: "Modset", Text: "Standard"},
		},
	}

	embed := BuildEventEmbed(event)

	assert.Equal(t, "Operation Test", embed.Title)
	assert.Contains(t, embed.Description, "Night op")
	assert.Contains(t, embed.Description, "**Mission type:** COOP")
	assert.Contains(t, embed.Description, "**Modset:** Standard")
	assert.Contains(t, embed.Description, "<t:")
	assert.Equal(t, "https://example.com/pic.png", embed.Thumbnail.URL)
}

func TestParseEventDateTime(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		time    string
		wantErr bool
	}{
		{name: "valid", date: "2026-03-14", time: "19:00"},
		{name: "padded input", date: " 2026-03-14 ", time: " 19:00 "},
		{name: "empty date", date: "", time: "19:00", wantErr: true},
		{name: "wrong date format", date: "14/03/2026", time: "19:00", wantErr: true},
		{name: "wrong time format", date: "2026-03-14", time: "7pm", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEventDateTime(tt.date, tt.time)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 2026, got.Year())
			assert.Equal(t, 19, got.Hour())
		})
	}
}
