package discord

import (
	"context"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"slotbot/internal/domain/entities"
	"slotbot/internal/ports/input"
	pkgdiscord "slotbot/pkg/discord"
)

const (
	createEventModalID = "create_event_modal"
	editEventModalID   = "edit_event_modal"
)

func eventModalInputs(name, desc, dateValue, timeValue string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{CustomID: "name", Label: "Name", Style: discordgo.TextInputShort, Required: true, Value: name},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{CustomID: "description", Label: "Description", Style: discordgo.TextInputParagraph, Required: false, Value: desc},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{CustomID: "date", Label: "Date", Style: discordgo.TextInputShort, Required: true, Value: dateValue, Placeholder: "2025-02-15"},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{CustomID: "time", Label: "Time", Style: discordgo.TextInputShort, Required: true, Value: timeValue, Placeholder: "14:00"},
		}},
	}
}

// handleCreate opens the event creation modal.
func (h *Handler) handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   createEventModalID,
			Title:      "Create event",
			Components: eventModalInputs("", "", "", ""),
		},
	})
}

// handleEdit opens the edit modal prefilled with the channel's event. Only
// the creator may edit.
func (h *Handler) handleEdit(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, caller input.UserRef, ref input.EventRef) {
	event, err := h.events.GetEvent(ctx, ref)
	if err != nil {
		h.fail(s, i, err)
		return
	}
	if caller.ID != event.CreatorID {
		h.reply(s, i, "event.edit.creator", nil)
		return
	}

	dateValue, timeValue := "", ""
	if !event.DateTime.IsZero() {
		dateValue = event.DateTime.Format("2006-01-02")
		timeValue = event.DateTime.Format("15:04")
	}
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   editEventModalID,
			Title:      "Edit event",
			Components: eventModalInputs(event.Name, event.Description, dateValue, timeValue),
		},
	})
}

// HandleCreateModalSubmit creates the event and publishes it into the
// invoking channel.
func (h *Handler) HandleCreateModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	values := pkgdiscord.ModalValues(i.ModalSubmitData())

	dateTime, err := pkgdiscord.ParseEventDateTime(values["date"], values["time"])
	if err != nil {
		respondEphemeral(s, i.Interaction, err.Error())
		return
	}
	caller, err := callerOf(i)
	if err != nil {
		h.reply(s, i, "generic.error", nil)
		return
	}
	guildID, _ := strconv.ParseInt(i.GuildID, 10, 64)
	channelID, _ := strconv.ParseInt(i.ChannelID, 10, 64)

	event, err := h.events.CreateEvent(ctx, &entities.Event{
		Name:         values["name"],
		DateTime:     dateTime,
		Description:  values["description"],
		CreatorID:    caller.ID,
		OwnerGuildID: guildID,
	})
	if err != nil {
		h.fail(s, i, err)
		return
	}

	infoID, slotlistID, err := h.publisher.PostEventMessages(ctx, event, channelID)
	if err != nil {
		h.logger.Warn("publish event messages failed", zap.Int64("event_id", event.ID), zap.Error(err))
		h.reply(s, i, "generic.error", nil)
		return
	}
	if _, err := h.events.AssignChannel(ctx, event.ID, channelID, infoID, slotlistID); err != nil {
		h.fail(s, i, err)
		return
	}
	h.reply(s, i, "event.created", map[string]any{"Event": event.Name})
}

// HandleEditModalSubmit applies the edited fields.
func (h *Handler) HandleEditModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	values := pkgdiscord.ModalValues(i.ModalSubmitData())

	dateTime, err := pkgdiscord.ParseEventDateTime(values["date"], values["time"])
	if err != nil {
		respondEphemeral(s, i.Interaction, err.Error())
		return
	}
	ref, err := channelRef(i)
	if err != nil {
		h.reply(s, i, "generic.error", nil)
		return
	}
	event, err := h.events.GetEvent(ctx, ref)
	if err != nil {
		h.fail(s, i, err)
		return
	}

	name := values["name"]
	description := values["description"]
	if _, err := h.events.UpdateEvent(ctx, event.ID, input.EventUpdate{
		Name:        &name,
		DateTime:    &dateTime,
		Description: &description,
	}); err != nil {
		h.fail(s, i, err)
		return
	}
	h.reply(s, i, "generic.done", nil)
}
