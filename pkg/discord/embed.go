package discord

import (
	"fmt"
	"strings"

	"slotbot/internal/domain/entities"

	"github.com/bwmarrin/discordgo"
)

const embedColor = 0x5865F2

// Mention renders a Discord user mention for a snowflake id.
func Mention(userID int64) string {
	return fmt.Sprintf("<@%d>", userID)
}

// BuildEventEmbed builds the details embed posted above the slot list.
func BuildEventEmbed(event *entities.Event) *discordgo.MessageEmbed {
	var b strings.Builder
	if event.Description != "" {
		b.WriteString(event.Description)
		b.WriteString("\n\n")
	}
	b.WriteString(fmt.Sprintf("**When:** %s (%s)", FormatTimestamp(event.DateTime), FormatRelative(event.DateTime)))
	if event.MissionType != "" {
		b.WriteString(fmt.Sprintf("\n**Mission type:** %s", event.MissionType))
	}
	if event.MissionLength != "" {
		b.WriteString(fmt.Sprintf("\n**Duration:** %s", event.MissionLength))
	}
	for _, field := range event.Details {
		b.WriteString(fmt.Sprintf("\n**%s:** %s", field.Title, field.Text))
	}
	embed := &discordgo.MessageEmbed{
		Title:       event.Name,
		Description: b.String(),
		Color:       embedColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Created by %s", Mention(event.CreatorID))},
	}
	if event.PictureURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: event.PictureURL}
	}
	return embed
}

// RenderSlotlist renders the squads and slots of an event as message text.
// Occupied slots show a mention, blocked slots their replacement text.
func RenderSlotlist(event *entities.Event) string {
	var b strings.Builder
	b.WriteString("__**Slotlist**__\n")
	for i := range event.Squads {
		squad := &event.Squads[i]
		b.WriteString(fmt.Sprintf("\n**%s**\n", squad.Name))
		for j := range squad.Slots {
			b.WriteString(renderSlot(&squad.Slots[j]))
		}
	}
	return b.String()
}

func renderSlot(slot *entities.Slot) string {
	switch {
	case slot.IsBlocked():
		replacement := slot.Replacement
		if replacement == "" {
			replacement = "*blocked*"
		}
		return fmt.Sprintf("~~%d %s~~ %s\n", slot.Number, slot.Name, replacement)
	case slot.IsEmpty():
		return fmt.Sprintf("%d %s\n", slot.Number, slot.Name)
	default:
		return fmt.Sprintf("%d %s: %s\n", slot.Number, slot.Name, Mention(slot.UserID))
	}
}
