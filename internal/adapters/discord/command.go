package discord

import (
	"github.com/bwmarrin/discordgo"
)

// eventCommand is the /event slash command. All subcommands act on the event
// assigned to the channel the command is invoked in.
func eventCommand() *discordgo.ApplicationCommand {
	number := func(name, desc string, required bool) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        name,
			Description: desc,
			Required:    required,
		}
	}
	text := func(name, desc string, required bool) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        name,
			Description: desc,
			Required:    required,
		}
	}
	sub := func(name, desc string, opts ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        name,
			Description: desc,
			Options:     opts,
		}
	}

	return &discordgo.ApplicationCommand{
		Name:        "event",
		Description: "Manage the event in this channel",
		Options: []*discordgo.ApplicationCommandOption{
			sub("create", "Create an event in this channel"),
			sub("edit", "Edit the event (creator only)"),
			sub("slot", "Sign up for a slot",
				number("number", "Slot number", true)),
			sub("unslot", "Leave your slot, or clear a numbered slot",
				number("number", "Slot number to clear", false)),
			sub("random", "Sign up for a random free slot"),
			sub("swap", "Swap slots with another user or a target slot",
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to swap with",
				},
				number("number", "Slot number to swap into", false)),
			sub("addslot", "Add a slot to a squad",
				number("squad", "Squad position (from 0)", true),
				number("number", "Slot number", true),
				text("name", "Slot name", true)),
			sub("delslot", "Remove a slot",
				number("number", "Slot number", true)),
			sub("renameslot", "Rename a slot",
				number("number", "Slot number", true),
				text("name", "New name", true)),
			sub("blockslot", "Block a slot",
				number("number", "Slot number", true),
				text("replacement", "Text shown in place of a user", false)),
			sub("addsquad", "Add a squad",
				text("name", "Squad name", true)),
			sub("delsquad", "Remove a squad",
				number("position", "Squad position (from 0)", true)),
			sub("renamesquad", "Rename a squad",
				number("position", "Squad position (from 0)", true),
				text("name", "New name", true)),
			sub("archive", "Archive the event"),
		},
	}
}
