package discord

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"slotbot/internal/config"
)

// Bot is the Discord adapter. It owns command registration and interaction
// dispatch; the session itself is created in main so the notifier can share it.
type Bot struct {
	session *discordgo.Session
	config  *config.Config
	handler *Handler
	logger  *zap.Logger
}

// NewBot wires the interaction handler onto an unopened session.
func NewBot(session *discordgo.Session, cfg *config.Config, handler *Handler, logger *zap.Logger) *Bot {
	bot := &Bot{
		session: session,
		config:  cfg,
		handler: handler,
		logger:  logger,
	}
	session.AddHandler(bot.handleInteraction)
	return bot
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name == "event" {
			b.handler.HandleCommand(s, i)
		}
	case discordgo.InteractionModalSubmit:
		switch i.ModalSubmitData().CustomID {
		case createEventModalID:
			b.handler.HandleCreateModalSubmit(s, i)
		case editEventModalID:
			b.handler.HandleEditModalSubmit(s, i)
		}
	}
}

// Start opens the gateway connection and registers the /event command. It
// does not block; main coordinates shutdown across all adapters.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}

	guildID := ""
	if b.config.GuildID != 0 {
		guildID = strconv.FormatInt(b.config.GuildID, 10)
	}
	if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, guildID, eventCommand()); err != nil {
		return fmt.Errorf("register event command: %w", err)
	}

	b.logger.Info("discord bot online", zap.String("user", b.session.State.User.Username))
	return nil
}

// Stop closes the gateway connection.
func (b *Bot) Stop() error {
	return b.session.Close()
}
