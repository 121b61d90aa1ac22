package discord

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"slotbot/internal/domain/entities"
	"slotbot/internal/ports/output"
	pkgdiscord "slotbot/pkg/discord"
)

// CalendarRebuilder regenerates the published calendar of a guild after one
// of its events changed.
type CalendarRebuilder interface {
	Rebuild(ctx context.Context, eventID int64) error
}

// ReminderRescheduler recomputes the reminder entry of an event.
type ReminderRescheduler interface {
	Reschedule(ctx context.Context, eventID int64) error
}

// Notifier is the Discord-facing EventNotifier: it keeps the event messages
// in sync, DMs affected users on slot changes and delegates calendar and
// reminder maintenance.
type Notifier struct {
	session   *discordgo.Session
	calendar  CalendarRebuilder
	reminders ReminderRescheduler
	t         output.T
	locale    string
	logger    *zap.Logger
}

var _ output.EventNotifier = (*Notifier)(nil)

func NewNotifier(session *discordgo.Session, calendar CalendarRebuilder, reminders ReminderRescheduler, t output.T, locale string, logger *zap.Logger) *Notifier {
	return &Notifier{
		session:   session,
		calendar:  calendar,
		reminders: reminders,
		t:         t,
		locale:    locale,
		logger:    logger,
	}
}

func (n *Notifier) RebuildCalendar(ctx context.Context, eventID int64) error {
	return n.calendar.Rebuild(ctx, eventID)
}

func (n *Notifier) UpdateEventNotifications(ctx context.Context, eventID int64) error {
	return n.reminders.Reschedule(ctx, eventID)
}

// InformAboutSlotChange DMs the displaced occupant and, when someone took the
// slot over, the new one.
func (n *Notifier) InformAboutSlotChange(ctx context.Context, event *entities.Event, slot *entities.Slot, newUserID, previousUserID int64) error {
	if previousUserID != entities.EmptyUserID && previousUserID != entities.BlockedUserID {
		msg := n.t.T(n.locale, "notify.slot.removed", map[string]any{
			"Event": event.Name, "Number": slot.Number, "Slot": slot.Name,
		})
		if err := n.directMessage(previousUserID, msg); err != nil {
			return fmt.Errorf("notify previous occupant: %w", err)
		}
	}
	if newUserID != entities.EmptyUserID && newUserID != entities.BlockedUserID {
		msg := n.t.T(n.locale, "notify.slot.assigned", map[string]any{
			"Event": event.Name, "Number": slot.Number, "Slot": slot.Name,
		})
		if err := n.directMessage(newUserID, msg); err != nil {
			return fmt.Errorf("notify new occupant: %w", err)
		}
	}
	return nil
}

// Update edits the info embed and the slotlist message of an assigned event.
// Unassigned events have nothing to sync.
func (n *Notifier) Update(ctx context.Context, event *entities.Event) error {
	if !event.IsAssigned() {
		return nil
	}
	channelID := strconv.FormatInt(event.ChannelID, 10)

	if event.InfoMessageID != 0 {
		embed := pkgdiscord.BuildEventEmbed(event)
		_, err := n.session.ChannelMessageEditEmbed(channelID, strconv.FormatInt(event.InfoMessageID, 10), embed)
		if err != nil {
			return fmt.Errorf("edit info message: %w", err)
		}
	}
	if event.SlotlistMessageID != 0 {
		content := pkgdiscord.RenderSlotlist(event)
		_, err := n.session.ChannelMessageEdit(channelID, strconv.FormatInt(event.SlotlistMessageID, 10), content)
		if err != nil {
			return fmt.Errorf("edit slotlist message: %w", err)
		}
	}
	return nil
}

// PostEventMessages publishes the info embed and the slotlist message into a
// channel and returns both message ids. Called when an event gets its channel
// assigned.
func (n *Notifier) PostEventMessages(ctx context.Context, event *entities.Event, channelID int64) (infoID, slotlistID int64, err error) {
	channel := strconv.FormatInt(channelID, 10)

	info, err := n.session.ChannelMessageSendEmbed(channel, pkgdiscord.BuildEventEmbed(event))
	if err != nil {
		return 0, 0, fmt.Errorf("post info message: %w", err)
	}
	slotlist, err := n.session.ChannelMessageSend(channel, pkgdiscord.RenderSlotlist(event))
	if err != nil {
		return 0, 0, fmt.Errorf("post slotlist message: %w", err)
	}

	infoID, err = strconv.ParseInt(info.ID, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse info message id: %w", err)
	}
	slotlistID, err = strconv.ParseInt(slotlist.ID, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse slotlist message id: %w", err)
	}
	return infoID, slotlistID, nil
}

// Remind posts the reminder message into the event channel shortly before
// start. Wired as the reminder scheduler callback.
func (n *Notifier) Remind(event *entities.Event) {
	if !event.IsAssigned() {
		return
	}
	msg := n.t.T(n.locale, "notify.reminder", map[string]any{
		"Event": event.Name, "When": pkgdiscord.FormatRelative(event.DateTime),
	})
	if _, err := n.session.ChannelMessageSend(strconv.FormatInt(event.ChannelID, 10), msg); err != nil {
		n.logger.Warn("reminder message failed",
			zap.Int64("event_id", event.ID), zap.Error(err))
	}
}

func (n *Notifier) directMessage(userID int64, content string) error {
	channel, err := n.session.UserChannelCreate(strconv.FormatInt(userID, 10))
	if err != nil {
		return fmt.Errorf("open dm channel: %w", err)
	}
	if _, err := n.session.ChannelMessageSend(channel.ID, content); err != nil {
		return fmt.Errorf("send dm: %w", err)
	}
	return nil
}
