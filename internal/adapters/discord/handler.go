package discord

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"slotbot/internal/domain/entities"
	"slotbot/internal/ports/input"
	"slotbot/internal/ports/output"
	pkgdiscord "slotbot/pkg/discord"
)

// eventPublisher posts the Discord messages of a freshly created event.
type eventPublisher interface {
	PostEventMessages(ctx context.Context, event *entities.Event, channelID int64) (infoID, slotlistID int64, err error)
}

// Handler handles Discord interactions using use cases.
type Handler struct {
	events    input.EventUseCase
	publisher eventPublisher
	t         output.T
	locale    string
	logger    *zap.Logger
}

// NewHandler creates a Handler.
func NewHandler(events input.EventUseCase, publisher eventPublisher, t output.T, locale string, logger *zap.Logger) *Handler {
	return &Handler{
		events:    events,
		publisher: publisher,
		t:         t,
		locale:    locale,
		logger:    logger,
	}
}

// HandleCommand dispatches the /event subcommands. The target event is always
// resolved through the invoking channel.
func (h *Handler) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]
	opts := namedOptions(sub.Options)

	ctx := context.Background()
	ref, err := channelRef(i)
	if err != nil {
		h.logger.Warn("unresolvable interaction channel", zap.Error(err))
		respondEphemeral(s, i.Interaction, h.t.T(h.locale, "generic.error", nil))
		return
	}
	caller, err := callerOf(i)
	if err != nil {
		h.logger.Warn("unresolvable interaction user", zap.Error(err))
		respondEphemeral(s, i.Interaction, h.t.T(h.locale, "generic.error", nil))
		return
	}

	switch sub.Name {
	case "create":
		h.handleCreate(s, i)
	case "edit":
		h.handleEdit(ctx, s, i, caller, ref)
	case "slot":
		h.handleSlot(ctx, s, i, caller, ref, opts)
	case "unslot":
		h.handleUnslot(ctx, s, i, caller, ref, opts)
	case "random":
		h.handleRandom(ctx, s, i, caller, ref)
	case "swap":
		h.handleSwap(ctx, s, i, caller, ref, opts)
	case "addslot":
		h.handleAddSlot(ctx, s, i, ref, opts)
	case "delslot":
		h.handleDelSlot(ctx, s, i, ref, opts)
	case "renameslot":
		h.handleRenameSlot(ctx, s, i, ref, opts)
	case "blockslot":
		h.handleBlockSlot(ctx, s, i, ref, opts)
	case "addsquad":
		h.handleAddSquad(ctx, s, i, ref, opts)
	case "delsquad":
		h.handleDelSquad(ctx, s, i, ref, opts)
	case "renamesquad":
		h.handleRenameSquad(ctx, s, i, ref, opts)
	case "archive":
		h.handleArchive(ctx, s, i, ref)
	}
}

func (h *Handler) handleSlot(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, caller input.UserRef, ref input.EventRef, opts optionMap) {
	number := int(opts.integer("number"))
	event, err := h.events.Slot(ctx, ref, number, caller)
	if err != nil {
		h.fail(s, i, err)
		return
	}
	h.reply(s, i, "event.slot.success", map[string]any{"Number": number, "Name": slotName(event, number)})
}

func (h *Handler) handleUnslot(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, caller input.UserRef, ref input.EventRef, opts optionMap) {
	// Without a number the caller unslots themselves; with one, that slot.
	var err error
	if opts.has("number") {
		_, _, err = h.events.UnslotNumber(ctx, ref, int(opts.integer("number")))
	} else {
		_, err = h.events.Unslot(ctx, ref, caller)
	}
	if err != nil {
		h.fail(s, i, err)
		return
	}
	h.reply(s, i, "event.unslot.success", nil)
}

func (h *Handler) handleRandom(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, caller input.UserRef, ref input.EventRef) {
	event, number, err := h.events.RandomSlot(ctx, ref, caller)
	if err != nil {
		h.fail(s, i, err)
		return
	}
	h.reply(s, i, "event.random.success", map[string]any{"Number": number, "Name": slotName(event, number)})
}

func (h *Handler) handleSwap(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, caller input.UserRef, ref input.EventRef, opts optionMap) {
	var (
		numbers [2]int
		err     error
	)
	if opts.has("user") {
		var other input.UserRef
		other, err = h.optionUser(i, opts, "user")
		if err == nil {
			numbers, err = h.events.FindSwapSlots(ctx, ref, []input.UserRef{caller, other})
		}
	} else {
		numbers, err = h.events.FindSwapSlotsByNumber(ctx, ref, int(opts.integer("number")), caller)
	}
	if err != nil {
		h.fail(s, i, err)
		return
	}
	if _, err := h.events.Swap(ctx, ref, numbers[:]); err != nil {
		h.fail(s, i, err)
		return
	}
	h.reply(s, i, "event.swap.success", map[string]any{"First": numbers[0], "Second": numbers[1]})
}

func (h *Handler) handleAddSlot(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, ref input.EventRef, opts optionMap) {
	spec := input.SlotSpec{
		Name:   opts.text("name"),
		Number: int(opts.integer("number")),
	}
	if _, err := h.events.AddSlot(ctx, ref, int(opts.integer("squad")), spec); err != nil {
		h.fail(s, i, err)
		return
	}
	h.reply(s, i, "generic.done", nil)
}

func (h *Handler) handleDelSlot(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, ref input.EventRef, opts optionMap) {
	if _, err := h.events.DeleteSlot(ctx, ref, int(opts.integer("number"))); err != nil {
		h.fail(s, i, err)
		return
	}
	h.reply(s, i, "generic.done", nil)
}

func (h *Handler) handleRenameSlot(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, ref input.EventRef, opts optionMap) {
	if _, err := h.events.RenameSlot(ctx, ref, int(opts.integer("number")), opts.text("name")); err != nil {
		h.fail(s, i, err)
		return
	}
	h.reply(s, i, "generic.done", nil)
}

func (h *Handler) handleBlockSlot(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, ref input.EventRef, opts optionMap) {
	if _, err := h.events.BlockSlot(ctx, ref, int(opts.integer("number")), opts.text("replacement")); err != nil {
		h.fail(s, i, err)
		return
	}
	h.reply(s, i, "generic.done", nil)
}

func (h *Handler) handleAddSquad(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, ref input.EventRef, opts optionMap) {
	if _, err := h.events.AddSquad(ctx, ref, opts.text("name")); err != nil {
		h.fail(s, i, err)
		return
	}
	h.reply(s, i, "generic.done", nil)
}

func (h *Handler) handleDelSquad(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, ref input.EventRef, opts optionMap) {
	if _, err := h.events.DeleteSquad(ctx, ref, int(opts.integer("position"))); err != nil {
		h.fail(s, i, err)
		return
	}
	h.reply(s, i, "generic.done", nil)
}

func (h *Handler) handleRenameSquad(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, ref input.EventRef, opts optionMap) {
	if _, err := h.events.RenameSquad(ctx, ref, int(opts.integer("position")), opts.text("name")); err != nil {
		h.fail(s, i, err)
		return
	}
	h.reply(s, i, "generic.done", nil)
}

func (h *Handler) handleArchive(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, ref input.EventRef) {
	if err := h.events.ArchiveEvent(ctx, ref); err != nil {
		h.fail(s, i, err)
		return
	}
	h.reply(s, i, "generic.done", nil)
}

func (h *Handler) reply(s *discordgo.Session, i *discordgo.InteractionCreate, key string, data map[string]any) {
	respondEphemeral(s, i.Interaction, h.t.T(h.locale, key, data))
}

func (h *Handler) fail(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	h.logger.Debug("command rejected", zap.Error(err))
	respondEphemeral(s, i.Interaction, h.t.T(h.locale, pkgdiscord.MessageKey(err), nil))
}

func (h *Handler) optionUser(i *discordgo.InteractionCreate, opts optionMap, name string) (input.UserRef, error) {
	opt, ok := opts[name]
	if !ok {
		return input.UserRef{}, fmt.Errorf("missing option %q", name)
	}
	id, err := strconv.ParseInt(opt.Value.(string), 10, 64)
	if err != nil {
		return input.UserRef{}, fmt.Errorf("parse user option: %w", err)
	}
	ref := input.UserRef{ID: id}
	if resolved := i.ApplicationCommandData().Resolved; resolved != nil {
		if user, ok := resolved.Users[opt.Value.(string)]; ok {
			ref.Name = user.Username
		}
	}
	return ref, nil
}

func slotName(event *entities.Event, number int) string {
	slot, err := event.FindSlot(number)
	if err != nil {
		return ""
	}
	return slot.Name
}

func channelRef(i *discordgo.InteractionCreate) (input.EventRef, error) {
	channelID, err := strconv.ParseInt(i.ChannelID, 10, 64)
	if err != nil {
		return input.EventRef{}, fmt.Errorf("parse channel id: %w", err)
	}
	return input.ByChannel(channelID), nil
}

func callerOf(i *discordgo.InteractionCreate) (input.UserRef, error) {
	if i.Member == nil || i.Member.User == nil {
		return input.UserRef{}, fmt.Errorf("interaction without member")
	}
	id, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		return input.UserRef{}, fmt.Errorf("parse user id: %w", err)
	}
	return input.UserRef{ID: id, Name: resolveDisplayName(i.Member)}, nil
}

type optionMap map[string]*discordgo.ApplicationCommandInteractionDataOption

func namedOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) optionMap {
	m := make(optionMap, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

func (m optionMap) has(name string) bool {
	_, ok := m[name]
	return ok
}

func (m optionMap) integer(name string) int64 {
	if opt, ok := m[name]; ok {
		return opt.IntValue()
	}
	return 0
}

func (m optionMap) text(name string) string {
	if opt, ok := m[name]; ok {
		return opt.StringValue()
	}
	return ""
}
