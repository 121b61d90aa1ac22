package application

import (
	"context"

	"go.uber.org/zap"

	"slotbot/internal/ports/output"
)

// Dispatcher executes notification intents after the domain transaction has
// committed. Notifier failures are logged and swallowed; the committed domain
// change stands regardless.
type Dispatcher struct {
	notifier output.EventNotifier
	logger   *zap.Logger
}

func NewDispatcher(notifier output.EventNotifier, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{notifier: notifier, logger: logger}
}

func (d *Dispatcher) Dispatch(ctx context.Context, intents []Intent) {
	for _, intent := range intents {
		var err error
		switch intent.Kind {
		case IntentRebuildCalendar:
			err = d.notifier.RebuildCalendar(ctx, intent.Event.ID)
		case IntentUpdateNotifications:
			err = d.notifier.UpdateEventNotifications(ctx, intent.Event.ID)
		case IntentSlotChange:
			err = d.notifier.InformAboutSlotChange(ctx, intent.Event, intent.Slot, intent.NewUserID, intent.PreviousUserID)
		case IntentUpdate:
			err = d.notifier.Update(ctx, intent.Event)
		}
		if err != nil {
			d.logger.Warn("notifier call failed",
				zap.Int("intent", int(intent.Kind)),
				zap.Int64("event_id", intent.Event.ID),
				zap.Error(err),
			)
		}
	}
}
