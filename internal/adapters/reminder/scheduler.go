// Package reminder schedules one-shot start reminders for upcoming events.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"slotbot/internal/domain/entities"
	"slotbot/internal/ports/output"
)

// Lead time between the reminder and the event start.
const reminderLead = time.Hour

// Scheduler keeps one cron entry per upcoming event, firing once shortly
// before the event starts. Entries are recomputed when an event's date
// changes.
type Scheduler struct {
	cron   *cron.Cron
	store  output.EventStore
	remind func(*entities.Event)
	logger *zap.Logger

	mu      sync.Mutex
	entries map[int64]cron.EntryID
}

func New(store output.EventStore, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		store:   store,
		logger:  logger,
		entries: make(map[int64]cron.EntryID),
	}
}

// OnRemind sets the callback invoked when a reminder fires. Must be called
// before Start.
func (s *Scheduler) OnRemind(fn func(*entities.Event)) {
	s.remind = fn
}

// Start schedules reminders for all future events and runs the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	events, err := s.store.FindAllInFuture(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("load future events: %w", err)
	}
	for i := range events {
		s.schedule(&events[i])
	}
	s.cron.Start()
	s.logger.Info("reminder scheduler started", zap.Int("entries", len(s.entries)))
	return nil
}

// Stop stops the cron loop and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Reschedule drops the event's reminder entry and recreates it from the
// current date. Archived or past events end up with no entry.
func (s *Scheduler) Reschedule(ctx context.Context, eventID int64) error {
	s.mu.Lock()
	if id, ok := s.entries[eventID]; ok {
		s.cron.Remove(id)
		delete(s.entries, eventID)
	}
	s.mu.Unlock()

	event, err := s.store.FindByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("load event %d: %w", eventID, err)
	}
	if event.Archived || !event.DateTime.After(time.Now()) {
		return nil
	}
	s.schedule(event)
	return nil
}

func (s *Scheduler) schedule(event *entities.Event) {
	at := event.DateTime.Add(-reminderLead)
	if !at.After(time.Now()) {
		return
	}
	eventID := event.ID
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[eventID] = s.cron.Schedule(onceAt{t: at}, cron.FuncJob(func() {
		s.fire(eventID)
	}))
	s.logger.Debug("reminder scheduled",
		zap.Int64("event_id", eventID), zap.Time("at", at))
}

// fire reloads the event so the reminder reflects its latest state.
func (s *Scheduler) fire(eventID int64) {
	s.mu.Lock()
	delete(s.entries, eventID)
	s.mu.Unlock()

	event, err := s.store.FindByID(context.Background(), eventID)
	if err != nil {
		s.logger.Warn("reminder lookup failed",
			zap.Int64("event_id", eventID), zap.Error(err))
		return
	}
	if event.Archived || s.remind == nil {
		return
	}
	s.remind(event)
}

// onceAt fires exactly once at a fixed point in time.
type onceAt struct {
	t time.Time
}

func (o onceAt) Next(now time.Time) time.Time {
	if o.t.After(now) {
		return o.t
	}
	return time.Time{}
}
