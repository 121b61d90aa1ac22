package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"slotbot/internal/adapters/api"
	"slotbot/internal/adapters/calendar"
	"slotbot/internal/adapters/discord"
	"slotbot/internal/adapters/reminder"
	"slotbot/internal/application"
	"slotbot/internal/config"
	"slotbot/internal/infrastructure/database"
	"slotbot/internal/infrastructure/i18n"
	"slotbot/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx := context.Background()

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer pool.Close()

	eventStore := database.NewEventStore(pool)
	userRepo := database.NewUserRepository(pool)

	translator := i18n.NewTranslator(cfg.DefaultLocale, log)

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	calendarWriter := calendar.NewWriter(eventStore, cfg.CalendarDir, log)
	reminders := reminder.New(eventStore, log)
	notifier := discord.NewNotifier(session, calendarWriter, reminders, translator, cfg.DefaultLocale, log)
	reminders.OnRemind(notifier.Remind)

	users := application.NewUserService(userRepo)
	dispatcher := application.NewDispatcher(notifier, log)
	events := application.NewEventService(eventStore, users, dispatcher)

	handler := discord.NewHandler(events, notifier, translator, cfg.DefaultLocale, log)
	bot := discord.NewBot(session, cfg, handler, log)

	server := api.NewServer(cfg.HTTPAddr, events, notifier, log)

	if err := bot.Start(); err != nil {
		return fmt.Errorf("start bot: %w", err)
	}
	defer bot.Stop()

	if err := reminders.Start(ctx); err != nil {
		return fmt.Errorf("start reminders: %w", err)
	}
	defer reminders.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case sig := <-stop:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown failed", zap.Error(err))
	}
	return nil
}
