// Package api exposes the event engine over HTTP for the web frontend and
// external integrations.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"slotbot/internal/domain"
	"slotbot/internal/domain/entities"
	"slotbot/internal/ports/input"
)

// EventPublisher posts the Discord messages of a freshly assigned event and
// returns their ids. Implemented by the discord adapter.
type EventPublisher interface {
	PostEventMessages(ctx context.Context, event *entities.Event, channelID int64) (infoID, slotlistID int64, err error)
}

// Server serves the JSON API.
type Server struct {
	http      *http.Server
	events    input.EventUseCase
	publisher EventPublisher
	logger    *zap.Logger
}

func NewServer(addr string, events input.EventUseCase, publisher EventPublisher, logger *zap.Logger) *Server {
	s := &Server{
		events:    events,
		publisher: publisher,
		logger:    logger,
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes() *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Route("/api/events", func(r chi.Router) {
		r.Get("/", s.listEvents)
		r.Post("/", s.createEvent)

		r.Route("/{eventID}", func(r chi.Router) {
			r.Get("/", s.getEvent)
			r.Patch("/", s.updateEvent)
			r.Delete("/", s.deleteEvent)
			r.Post("/archive", s.archiveEvent)
			r.Post("/channel", s.assignChannel)

			r.Post("/slot", s.slot)
			r.Post("/unslot", s.unslot)
			r.Post("/randomSlot", s.randomSlot)
			r.Post("/swap", s.swap)

			r.Post("/slots", s.addSlot)
			r.Put("/slots/{number}", s.renameSlot)
			r.Delete("/slots/{number}", s.deleteSlot)
			r.Post("/slots/{number}/block", s.blockSlot)

			r.Post("/squads", s.addSquad)
			r.Put("/squads/{position}", s.renameSquad)
			r.Delete("/squads/{position}", s.deleteSquad)
		})
	})

	return router
}

// Start runs the HTTP server until Shutdown.
func (s *Server) Start() error {
	s.logger.Info("http api listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("encode response failed", zap.Error(err))
	}
}

func (s *Server) respondEvent(w http.ResponseWriter, status int, event *entities.Event) {
	s.respondJSON(w, status, toEventDTO(event))
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors onto HTTP statuses: not-found → 404,
// business conflicts → 409, everything else → 500.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsNotFound(err):
		s.respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case domain.IsConflict(err):
		s.respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("request failed", zap.Error(err))
		s.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (s *Server) badRequest(w http.ResponseWriter, message string) {
	s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// eventRef resolves the {eventID} route parameter.
func eventRef(r *http.Request) (input.EventRef, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "eventID"), 10, 64)
	if err != nil {
		return input.EventRef{}, err
	}
	return input.ByID(id), nil
}

func intParam(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}
