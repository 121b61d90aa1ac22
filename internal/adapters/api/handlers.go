package api

import (
	"net/http"
	"strconv"
	"time"

	"slotbot/internal/domain/entities"
	"slotbot/internal/ports/input"
)

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	guildID, _ := strconv.ParseInt(q.Get("guild"), 10, 64)
	includeHidden := q.Get("includeHidden") == "true"

	start := time.Now()
	end := start.AddDate(1, 0, 0)
	if v := q.Get("start"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			s.badRequest(w, "invalid start (RFC3339 expected)")
			return
		}
		start = t
	}
	if v := q.Get("end"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			s.badRequest(w, "invalid end (RFC3339 expected)")
			return
		}
		end = t
	}

	events, err := s.events.ListEventsBetween(r.Context(), guildID, start, end, includeHidden)
	if err != nil {
		s.respondError(w, err)
		return
	}
	dtos := make([]eventDTO, 0, len(events))
	for i := range events {
		dtos = append(dtos, toEventDTO(&events[i]))
	}
	s.respondJSON(w, http.StatusOK, dtos)
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	event, err := s.events.CreateEvent(r.Context(), req.toEntity())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondEvent(w, http.StatusCreated, event)
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	ref, err := eventRef(r)
	if err != nil {
		s.badRequest(w, "invalid event id")
		return
	}
	event, err := s.events.GetEvent(r.Context(), ref)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondEvent(w, http.StatusOK, event)
}

func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request) {
	ref, err := eventRef(r)
	if err != nil {
		s.badRequest(w, "invalid event id")
		return
	}
	var req updateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	event, err := s.events.UpdateEvent(r.Context(), ref.EventID, input.EventUpdate{
		Name:          req.Name,
		DateTime:      req.DateTime,
		Description:   req.Description,
		MissionType:   req.MissionType,
		MissionLength: req.MissionLength,
		PictureURL:    req.PictureURL,
		Hidden:        req.Hidden,
		Shareable:     req.Shareable,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondEvent(w, http.StatusOK, event)
}

func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	ref, err := eventRef(r)
	if err != nil {
		s.badRequest(w, "invalid event id")
		return
	}
	if err := s.events.DeleteEvent(r.Context(), ref.EventID); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) archiveEvent(w http.ResponseWriter, r *http.Request) {
	ref, err := eventRef(r)
	if err != nil {
		s.badRequest(w, "invalid event id")
		return
	}
	if err := s.events.ArchiveEvent(r.Context(), ref); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}

// assignChannel binds the event to a Discord channel: the discord adapter
// posts the info and slotlist messages, then the assignment is persisted with
// their ids.
func (s *Server) assignChannel(w http.ResponseWriter, r *http.Request) {
	ref, err := eventRef(r)
	if err != nil {
		s.badRequest(w, "invalid event id")
		return
	}
	var req assignChannelRequest
	if err := decodeJSON(r, &req); err != nil || req.ChannelID == 0 {
		s.badRequest(w, "invalid request body")
		return
	}

	event, err := s.events.GetEvent(r.Context(), ref)
	if err != nil {
		s.respondError(w, err)
		return
	}
	infoID, slotlistID, err := s.publisher.PostEventMessages(r.Context(), event, req.ChannelID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	event, err = s.events.AssignChannel(r.Context(), ref.EventID, req.ChannelID, infoID, slotlistID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondEvent(w, http.StatusOK, event)
}

func (s *Server) slot(w http.ResponseWriter, r *http.Request) {
	ref, err := eventRef(r)
	if err != nil {
		s.badRequest(w, "invalid event id")
		return
	}
	var req slotRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	event, err := s.events.Slot(r.Context(), ref, req.Number, input.UserRef{ID: req.UserID, Name: req.UserName})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondEvent(w, http.StatusOK, event)
}

func (s *Server) unslot(w http.ResponseWriter, r *http.Request) {
	ref, err := eventRef(r)
	if err != nil {
		s.badRequest(w, "invalid event id")
		return
	}
	var req unslotRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	var event *entities.Event
	if req.Number != nil {
		event, _, err = s.events.UnslotNumber(r.Context(), ref, *req.Number)
	} else {
		event, err = s.events.Unslot(r.Context(), ref, input.UserRef{ID: req.UserID})
	}
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondEvent(w, http.StatusOK, event)
}

func (s *Server) randomSlot(w http.ResponseWriter, r *http.Request) {
	ref, err := eventRef(r)
	if err != nil {
		s.badRequest(w, "invalid event id")
		return
	}
	var req slotRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	event, number, err := s.events.RandomSlot(r.Context(), ref, input.UserRef{ID: req.UserID, Name: req.UserName})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, struct {
		Number int      `json:"number"`
		Event  eventDTO `json:"event"`
	}{Number: number, Event: toEventDTO(event)})
}

func (s *Server) swap(w http.ResponseWriter, r *http.Request) {
	ref, err := eventRef(r)
	if err != nil {
		s.badRequest(w, "invalid event id")
		return
	}
	var req swapRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	event, err := s.events.Swap(r.Context(), ref, req.Numbers)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondEvent(w, http.StatusOK, event)
}

func (s *Server) addSlot(w http.ResponseWriter, r *http.Request) {
	ref, err := eventRef(r)
	if err != nil {
		s.badRequest(w, "invalid event id")
		return
	}
	var req addSlotRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	event, err := s.events.AddSlot(r.Context(), ref, req.SquadPosition, input.SlotSpec{
		Name:               req.Name,
		Number:             req.Number,
		ReservedForGuildID: req.ReservedForGuildID,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondEvent(w, http.StatusOK, event)
}

func (s *Server) renameSlot(w http.ResponseWriter, r *http.Request) {
	ref, err := eventRef(r)
	if err != nil {
		s.badRequest(w, "invalid event id")
		return
	}
	number, err := intParam(r, "number")
	if err != nil {
		s.badRequest(w, "invalid slot number")
		return
	}
	var req renameRequest
	if err := decodeJSON(r, &req); err != nil || req.Name == "" {
		s.badRequest(w, "invalid request body")
		return
	}
	event, err := s.events.RenameSlot(r.Context(), ref, number, req.Name)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondEvent(w, http.StatusOK, event)
}

func (s *Server) deleteSlot(w http.ResponseWriter, r *http.Request) {
	ref, err := eventRef(r)
	if err != nil {
		s.badRequest(w, "invalid event id")
		return
	}
	number, err := intParam(r, "number")
	if err != nil {
		s.badRequest(w, "invalid slot number")
		return
	}
	event, err := s.events.DeleteSlot(r.Context(), ref, number)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondEvent(w, http.StatusOK, event)
}

func (s *Server) blockSlot(w http.ResponseWriter, r *http.Request) {
	ref, err := eventRef(r)
	if err != nil {
		s.badRequest(w, "invalid event id")
		return
	}
	number, err := intParam(r, "number")
	if err != nil {
		s.badRequest(w, "invalid slot number")
		return
	}
	var req blockSlotRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body")
		return
	}
	event, err := s.events.BlockSlot(r.Context(), ref, number, req.Replacement)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondEvent(w, http.StatusOK, event)
}

func (s *Server) addSquad(w http.ResponseWriter, r *http.Request) {
	ref, err := eventRef(r)
	if err != nil {
		s.badRequest(w, "invalid event id")
		return
	}
	var req renameRequest
	if err := decodeJSON(r, &req); err != nil || req.Name == "" {
		s.badRequest(w, "invalid request body")
		return
	}
	event, err := s.events.AddSquad(r.Context(), ref, req.Name)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondEvent(w, http.StatusOK, event)
}

func (s *Server) renameSquad(w http.ResponseWriter, r *http.Request) {
	ref, err := eventRef(r)
	if err != nil {
		s.badRequest(w, "invalid event id")
		return
	}
	position, err := intParam(r, "position")
	if err != nil {
		s.badRequest(w, "invalid squad position")
		return
	}
	var req renameRequest
	if err := decodeJSON(r, &req); err != nil || req.Name == "" {
		s.badRequest(w, "invalid request body")
		return
	}
	event, err := s.events.RenameSquad(r.Context(), ref, position, req.Name)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondEvent(w, http.StatusOK, event)
}

func (s *Server) deleteSquad(w http.ResponseWriter, r *http.Request) {
	ref, err := eventRef(r)
	if err != nil {
		s.badRequest(w, "invalid event id")
		return
	}
	position, err := intParam(r, "position")
	if err != nil {
		s.badRequest(w, "invalid squad position")
		return
	}
	event, err := s.events.DeleteSquad(r.Context(), ref, position)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondEvent(w, http.StatusOK, event)
}
