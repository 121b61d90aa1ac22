package api

import (
	"time"

	"slotbot/internal/domain/entities"
)

type eventDTO struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	DateTime      time.Time       `json:"dateTime"`
	Description   string          `json:"description,omitempty"`
	MissionType   string          `json:"missionType,omitempty"`
	MissionLength string          `json:"missionLength,omitempty"`
	PictureURL    string          `json:"pictureUrl,omitempty"`
	CreatorID     int64           `json:"creatorId"`
	Hidden        bool            `json:"hidden"`
	Shareable     bool            `json:"shareable"`
	Archived      bool            `json:"archived"`
	OwnerGuildID  int64           `json:"ownerGuildId"`
	ChannelID     int64           `json:"channelId,omitempty"`
	Squads        []squadDTO      `json:"squads"`
	Details       []eventFieldDTO `json:"details,omitempty"`
}

type squadDTO struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Position           int       `json:"position"`
	ReservedForGuildID int64     `json:"reservedForGuildId,omitempty"`
	Reserve            bool      `json:"reserve"`
	Slots              []slotDTO `json:"slots"`
}

type slotDTO struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Number             int    `json:"number"`
	UserID             int64  `json:"userId,omitempty"`
	Blocked            bool   `json:"blocked"`
	Replacement        string `json:"replacement,omitempty"`
	ReservedForGuildID int64  `json:"reservedForGuildId,omitempty"`
}

type eventFieldDTO struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

func toEventDTO(event *entities.Event) eventDTO {
	dto := eventDTO{
		ID:            event.ID,
		Name:          event.Name,
		DateTime:      event.DateTime,
		Description:   event.Description,
		MissionType:   event.MissionType,
		MissionLength: event.MissionLength,
		PictureURL:    event.PictureURL,
		CreatorID:     event.CreatorID,
		Hidden:        event.Hidden,
		Shareable:     event.Shareable,
		Archived:      event.Archived,
		OwnerGuildID:  event.OwnerGuildID,
		ChannelID:     event.ChannelID,
		Squads:        make([]squadDTO, 0, len(event.Squads)),
	}
	for i := range event.Squads {
		dto.Squads = append(dto.Squads, toSquadDTO(&event.Squads[i]))
	}
	for _, field := range event.Details {
		dto.Details = append(dto.Details, eventFieldDTO{Title: field.Title, Text: field.Text})
	}
	return dto
}

func toSquadDTO(squad *entities.Squad) squadDTO {
	dto := squadDTO{
		ID:                 squad.ID,
		Name:               squad.Name,
		Position:           squad.Position,
		ReservedForGuildID: squad.ReservedForGuildID,
		Reserve:            squad.IsReserve(),
		Slots:              make([]slotDTO, 0, len(squad.Slots)),
	}
	for i := range squad.Slots {
		slot := &squad.Slots[i]
		s := slotDTO{
			ID:                 slot.ID,
			Name:               slot.Name,
			Number:             slot.Number,
			Blocked:            slot.IsBlocked(),
			Replacement:        slot.Replacement,
			ReservedForGuildID: slot.ReservedForGuildID,
		}
		if !slot.IsEmpty() && !slot.IsBlocked() {
			s.UserID = slot.UserID
		}
		dto.Slots = append(dto.Slots, s)
	}
	return dto
}

type createEventRequest struct {
	Name          string            `json:"name"`
	DateTime      time.Time         `json:"dateTime"`
	Description   string            `json:"description"`
	MissionType   string            `json:"missionType"`
	MissionLength string            `json:"missionLength"`
	PictureURL    string            `json:"pictureUrl"`
	CreatorID     int64             `json:"creatorId"`
	CreatorName   string            `json:"creatorName"`
	Hidden        bool              `json:"hidden"`
	Shareable     bool              `json:"shareable"`
	OwnerGuildID  int64             `json:"ownerGuildId"`
	Squads        []createSquadSpec `json:"squads"`
	Details       []eventFieldDTO   `json:"details"`
}

type createSquadSpec struct {
	Name               string           `json:"name"`
	ReservedForGuildID int64            `json:"reservedForGuildId"`
	Slots              []createSlotSpec `json:"slots"`
}

type createSlotSpec struct {
	Name               string `json:"name"`
	Number             int    `json:"number"`
	ReservedForGuildID int64  `json:"reservedForGuildId"`
}

func (r *createEventRequest) toEntity() *entities.Event {
	event := &entities.Event{
		Name:          r.Name,
		DateTime:      r.DateTime,
		Description:   r.Description,
		MissionType:   r.MissionType,
		MissionLength: r.MissionLength,
		PictureURL:    r.PictureURL,
		CreatorID:     r.CreatorID,
		Hidden:        r.Hidden,
		Shareable:     r.Shareable,
		OwnerGuildID:  r.OwnerGuildID,
	}
	for pos, squadSpec := range r.Squads {
		squad := entities.Squad{
			Name:               squadSpec.Name,
			Position:           pos,
			ReservedForGuildID: squadSpec.ReservedForGuildID,
		}
		for _, slotSpec := range squadSpec.Slots {
			squad.Slots = append(squad.Slots, entities.Slot{
				Name:               slotSpec.Name,
				Number:             slotSpec.Number,
				ReservedForGuildID: slotSpec.ReservedForGuildID,
			})
		}
		event.Squads = append(event.Squads, squad)
	}
	for _, field := range r.Details {
		event.Details = append(event.Details, entities.EventField{Title: field.Title, Text: field.Text})
	}
	return event
}

type updateEventRequest struct {
	Name          *string    `json:"name"`
	DateTime      *time.Time `json:"dateTime"`
	Description   *string    `json:"description"`
	MissionType   *string    `json:"missionType"`
	MissionLength *string    `json:"missionLength"`
	PictureURL    *string    `json:"pictureUrl"`
	Hidden        *bool      `json:"hidden"`
	Shareable     *bool      `json:"shareable"`
}

type slotRequest struct {
	Number   int    `json:"number"`
	UserID   int64  `json:"userId"`
	UserName string `json:"userName"`
}

type unslotRequest struct {
	Number *int  `json:"number"`
	UserID int64 `json:"userId"`
}

type swapRequest struct {
	Numbers []int `json:"numbers"`
}

type addSlotRequest struct {
	SquadPosition      int    `json:"squadPosition"`
	Number             int    `json:"number"`
	Name               string `json:"name"`
	ReservedForGuildID int64  `json:"reservedForGuildId"`
}

type renameRequest struct {
	Name string `json:"name"`
}

type blockSlotRequest struct {
	Replacement string `json:"replacement"`
}

type assignChannelRequest struct {
	ChannelID int64 `json:"channelId"`
}
