package input

import "time"

// EventRef addresses an event either by its id or by the Discord channel it
// is assigned to. Exactly one field is set.
type EventRef struct {
	EventID   int64
	ChannelID int64
}

func ByID(eventID int64) EventRef {
	return EventRef{EventID: eventID}
}

func ByChannel(channelID int64) EventRef {
	return EventRef{ChannelID: channelID}
}

// UserRef carries a Discord user id plus the display name used when the user
// is created lazily on first reference.
type UserRef struct {
	ID   int64
	Name string
}

// SlotSpec describes a slot to add to a squad.
type SlotSpec struct {
	Name   string
	Number int
	// ReservedForGuildID restricts the slot to one guild; the placeholder
	// guild id is resolved to "no restriction" at creation time.
	ReservedForGuildID int64
}

// EventUpdate is a partial event update; nil fields are left untouched.
type EventUpdate struct {
	Name          *string
	DateTime      *time.Time
	Description   *string
	MissionType   *string
	MissionLength *string
	PictureURL    *string
	Hidden        *bool
	Shareable     *bool
}
