package entities

import (
	"slotbot/internal/domain"
)

// Diff compares a committed event subtree against its pre-mutation snapshot
// and reports every write as an explicit change record. The persistence layer
// calls this once per unit of work; the update interceptor consumes the
// result after commit.
//
// Slots are identified by their event-unique number, squads by their id (new
// squads have no id yet and count as membership changes).
func Diff(before, after *Event) []domain.Change {
	var changes []domain.Change

	if fields := eventFieldChanges(before, after); len(fields) > 0 {
		changes = append(changes, domain.Change{
			Op:     domain.OpUpdate,
			Entity: after,
			Fields: fields,
		})
	}

	changes = append(changes, slotChanges(before, after)...)
	changes = append(changes, squadChanges(before, after)...)
	changes = append(changes, detailChanges(before, after)...)

	return changes
}

func eventFieldChanges(before, after *Event) []domain.FieldChange {
	var fields []domain.FieldChange
	record := func(name string, old, new any) {
		if old != new {
			fields = append(fields, domain.FieldChange{Name: name, Old: old, New: new})
		}
	}
	record(domain.PropName, before.Name, after.Name)
	record(domain.PropDescription, before.Description, after.Description)
	record(domain.PropHidden, before.Hidden, after.Hidden)
	record(domain.PropShareable, before.Shareable, after.Shareable)
	record(domain.PropArchived, before.Archived, after.Archived)
	record(domain.PropMissionType, before.MissionType, after.MissionType)
	record(domain.PropMissionLen, before.MissionLength, after.MissionLength)
	record(domain.PropPictureURL, before.PictureURL, after.PictureURL)
	if !before.DateTime.Equal(after.DateTime) {
		fields = append(fields, domain.FieldChange{
			Name: domain.PropDateTime,
			Old:  before.DateTime,
			New:  after.DateTime,
		})
	}
	return fields
}

// slotRef pairs a slot with the reserve membership of its squad at diff time.
type slotRef struct {
	slot    Slot
	reserve bool
}

func slotsByNumber(e *Event) map[int]slotRef {
	index := make(map[int]slotRef)
	for i := range e.Squads {
		reserve := e.Squads[i].IsReserve()
		for _, slot := range e.Squads[i].Slots {
			index[slot.Number] = slotRef{slot: slot, reserve: reserve}
		}
	}
	return index
}

func slotChanges(before, after *Event) []domain.Change {
	oldIndex := slotsByNumber(before)
	newIndex := slotsByNumber(after)
	var changes []domain.Change

	for number, ref := range newIndex {
		old, existed := oldIndex[number]
		if !existed {
			slot := ref.slot
			changes = append(changes, domain.Change{
				Op:      domain.OpCreate,
				Entity:  &slot,
				Reserve: ref.reserve,
			})
			continue
		}
		var fields []domain.FieldChange
		if old.slot.UserID != ref.slot.UserID {
			fields = append(fields, domain.FieldChange{
				Name: domain.PropUserID,
				Old:  old.slot.UserID,
				New:  ref.slot.UserID,
			})
		}
		if old.slot.Name != ref.slot.Name {
			fields = append(fields, domain.FieldChange{
				Name: domain.PropName,
				Old:  old.slot.Name,
				New:  ref.slot.Name,
			})
		}
		if old.slot.Replacement != ref.slot.Replacement {
			fields = append(fields, domain.FieldChange{
				Name: domain.PropReplacement,
				Old:  old.slot.Replacement,
				New:  ref.slot.Replacement,
			})
		}
		if len(fields) > 0 {
			slot := ref.slot
			changes = append(changes, domain.Change{
				Op:      domain.OpUpdate,
				Entity:  &slot,
				Reserve: ref.reserve,
				Fields:  fields,
			})
		}
	}

	for number, ref := range oldIndex {
		if _, exists := newIndex[number]; !exists {
			slot := ref.slot
			changes = append(changes, domain.Change{
				Op:      domain.OpDelete,
				Entity:  &slot,
				Reserve: ref.reserve,
			})
		}
	}

	return changes
}

func squadChanges(before, after *Event) []domain.Change {
	var changes []domain.Change

	oldByID := make(map[int64]*Squad)
	for i := range before.Squads {
		if id := before.Squads[i].ID; id != 0 {
			oldByID[id] = &before.Squads[i]
		}
	}

	membershipChanged := len(before.Squads) != len(after.Squads)
	for i := range after.Squads {
		squad := &after.Squads[i]
		old, known := oldByID[squad.ID]
		if squad.ID == 0 || !known {
			membershipChanged = true
			continue
		}
		var fields []domain.FieldChange
		if old.Name != squad.Name {
			fields = append(fields, domain.FieldChange{Name: domain.PropName, Old: old.Name, New: squad.Name})
		}
		if old.ReservedForGuildID != squad.ReservedForGuildID {
			fields = append(fields, domain.FieldChange{
				Name: domain.PropReservedFor,
				Old:  old.ReservedForGuildID,
				New:  squad.ReservedForGuildID,
			})
		}
		if len(fields) > 0 {
			changes = append(changes, domain.Change{
				Op:      domain.OpUpdate,
				Entity:  squad,
				Reserve: squad.IsReserve(),
				Fields:  fields,
			})
		}
		if len(old.Slots) != len(squad.Slots) {
			changes = append(changes, domain.Change{
				Op:      domain.OpCollection,
				Entity:  squad,
				Reserve: squad.IsReserve(),
			})
		}
	}

	if membershipChanged && len(after.Squads) > 0 {
		first := &after.Squads[0]
		changes = append(changes, domain.Change{
			Op:      domain.OpCollection,
			Entity:  first,
			Reserve: first.IsReserve(),
		})
	}

	return changes
}

func detailChanges(before, after *Event) []domain.Change {
	if len(before.Details) == len(after.Details) {
		equal := true
		for i := range after.Details {
			if before.Details[i] != after.Details[i] {
				equal = false
				break
			}
		}
		if equal {
			return nil
		}
	}
	if len(after.Details) == 0 {
		return nil
	}
	first := after.Details[0]
	return []domain.Change{{Op: domain.OpCollection, Entity: &first}}
}
