package domain

// Op classifies a persisted write for change interception.
type Op int

const (
	OpCreate Op = iota
	OpUpdate
	OpDelete
	// OpCollection marks a membership change of an ordered child collection
	// (an event's squad or detail list, a squad's slot list).
	OpCollection
)

// Property names reported in field changes. They match the column names used
// by the persistence layer.
const (
	PropName        = "name"
	PropDateTime    = "date_time"
	PropDescription = "description"
	PropHidden      = "hidden"
	PropShareable   = "shareable"
	PropArchived    = "archived"
	PropMissionType = "mission_type"
	PropMissionLen  = "mission_length"
	PropPictureURL  = "picture_url"
	PropUserID      = "user_id"
	PropReplacement = "replacement"
	PropReservedFor = "reserved_for"
)

// FieldChange is one property of an updated entity together with its previous
// and current value.
type FieldChange struct {
	Name string
	Old  any
	New  any
}

// Change describes one committed write to the event subtree. The persistence
// layer computes changes by diffing the aggregate against its pre-mutation
// snapshot and hands them to the update interceptor after commit.
type Change struct {
	Op     Op
	Entity any
	// Reserve is true when the written entity belongs to the reserve squad.
	// Reserve traffic is internal bookkeeping and never notifies.
	Reserve bool
	Fields  []FieldChange
}

// Field returns the change recorded for the named property, or nil.
func (c *Change) Field(name string) *FieldChange {
	for i := range c.Fields {
		if c.Fields[i].Name == name {
			return &c.Fields[i]
		}
	}
	return nil
}
