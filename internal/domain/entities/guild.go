package entities

// PlaceholderGuildID marks a "reserved for" guild reference that has not been
// resolved yet. At event creation it collapses to 0, i.e. no restriction.
const PlaceholderGuildID int64 = -1
