package models

// FieldChange holds the old and new value of a single field of a changed
// record. A field present in only one version carries nil on the absent side.
type FieldChange struct {
	Old interface{} `json:"old"`
	New interface{} `json:"new"`
}

// Entry pairs an identifier with a full record, used for added and removed
// listings.
type Entry struct {
	Key    string `json:"key"`
	Record Record `json:"record"`
}

// Change describes one record present in both snapshots whose content
// differs. Delta is restricted to the fields that actually differ.
type Change struct {
	Key    string                 `json:"key"`
	Before Record                 `json:"before"`
	After  Record                 `json:"after"`
	Delta  map[string]FieldChange `json:"delta"`
}

// Changeset is the transient report produced by one diff operation. The key
// sets of the three sequences are pairwise disjoint and each sequence is
// sorted ascending by identifier.
type Changeset struct {
	Added   []Entry  `json:"added"`
	Removed []Entry  `json:"removed"`
	Changed []Change `json:"changed"`
}

// Empty reports whether the changeset carries no differences.
func (c Changeset) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Changed) == 0
}
