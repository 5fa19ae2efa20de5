// Package diff computes the changeset between two drug-shortage snapshots.
package diff

import (
	"github.com/fdawatch/fdawatch/pkg/models"
)

// Diff compares the previously persisted collection against a freshly fetched
// one and returns the added, removed, and changed records. It is a pure
// function: no I/O, no shared state, deterministic for a given pair of
// inputs. Either collection may be empty or nil; an empty previous collection
// is the first-run case and yields everything as added.
//
// All three sequences of the returned changeset are sorted ascending by
// identifier so that repeated runs over the same inputs render identically.
func Diff(previous, current models.RecordCollection) models.Changeset {
	var cs models.Changeset

	for _, key := range current.Keys() {
		if _, ok := previous[key]; !ok {
			cs.Added = append(cs.Added, models.Entry{Key: key, Record: current[key]})
		}
	}

	for _, key := range previous.Keys() {
		if _, ok := current[key]; !ok {
			cs.Removed = append(cs.Removed, models.Entry{Key: key, Record: previous[key]})
		}
	}

	for _, key := range previous.Keys() {
		after, ok := current[key]
		if !ok {
			continue
		}
		before := previous[key]
		delta := fieldDelta(before, after)
		if len(delta) == 0 {
			continue
		}
		cs.Changed = append(cs.Changed, models.Change{
			Key:    key,
			Before: before,
			After:  after,
			Delta:  delta,
		})
	}

	return cs
}

// fieldDelta compares two versions of a record field by field over the union
// of their field names. A field present in only one version differs against
// nil. An empty result means the record is unchanged.
func fieldDelta(before, after models.Record) map[string]models.FieldChange {
	delta := make(map[string]models.FieldChange)

	for name, oldVal := range before {
		newVal, ok := after[name]
		if !ok {
			delta[name] = models.FieldChange{Old: oldVal, New: nil}
			continue
		}
		if !ValueEqual(oldVal, newVal) {
			delta[name] = models.FieldChange{Old: oldVal, New: newVal}
		}
	}

	for name, newVal := range after {
		if _, ok := before[name]; !ok {
			delta[name] = models.FieldChange{Old: nil, New: newVal}
		}
	}

	if len(delta) == 0 {
		return nil
	}
	return delta
}

// ValueEqual reports structural equality of two JSON-decoded values: objects
// and arrays are compared recursively, scalars by value. Values of different
// dynamic types are unequal, never an error.
func ValueEqual(a, b interface{}) bool {
	switch av := a.(type) {
	case map[string]interface{}:
		bv, ok := b.(map[string]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bval, ok := bv[k]
			if !ok || !ValueEqual(v, bval) {
				return false
			}
		}
		return true
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !ValueEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		switch b.(type) {
		case map[string]interface{}, []interface{}:
			return false
		}
		return a == b
	}
}
