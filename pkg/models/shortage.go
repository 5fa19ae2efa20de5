// Package models defines the data model shared by the tracker services.
package models

import "sort"

// Record is one drug-shortage entry as decoded from JSON. Fields are opaque
// to the tracker; records are never mutated in place, only replaced wholesale
// between runs.
type Record map[string]interface{}

func (r Record) stringField(name string) string {
	if v, ok := r[name].(string); ok {
		return v
	}
	return ""
}

// Key returns the stable identifier under which the record is stored.
func (r Record) Key() string {
	return r.stringField("key")
}

// DrugName returns the display name of the drug, or "unknown" when the
// upstream record carries none.
func (r Record) DrugName() string {
	if name := r.stringField("drug_name"); name != "" {
		return name
	}
	return "unknown"
}

// Status returns the shortage status, or "n/a" when absent.
func (r Record) Status() string {
	if status := r.stringField("status"); status != "" {
		return status
	}
	return "n/a"
}

// RecordCollection is the full set of records observed at one point in time,
// keyed by identifier. An empty collection is the canonical representation of
// "no prior snapshot".
type RecordCollection map[string]Record

// Keys returns the identifiers in ascending order.
func (rc RecordCollection) Keys() []string {
	keys := make([]string, 0, len(rc))
	for k := range rc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
