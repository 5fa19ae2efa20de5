package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fdawatch/fdawatch/pkg/models"
)

func collection(records ...models.Record) models.RecordCollection {
	rc := models.RecordCollection{}
	for _, r := range records {
		rc[r.Key()] = r
	}
	return rc
}

func TestDiffIdentity(t *testing.T) {
	rc := collection(
		models.Record{"key": "A", "status": "shortage", "raw": map[string]interface{}{"id": "A"}},
		models.Record{"key": "B", "status": "resolved"},
	)

	cs := Diff(rc, rc)

	assert.Empty(t, cs.Added)
	assert.Empty(t, cs.Removed)
	assert.Empty(t, cs.Changed)
	assert.True(t, cs.Empty())
}

func TestDiffBothEmpty(t *testing.T) {
	cs := Diff(models.RecordCollection{}, nil)
	assert.True(t, cs.Empty())
}

func TestDiffEmptyPrevious(t *testing.T) {
	current := collection(
		models.Record{"key": "A", "status": "shortage"},
		models.Record{"key": "B", "status": "resolved"},
	)

	cs := Diff(models.RecordCollection{}, current)

	require.Len(t, cs.Added, 2)
	assert.Equal(t, "A", cs.Added[0].Key)
	assert.Equal(t, "B", cs.Added[1].Key)
	assert.Equal(t, current["A"], cs.Added[0].Record)
	assert.Equal(t, current["B"], cs.Added[1].Record)
	assert.Empty(t, cs.Removed)
	assert.Empty(t, cs.Changed)
}

func TestDiffEmptyCurrent(t *testing.T) {
	previous := collection(
		models.Record{"key": "A", "status": "shortage"},
		models.Record{"key": "B", "status": "resolved"},
	)

	cs := Diff(previous, models.RecordCollection{})

	require.Len(t, cs.Removed, 2)
	assert.Equal(t, "A", cs.Removed[0].Key)
	assert.Equal(t, "B", cs.Removed[1].Key)
	assert.Equal(t, previous["B"], cs.Removed[1].Record)
	assert.Empty(t, cs.Added)
	assert.Empty(t, cs.Changed)
}

func TestDiffConcreteScenario(t *testing.T) {
	previous := models.RecordCollection{
		"A": {"id": "A", "status": "shortage"},
		"B": {"id": "B", "status": "resolved"},
	}
	current := models.RecordCollection{
		"A": {"id": "A", "status": "resolved"},
		"C": {"id": "C", "status": "shortage"},
	}

	cs := Diff(previous, current)

	require.Len(t, cs.Added, 1)
	assert.Equal(t, "C", cs.Added[0].Key)
	assert.Equal(t, current["C"], cs.Added[0].Record)

	require.Len(t, cs.Removed, 1)
	assert.Equal(t, "B", cs.Removed[0].Key)
	assert.Equal(t, previous["B"], cs.Removed[0].Record)

	require.Len(t, cs.Changed, 1)
	assert.Equal(t, "A", cs.Changed[0].Key)
	assert.Equal(t, map[string]models.FieldChange{
		"status": {Old: "shortage", New: "resolved"},
	}, cs.Changed[0].Delta)
}

func TestDiffComplementarity(t *testing.T) {
	previous := models.RecordCollection{
		"A": {"id": "A", "status": "shortage"},
		"B": {"id": "B", "status": "resolved"},
		"D": {"id": "D", "status": "shortage"},
	}
	current := models.RecordCollection{
		"A": {"id": "A", "status": "resolved"},
		"C": {"id": "C", "status": "shortage"},
		"D": {"id": "D", "status": "shortage"},
	}

	cs := Diff(previous, current)

	seen := map[string]string{}
	for _, e := range cs.Added {
		seen[e.Key] = "added"
	}
	for _, e := range cs.Removed {
		_, dup := seen[e.Key]
		require.False(t, dup, "key %q in more than one sequence", e.Key)
		seen[e.Key] = "removed"
	}
	for _, c := range cs.Changed {
		_, dup := seen[c.Key]
		require.False(t, dup, "key %q in more than one sequence", c.Key)
		seen[c.Key] = "changed"
	}

	union := map[string]bool{}
	for k := range previous {
		union[k] = true
	}
	for k := range current {
		union[k] = true
	}
	for k := range seen {
		assert.True(t, union[k], "reported key %q not in either input", k)
	}

	// D is common and unchanged, so exactly A, B, C are reported.
	assert.Len(t, seen, len(union)-1)
	assert.NotContains(t, seen, "D")
}

func TestDiffDeltaMinimality(t *testing.T) {
	previous := models.RecordCollection{
		"A": {"id": "A", "status": "shortage", "reason": "demand", "updated": "2026-01-01"},
	}
	current := models.RecordCollection{
		"A": {"id": "A", "status": "resolved", "reason": "demand", "updated": "2026-02-01"},
	}

	cs := Diff(previous, current)

	require.Len(t, cs.Changed, 1)
	delta := cs.Changed[0].Delta
	require.NotEmpty(t, delta)
	assert.NotContains(t, delta, "id")
	assert.NotContains(t, delta, "reason")
	assert.Equal(t, models.FieldChange{Old: "shortage", New: "resolved"}, delta["status"])
	assert.Equal(t, models.FieldChange{Old: "2026-01-01", New: "2026-02-01"}, delta["updated"])
}

func TestDiffFieldAbsence(t *testing.T) {
	previous := models.RecordCollection{
		"A": {"id": "A", "reason": "demand"},
	}
	current := models.RecordCollection{
		"A": {"id": "A", "therapeutic_category": "oncology"},
	}

	cs := Diff(previous, current)

	require.Len(t, cs.Changed, 1)
	assert.Equal(t, map[string]models.FieldChange{
		"reason":               {Old: "demand", New: nil},
		"therapeutic_category": {Old: nil, New: "oncology"},
	}, cs.Changed[0].Delta)
}

func TestDiffTypeMismatchCountsAsChange(t *testing.T) {
	previous := models.RecordCollection{
		"A": {"id": "A", "package_count": "3"},
	}
	current := models.RecordCollection{
		"A": {"id": "A", "package_count": float64(3)},
	}

	cs := Diff(previous, current)

	require.Len(t, cs.Changed, 1)
	assert.Equal(t, models.FieldChange{Old: "3", New: float64(3)}, cs.Changed[0].Delta["package_count"])
}

func TestDiffNestedValues(t *testing.T) {
	previous := models.RecordCollection{
		"A": {
			"id": "A",
			"openfda": map[string]interface{}{
				"manufacturer_name": []interface{}{"Acme", "Umbrella"},
			},
		},
	}
	unchanged := models.RecordCollection{
		"A": {
			"id": "A",
			"openfda": map[string]interface{}{
				"manufacturer_name": []interface{}{"Acme", "Umbrella"},
			},
		},
	}
	reordered := models.RecordCollection{
		"A": {
			"id": "A",
			"openfda": map[string]interface{}{
				"manufacturer_name": []interface{}{"Umbrella", "Acme"},
			},
		},
	}

	assert.True(t, Diff(previous, unchanged).Empty())

	cs := Diff(previous, reordered)
	require.Len(t, cs.Changed, 1)
	assert.Contains(t, cs.Changed[0].Delta, "openfda")
}

func TestValueEqual(t *testing.T) {
	tests := []struct {
		name string
		a    interface{}
		b    interface{}
		want bool
	}{
		{"nils", nil, nil, true},
		{"nil vs scalar", nil, "x", false},
		{"equal strings", "shortage", "shortage", true},
		{"different strings", "shortage", "resolved", false},
		{"equal numbers", float64(10), float64(10), true},
		{"string vs number", "10", float64(10), false},
		{"bool vs nil", true, nil, false},
		{"scalar vs map", "x", map[string]interface{}{}, false},
		{"map vs slice", map[string]interface{}{}, []interface{}{}, false},
		{
			"equal nested maps",
			map[string]interface{}{"a": []interface{}{float64(1), "two"}},
			map[string]interface{}{"a": []interface{}{float64(1), "two"}},
			true,
		},
		{
			"extra key",
			map[string]interface{}{"a": float64(1)},
			map[string]interface{}{"a": float64(1), "b": nil},
			false,
		},
		{
			"slice length mismatch",
			[]interface{}{float64(1)},
			[]interface{}{float64(1), float64(2)},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValueEqual(tt.a, tt.b))
		})
	}
}
