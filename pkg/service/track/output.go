package track

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/wI2L/jsondiff"
	"go.uber.org/zap"

	"github.com/fdawatch/fdawatch/pkg/models"
)

// Report is the rendered output of one run. Patches carries an RFC 6902
// patch per changed record in JSON mode so downstream tooling can apply the
// change mechanically.
type Report struct {
	RunID     string                    `json:"runId"`
	Timestamp string                    `json:"timestamp"`
	Fetched   int                       `json:"fetched"`
	Changeset models.Changeset          `json:"changeset"`
	Patches   map[string]jsondiff.Patch `json:"patches,omitempty"`
}

func (t *Tracker) renderJSON(report Report) error {
	return RenderJSON(t.out, t.logger, report)
}

func (t *Tracker) renderHuman(report Report) {
	maxPreview := t.config.Track.MaxPreview
	RenderHuman(t.out, report, maxPreview)
}

// RenderJSON writes the machine-readable report, augmenting each changed
// record with its RFC 6902 patch.
func RenderJSON(w io.Writer, logger *zap.Logger, report Report) error {
	report.Patches = make(map[string]jsondiff.Patch, len(report.Changeset.Changed))
	for _, change := range report.Changeset.Changed {
		patch, err := jsondiff.Compare(change.Before, change.After)
		if err != nil {
			logger.Warn("failed to compute the json patch for a changed record",
				zap.String("key", change.Key), zap.Error(err))
			continue
		}
		report.Patches[change.Key] = patch
	}
	if len(report.Patches) == 0 {
		report.Patches = nil
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// RenderHuman writes the counts and previews of added, removed, and changed
// records, truncating each listing at maxPreview items.
func RenderHuman(w io.Writer, report Report, maxPreview int) {
	if maxPreview <= 0 {
		maxPreview = 5
	}

	if report.RunID != "" {
		fmt.Fprintf(w, "Run: %s\n", models.HighlightGrayString(report.RunID))
	}
	fmt.Fprintf(w, "Timestamp (UTC): %s\n", report.Timestamp)
	fmt.Fprintf(w, "Fetched records: %d\n", report.Fetched)

	renderEntries(w, report.Changeset.Added, "Added", models.HighlightAddedString, maxPreview)
	renderEntries(w, report.Changeset.Removed, "Removed", models.HighlightRemovedString, maxPreview)
	renderChanged(w, report.Changeset.Changed, maxPreview)
}

func renderEntries(w io.Writer, entries []models.Entry, label string, highlight func(...interface{}) string, maxPreview int) {
	fmt.Fprintf(w, "%s: %d\n", label, len(entries))
	for i, entry := range entries {
		if i == maxPreview {
			fmt.Fprintf(w, "  ... and %d more\n", len(entries)-maxPreview)
			break
		}
		fmt.Fprintf(w, "  - %s\n", highlight(fmt.Sprintf("%s [%s] status=%s",
			entry.Record.DrugName(), entry.Key, entry.Record.Status())))
	}
}

func renderChanged(w io.Writer, changes []models.Change, maxPreview int) {
	fmt.Fprintf(w, "Changed: %d\n", len(changes))
	for i, change := range changes {
		if i == maxPreview {
			fmt.Fprintf(w, "  ... and %d more\n", len(changes)-maxPreview)
			break
		}
		fmt.Fprintf(w, "  - %s\n", models.HighlightChangedString(fmt.Sprintf("%s [%s] status %s -> %s",
			change.After.DrugName(), change.Key, change.Before.Status(), change.After.Status())))
		fmt.Fprint(w, deltaTable(change.Delta))
	}
}

// deltaTable renders the per-field old/new values of one changed record,
// fields sorted for reproducible output.
func deltaTable(delta map[string]models.FieldChange) string {
	fields := make([]string, 0, len(delta))
	for f := range delta {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	buf := &bytes.Buffer{}
	table := tablewriter.NewWriter(buf)
	table.SetHeader([]string{"Field", "Old", "New"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, f := range fields {
		table.Append([]string{f, renderValue(delta[f].Old), renderValue(delta[f].New)})
	}
	table.Render()
	return buf.String()
}

func renderValue(v interface{}) string {
	if v == nil {
		return "<absent>"
	}
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
