package run

import (
	"slices"
	"strings"
)

// applyDecisions patches the workflow text with the accumulated decisions.
// Lines not named by a decision are preserved byte for byte, and an empty
// decision set returns the input unchanged. Decisions are applied from the
// highest line index down so the strategy stays safe if it is ever extended
// to multi-line edits.
func applyDecisions(text string, decisions []*Decision) string {
	if len(decisions) == 0 {
		return text
	}
	sep := "\n"
	if strings.Contains(text, "\r\n") {
		sep = "\r\n"
	}
	lines := strings.Split(text, sep)
	ds := slices.Clone(decisions)
	slices.SortFunc(ds, func(a, b *Decision) int {
		return b.Reference.LineIndex - a.Reference.LineIndex
	})
	for _, d := range ds {
		i := d.Reference.LineIndex
		if i < 0 || i >= len(lines) {
			// A stale index means the text changed after extraction.
			// Skip the edit instead of corrupting an unrelated line.
			continue
		}
		lines[i] = d.NewLine
	}
	return strings.Join(lines, sep)
}
