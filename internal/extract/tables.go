package extract

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// DefaultTableConfidence is the minimum confidence a candidate table needs
// to be reported when the caller passes a non-positive threshold.
const DefaultTableConfidence = 0.7

const minTableRows = 3

var (
	reSpaceRun  = regexp.MustCompile(` {3,}`)
	rePageSep   = regexp.MustCompile(`^[-=_*~.]{4,}$`)
	rePunctOnly = regexp.MustCompile(`^[^\pL\pN]+$`)
	reAllCaps   = regexp.MustCompile(`^[A-Z][A-Z\s&/:,'-]{3,}$`)
)

// Section titles that routinely sit above aligned text without being part
// of a table. Matched case-insensitively against the whole trimmed line.
var nonTableTitles = map[string]struct{}{
	"professional summary": {},
	"work experience":      {},
	"education":            {},
	"skills":               {},
	"summary":              {},
	"references":           {},
	"table of contents":    {},
}

// tableScan is the accumulator carried across the line fold. A candidate is
// emitted whenever the run of consistent rows breaks.
type tableScan struct {
	buf      []TableRow
	prevCols int
}

// DetectTables groups consecutive aligned lines into candidate tables and
// returns the ones at or above threshold, sorted by descending confidence.
// Receipts and statements are full of aligned-but-not-tabular text, so the
// detector trades recall for a low false-positive rate: structure has to
// persist across at least three consecutive lines.
func DetectTables(text string, threshold float64) []TableCandidate {
	if threshold <= 0 {
		threshold = DefaultTableConfidence
	}

	var out []TableCandidate
	acc := tableScan{}
	flush := func() {
		if c, ok := buildCandidate(acc.buf); ok {
			out = append(out, c)
		}
		acc = tableScan{}
	}

	for i, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		cols := columnCount(trimmed)
		switch {
		case cols >= 2 && (len(acc.buf) == 0 || absInt(cols-acc.prevCols) <= 1):
			acc.buf = append(acc.buf, TableRow{Text: trimmed, RawText: raw, Columns: cols, LineNumber: i})
			acc.prevCols = cols
		default:
			flush()
			if cols >= 2 {
				acc = tableScan{
					buf:      []TableRow{{Text: trimmed, RawText: raw, Columns: cols, LineNumber: i}},
					prevCols: cols,
				}
			}
		}
	}
	flush()

	filtered := out[:0]
	for _, c := range out {
		if c.Confidence >= threshold {
			filtered = append(filtered, c)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Confidence > filtered[j].Confidence
	})
	return filtered
}

// columnCount estimates how many columns a line spans. Priority order:
// tabs, pipes, runs of 3+ spaces. Known non-table markers are forced to 0,
// which also breaks any in-progress table.
func columnCount(trimmed string) int {
	if isNonTableMarker(trimmed) {
		return 0
	}
	if strings.Contains(trimmed, "\t") {
		if cells := splitNonEmpty(trimmed, "\t"); len(cells) >= 2 {
			return len(cells)
		}
	}
	if strings.Contains(trimmed, "|") {
		cells := splitNonEmpty(trimmed, "|")
		if len(cells) >= 3 {
			return len(cells)
		}
		if strings.Count(trimmed, "|") == 2 && len(cells) > 0 {
			return 3
		}
	}
	if reSpaceRun.MatchString(trimmed) {
		var cells []string
		for _, c := range reSpaceRun.Split(trimmed, -1) {
			c = strings.TrimSpace(c)
			if len(c) > 1 && !rePunctOnly.MatchString(c) {
				cells = append(cells, c)
			}
		}
		if len(cells) >= 3 {
			return len(cells)
		}
	}
	return 1
}

func isNonTableMarker(trimmed string) bool {
	if rePageSep.MatchString(trimmed) {
		return true
	}
	if _, ok := nonTableTitles[strings.ToLower(trimmed)]; ok {
		return true
	}
	// bare all-caps headers; aligned header rows keep their column signal
	if reAllCaps.MatchString(trimmed) &&
		!strings.Contains(trimmed, "\t") &&
		!strings.Contains(trimmed, "|") &&
		!reSpaceRun.MatchString(trimmed) {
		return true
	}
	return false
}

// buildCandidate validates a buffered run and scores it. A run qualifies
// only if it has >= 3 rows, every row's column count is within 1 of the
// mean, and at least one row carries as many words as columns (which
// filters runs of decorative repeated characters).
func buildCandidate(rows []TableRow) (TableCandidate, bool) {
	if len(rows) < minTableRows {
		return TableCandidate{}, false
	}

	var sum float64
	for _, r := range rows {
		sum += float64(r.Columns)
	}
	mean := sum / float64(len(rows))

	contentful := false
	var dev float64
	for _, r := range rows {
		d := math.Abs(float64(r.Columns) - mean)
		if d > 1 {
			return TableCandidate{}, false
		}
		dev += d
		if len(strings.Fields(r.Text)) >= r.Columns {
			contentful = true
		}
	}
	if !contentful {
		return TableCandidate{}, false
	}

	consistency := 1.0
	if mean > 0 {
		consistency = 1 - (dev/float64(len(rows)))/mean
		if consistency < 0 {
			consistency = 0
		}
	}
	rowScore := math.Min(float64(len(rows))/8, 1)

	var richness float64
	for _, r := range rows {
		multi := 0
		for _, w := range strings.Fields(r.Text) {
			if len(w) > 1 {
				multi++
			}
		}
		if r.Columns > 0 {
			richness += math.Min(float64(multi)/float64(r.Columns), 1)
		}
	}
	richness /= float64(len(rows))

	conf := 0.4*consistency + 0.3*rowScore + 0.3*richness
	return TableCandidate{
		Data:       rows,
		StartLine:  rows[0].LineNumber,
		EndLine:    rows[len(rows)-1].LineNumber,
		Confidence: conf,
	}, true
}

// SplitCells breaks a table line into its cells with the same separator
// priority, acceptance rules and cell filters as columnCount. A line no
// rule accepts is a single cell.
func SplitCells(line string) []string {
	trimmed := strings.TrimSpace(line)
	if strings.Contains(trimmed, "\t") {
		if cells := splitNonEmpty(trimmed, "\t"); len(cells) >= 2 {
			return cells
		}
	}
	if strings.Contains(trimmed, "|") {
		cells := splitNonEmpty(trimmed, "|")
		if len(cells) >= 3 || (strings.Count(trimmed, "|") == 2 && len(cells) > 0) {
			return cells
		}
	}
	if reSpaceRun.MatchString(trimmed) {
		var cells []string
		for _, c := range reSpaceRun.Split(trimmed, -1) {
			c = strings.TrimSpace(c)
			if len(c) > 1 && !rePunctOnly.MatchString(c) {
				cells = append(cells, c)
			}
		}
		if len(cells) >= 3 {
			return cells
		}
	}
	return []string{trimmed}
}

// TableToCSV serializes table rows to CSV: one row per line, every field
// quoted, embedded quotes doubled.
func TableToCSV(rows []TableRow) string {
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, cell := range SplitCells(r.RawText) {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return b.String()
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, c := range strings.Split(s, sep) {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
