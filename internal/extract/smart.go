package extract

import (
	"strings"

	"github.com/docscanhq/docscan/constants"
)

// MinInputLength is the explicit minimum-input contract: anything shorter
// short-circuits to a zeroed result instead of an error.
const MinInputLength = 10

// SmartExtract is the analytics-oriented entry point: line analysis,
// cross-type signals, the type-specific rule extractor, confidence,
// insights and a human-scannable formatted rendition, in one pass.
func SmartExtract(text string, documentType string) ExtractionResult {
	dt, _ := constants.CanonicalizeDocType(documentType)

	if len(text) < MinInputLength {
		return zeroResult(text, dt)
	}

	lines := AnalyzeLines(text)

	dates := findDates(text)
	money := findMoney(text)
	emails := findEmails(text)
	phones := findPhones(text)
	urls := findURLs(text)
	totals := findTotals(text)

	extracted := map[string]any{
		"dates":  orEmpty(dates),
		"money":  orEmpty(money),
		"emails": orEmpty(emails),
		"phones": orEmpty(phones),
		"urls":   orEmpty(urls),
		"totals": orEmptyFloats(totals),
	}
	typeFields := extractByType(text, dt, nil)
	for k, v := range typeFields {
		extracted[k] = v
	}

	rule := RuleFor(dt)
	confidence := scoreConfidence(text, rule, typeFields, lines)

	complete := true
	for _, key := range rule.Required {
		if !fieldPresent(typeFields[key]) {
			complete = false
			break
		}
	}

	nonBlank := 0
	for _, l := range lines {
		if !l.IsBlank {
			nonBlank++
		}
	}

	return ExtractionResult{
		Extracted: extracted,
		Analytics: Analytics{
			DocumentType: string(dt),
			Confidence:   confidence,
			Summary: Summary{
				LineCount:          nonBlank,
				WordCount:          len(strings.Fields(text)),
				CharCount:          len(text),
				HasFinancialData:   len(money) > 0 || len(totals) > 0,
				HasContactInfo:     len(emails) > 0 || len(phones) > 0,
				ExtractionComplete: complete,
			},
			Insights:    orEmpty(GenerateInsights(text, dt, typeFields)),
			Suggestions: orEmpty(GenerateSuggestions(text, dt, lines)),
			Lines:       lines,
		},
		FormattedText: formatText(lines),
		Metadata: Metadata{
			EngineVersion: EngineVersion,
			DocumentType:  string(dt),
			TextLength:    len(text),
			LineCount:     len(lines),
		},
	}
}

// ExtractStructuredData is the table-centric entry point used by the
// quick-scan flow: it runs table detection in addition to the type-specific
// rule extractor and packages tables as CSV-serializable summaries.
func ExtractStructuredData(text string, documentType string, opts Options) StructuredData {
	dt, _ := constants.CanonicalizeDocType(documentType)

	out := StructuredData{
		Text:           text,
		Tables:         []TableSummary{},
		StructuredData: map[string]any{},
		DocumentType:   string(dt),
	}
	if len(text) < MinInputLength {
		return out
	}

	for i, t := range DetectTables(text, 0) {
		out.Tables = append(out.Tables, summarizeTable(i+1, t))
	}
	out.StructuredData = extractByType(text, dt, opts)
	return out
}

func summarizeTable(id int, t TableCandidate) TableSummary {
	preview := make([]string, 0, 3)
	for _, r := range t.Data {
		if len(preview) == 3 {
			break
		}
		preview = append(preview, r.Text)
	}
	return TableSummary{
		ID:          id,
		CSV:         TableToCSV(t.Data),
		RowCount:    len(t.Data),
		ColumnCount: dominantColumns(t.Data),
		Confidence:  t.Confidence,
		Preview:     preview,
		StartLine:   t.StartLine,
		EndLine:     t.EndLine,
	}
}

// dominantColumns is the most frequent per-row column count, ties broken
// toward the larger count.
func dominantColumns(rows []TableRow) int {
	counts := map[int]int{}
	for _, r := range rows {
		counts[r.Columns]++
	}
	best, bestN := 0, 0
	for c, n := range counts {
		if n > bestN || (n == bestN && c > best) {
			best, bestN = c, n
		}
	}
	return best
}

// formatText prefixes each line carrying a recognized field with an emoji
// marker for human-scannable review.
func formatText(lines []Line) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch {
		case l.IsBlank:
		case reTotals.MatchString(l.Text):
			b.WriteString("💰 ")
		case len(findDates(l.Text)) > 0:
			b.WriteString("📅 ")
		case l.HasEmail:
			b.WriteString("📧 ")
		case l.HasPhone:
			b.WriteString("📞 ")
		case l.HasCurrency:
			b.WriteString("💱 ")
		}
		b.WriteString(l.Text)
	}
	return b.String()
}

func zeroResult(text string, dt constants.DocumentType) ExtractionResult {
	return ExtractionResult{
		Extracted: map[string]any{},
		Analytics: Analytics{
			DocumentType: string(dt),
			Confidence:   0,
			Summary:      Summary{CharCount: len(text), ExtractionComplete: false},
			Insights:     []string{},
			Suggestions:  []string{},
			Lines:        []Line{},
		},
		FormattedText: "",
		Metadata: Metadata{
			EngineVersion: EngineVersion,
			DocumentType:  string(dt),
			TextLength:    len(text),
		},
	}
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func orEmptyFloats(in []float64) []float64 {
	if in == nil {
		return []float64{}
	}
	return in
}
