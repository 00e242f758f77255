// Package extract turns raw OCR text plus a declared document type into
// structured, typed data with a heuristic confidence score. Everything in
// this package is pure: plain data in, plain data out, no I/O and no shared
// state, so concurrent calls are safe.
package extract

// Line is one input line classified by structural features.
type Line struct {
	Index       int    `json:"index"`
	Text        string `json:"text"`
	Trimmed     string `json:"trimmed"`
	Length      int    `json:"length"`
	IsBlank     bool   `json:"isBlank"`
	HasNumbers  bool   `json:"hasNumbers"`
	HasCurrency bool   `json:"hasCurrency"`
	HasEmail    bool   `json:"hasEmail"`
	HasPhone    bool   `json:"hasPhone"`
}

// TableRow is a line believed to belong to a tabular region.
type TableRow struct {
	Text       string `json:"text"`
	RawText    string `json:"rawText"`
	Columns    int    `json:"columns"`
	LineNumber int    `json:"lineNumber"`
}

// TableCandidate is a contiguous run of structurally consistent rows.
type TableCandidate struct {
	Data       []TableRow `json:"data"`
	StartLine  int        `json:"startLine"`
	EndLine    int        `json:"endLine"`
	Confidence float64    `json:"confidence"`
}

// TableSummary is the CSV-serializable packaging of a detected table.
type TableSummary struct {
	ID          int      `json:"id"`
	CSV         string   `json:"csv"`
	RowCount    int      `json:"rowCount"`
	ColumnCount int      `json:"columnCount"`
	Confidence  float64  `json:"confidence"`
	Preview     []string `json:"preview"`
	StartLine   int      `json:"startLine"`
	EndLine     int      `json:"endLine"`
}

// Fields is a flat or nested field map produced by a rule extractor.
type Fields = map[string]any

// Options selectively disables sub-extractions. Absent flags default to
// enabled; set a flag to false to skip that sub-extraction.
type Options map[string]bool

// Enabled reports whether the named sub-extraction should run.
func (o Options) Enabled(name string) bool {
	if o == nil {
		return true
	}
	v, ok := o[name]
	return !ok || v
}

// Summary carries coarse per-document structure signals.
type Summary struct {
	LineCount          int  `json:"lineCount"`
	WordCount          int  `json:"wordCount"`
	CharCount          int  `json:"charCount"`
	HasFinancialData   bool `json:"hasFinancialData"`
	HasContactInfo     bool `json:"hasContactInfo"`
	ExtractionComplete bool `json:"extractionComplete"`
}

// Analytics is the advisory half of an extraction result.
type Analytics struct {
	DocumentType string   `json:"documentType"`
	Confidence   float64  `json:"confidence"`
	Summary      Summary  `json:"summary"`
	Insights     []string `json:"insights"`
	Suggestions  []string `json:"suggestions"`
	Lines        []Line   `json:"lines"`
}

// Metadata describes the extraction run. Deliberately free of wall-clock
// values so that identical input yields identical output.
type Metadata struct {
	EngineVersion string `json:"engineVersion"`
	DocumentType  string `json:"documentType"`
	TextLength    int    `json:"textLength"`
	LineCount     int    `json:"lineCount"`
}

// ExtractionResult is the orchestrator's output. It is JSON-serializable in
// full: the storage collaborator persists it verbatim and re-hydrates it for
// dashboard rendering.
type ExtractionResult struct {
	Extracted     map[string]any `json:"extracted"`
	Analytics     Analytics      `json:"analytics"`
	FormattedText string         `json:"formattedText"`
	Metadata      Metadata       `json:"metadata"`
}

// StructuredData is the table-centric variant's output.
type StructuredData struct {
	Text           string         `json:"text"`
	Tables         []TableSummary `json:"tables"`
	StructuredData map[string]any `json:"structuredData"`
	DocumentType   string         `json:"documentType"`
}

// EngineVersion identifies the heuristic rule set baked into this build.
const EngineVersion = "1.4.0"
