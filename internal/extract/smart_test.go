package extract

import (
	"reflect"
	"strings"
	"testing"

	"github.com/docscanhq/docscan/constants"
)

func TestSmartExtract_Receipt(t *testing.T) {
	res := SmartExtract(sampleReceipt, "receipt")

	if res.Analytics.DocumentType != "receipt" {
		t.Errorf("documentType: got %q", res.Analytics.DocumentType)
	}
	if !res.Analytics.Summary.ExtractionComplete {
		t.Error("extraction should be complete: merchant, total and date all present")
	}
	if res.Analytics.Confidence != MaxConfidence {
		t.Errorf("confidence: got %f, want saturated %f", res.Analytics.Confidence, MaxConfidence)
	}
	if !res.Analytics.Summary.HasFinancialData {
		t.Error("hasFinancialData should be true")
	}
	if res.Analytics.Summary.HasContactInfo {
		t.Error("hasContactInfo should be false for this receipt")
	}
	if res.Analytics.Summary.LineCount != 8 {
		t.Errorf("lineCount: got %d, want 8", res.Analytics.Summary.LineCount)
	}

	if got := res.Extracted["merchant"]; got != "FRESH MART" {
		t.Errorf("merchant: got %v", got)
	}
	dates, _ := res.Extracted["dates"].([]string)
	if len(dates) != 1 || dates[0] != "01/15/2024" {
		t.Errorf("dates: got %v", res.Extracted["dates"])
	}
	totals, _ := res.Extracted["totals"].([]float64)
	if len(totals) != 1 || totals[0] != 11.34 {
		t.Errorf("totals: got %v", res.Extracted["totals"])
	}

	if res.Metadata.EngineVersion != EngineVersion {
		t.Errorf("engineVersion: got %q", res.Metadata.EngineVersion)
	}
	if res.Metadata.TextLength != len(sampleReceipt) {
		t.Errorf("textLength: got %d", res.Metadata.TextLength)
	}
}

func TestSmartExtract_MinimumInput(t *testing.T) {
	res := SmartExtract("hi", "receipt")

	if res.Analytics.Confidence != 0 {
		t.Errorf("confidence: got %f, want 0", res.Analytics.Confidence)
	}
	if res.Analytics.Summary.ExtractionComplete {
		t.Error("short input must not be complete")
	}
	if len(res.Extracted) != 0 {
		t.Errorf("extracted: got %v, want empty", res.Extracted)
	}
	if res.Extracted == nil || res.Analytics.Insights == nil || res.Analytics.Suggestions == nil {
		t.Error("zero result must keep empty collections non-nil for serialization")
	}
	if res.FormattedText != "" {
		t.Errorf("formattedText: got %q", res.FormattedText)
	}
	if res.Metadata.TextLength != 2 {
		t.Errorf("textLength: got %d", res.Metadata.TextLength)
	}
}

func TestSmartExtract_Deterministic(t *testing.T) {
	a := SmartExtract(sampleResume, "resume")
	b := SmartExtract(sampleResume, "resume")
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same input must produce identical results")
	}
}

func TestSmartExtract_ConfidenceBounds(t *testing.T) {
	inputs := []string{
		sampleReceipt,
		sampleInvoice,
		sampleIDCard,
		sampleLabel,
		sampleMedicine,
		sampleStatement,
		sampleResume,
		samplePriceTag,
		"just a plain chunk of text with nothing much in it",
	}
	for _, dt := range constants.DocumentTypes() {
		for _, text := range inputs {
			res := SmartExtract(text, dt)
			c := res.Analytics.Confidence
			if c < 0 || c > MaxConfidence {
				t.Errorf("confidence out of bounds for type %s: %f", dt, c)
			}
		}
	}
}

func TestSmartExtract_IncompleteLowersConfidence(t *testing.T) {
	// A receipt with no total and no date cannot be complete.
	res := SmartExtract("Corner Shop\nCoffee  3.50\nthanks for visiting", "receipt")
	if res.Analytics.Summary.ExtractionComplete {
		t.Error("missing required fields should leave extraction incomplete")
	}
	full := SmartExtract(sampleReceipt, "receipt")
	if res.Analytics.Confidence >= full.Analytics.Confidence {
		t.Errorf("incomplete %f should score below complete %f",
			res.Analytics.Confidence, full.Analytics.Confidence)
	}
}

func TestSmartExtract_FormattedTextMarkers(t *testing.T) {
	text := "Total  11.34\nvisit 01/15/2024\nmail jane@example.com\ncall 555-123-4567\nprice £3.00\nplain line"
	res := SmartExtract(text, "general")

	lines := strings.Split(res.FormattedText, "\n")
	wantPrefix := []string{"💰 ", "📅 ", "📧 ", "📞 ", "💱 ", ""}
	if len(lines) != len(wantPrefix) {
		t.Fatalf("formatted line count: got %d, want %d", len(lines), len(wantPrefix))
	}
	for i, p := range wantPrefix {
		if p == "" {
			if strings.HasPrefix(lines[i], "💰") || strings.HasPrefix(lines[i], "📅") {
				t.Errorf("line %d should carry no marker: %q", i, lines[i])
			}
			continue
		}
		if !strings.HasPrefix(lines[i], p) {
			t.Errorf("line %d: got %q, want prefix %q", i, lines[i], p)
		}
	}
}

func TestExtractStructuredData(t *testing.T) {
	text := "Inventory list\n" + tabTable
	data := ExtractStructuredData(text, "general", nil)

	if data.DocumentType != "general" {
		t.Errorf("documentType: got %q", data.DocumentType)
	}
	if len(data.Tables) != 1 {
		t.Fatalf("tables: got %d, want 1", len(data.Tables))
	}
	tab := data.Tables[0]
	if tab.ID != 1 || tab.RowCount != 4 || tab.ColumnCount != 3 {
		t.Errorf("table summary: id=%d rows=%d cols=%d", tab.ID, tab.RowCount, tab.ColumnCount)
	}
	if len(tab.Preview) != 3 {
		t.Errorf("preview: got %d rows, want 3", len(tab.Preview))
	}
	if !strings.HasPrefix(tab.CSV, "\"Name\",\"Qty\",\"Price\"") {
		t.Errorf("csv: got %q", tab.CSV)
	}
	if _, ok := data.StructuredData["lineCount"]; !ok {
		t.Error("structuredData should carry the general extractor output")
	}
}

func TestExtractStructuredData_ShortInput(t *testing.T) {
	data := ExtractStructuredData("tiny", "receipt", nil)
	if len(data.Tables) != 0 || len(data.StructuredData) != 0 {
		t.Fatalf("short input should produce empty output: %+v", data)
	}
	if data.Tables == nil || data.StructuredData == nil {
		t.Fatal("collections must be non-nil")
	}
}

func TestSmartExtract_UnrecognizedTypeFallsBack(t *testing.T) {
	for _, in := range []string{"Bill", "RECEIPT", "Receipt", "cv", "martian", " receipt "} {
		res := SmartExtract(sampleReceipt, in)
		if res.Analytics.DocumentType != "general" {
			t.Errorf("SmartExtract type %q: got %q, want general", in, res.Analytics.DocumentType)
		}
		if _, ok := res.Extracted["merchant"]; ok {
			t.Errorf("type %q must not reach the receipt extractor", in)
		}
	}
}
