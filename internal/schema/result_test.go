package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/docscanhq/docscan/internal/extract"
)

const receiptText = `FRESH MART
123 Main Street
01/15/2024 14:32
2 Coffee  7.00
Total  11.34`

func validResultJSON(t *testing.T) []byte {
	t.Helper()
	raw, err := json.Marshal(extract.SmartExtract(receiptText, "receipt"))
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestValidateResult_EngineOutputPasses(t *testing.T) {
	if err := ValidateResult(validResultJSON(t)); err != nil {
		t.Fatalf("engine output rejected: %v", err)
	}
}

func TestValidateResult_ShortInputOutputPasses(t *testing.T) {
	raw, err := json.Marshal(extract.SmartExtract("hi", "receipt"))
	if err != nil {
		t.Fatal(err)
	}
	if err := ValidateResult(raw); err != nil {
		t.Fatalf("zeroed result rejected: %v", err)
	}
}

func TestValidateResult_ConfidenceCeiling(t *testing.T) {
	var doc map[string]any
	if err := json.Unmarshal(validResultJSON(t), &doc); err != nil {
		t.Fatal(err)
	}
	doc["analytics"].(map[string]any)["confidence"] = 1.2

	raw, _ := json.Marshal(doc)
	if err := ValidateResult(raw); err == nil {
		t.Fatal("confidence above 0.95 should be rejected")
	}
}

func TestValidateResult_MissingSection(t *testing.T) {
	var doc map[string]any
	if err := json.Unmarshal(validResultJSON(t), &doc); err != nil {
		t.Fatal(err)
	}
	delete(doc, "metadata")

	raw, _ := json.Marshal(doc)
	err := ValidateResult(raw)
	if err == nil {
		t.Fatal("result without metadata should be rejected")
	}
	if !strings.Contains(err.Error(), "does not match schema") {
		t.Errorf("error text: %v", err)
	}
}

func TestValidateResult_MalformedJSON(t *testing.T) {
	if err := ValidateResult([]byte("{not json")); err == nil {
		t.Fatal("malformed JSON should error")
	}
}
