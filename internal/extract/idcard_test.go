package extract

import "testing"

const sampleIDCard = `DRIVER LICENSE
Name: Jane A Smith
License No: D1234567
DOB: 03/22/1990
Exp: 01/01/2020
Nationality: Canadian`

func TestExtractIDCard(t *testing.T) {
	f := extractIDCard(sampleIDCard, nil)

	if got := f["name"]; got != "Jane A Smith" {
		t.Errorf("name: got %v", got)
	}
	if got := f["idNumber"]; got != "D1234567" {
		t.Errorf("idNumber: got %v", got)
	}
	if got := f["dateOfBirth"]; got != "03/22/1990" {
		t.Errorf("dateOfBirth: got %v", got)
	}
	if got := f["expiryDate"]; got != "01/01/2020" {
		t.Errorf("expiryDate: got %v", got)
	}
	if got := f["nationality"]; got != "Canadian" {
		t.Errorf("nationality: got %v", got)
	}
	if got := f["validFormat"]; got != true {
		t.Errorf("validFormat: got %v", got)
	}
	if got := f["isExpired"]; got != true {
		t.Errorf("isExpired: got %v, want true for a 2020 expiry", got)
	}
}

func TestExtractIDCard_NoValidation(t *testing.T) {
	f := extractIDCard(sampleIDCard, Options{"validate": false})
	if _, ok := f["validFormat"]; ok {
		t.Error("validFormat present despite disabled validation")
	}
	if _, ok := f["isExpired"]; ok {
		t.Error("isExpired present despite disabled validation")
	}
}

func TestExtractIDCard_MissingNumberFailsFormat(t *testing.T) {
	f := extractIDCard("Name: John Roe\nsome other text here", nil)
	if got := f["validFormat"]; got != false {
		t.Errorf("validFormat: got %v, want false without an id number", got)
	}
	if _, ok := f["isExpired"]; ok {
		t.Error("isExpired should be absent without an expiry date")
	}
}

func TestParseAnyDate(t *testing.T) {
	for _, in := range []string{"2020-01-01", "01/01/2020", "Jan 2, 2020", "2 Jan 2020"} {
		if _, ok := parseAnyDate(in); !ok {
			t.Errorf("parseAnyDate(%q) failed", in)
		}
	}
	if _, ok := parseAnyDate("never"); ok {
		t.Error("parseAnyDate accepted garbage")
	}
}
