package extract

import (
	"reflect"
	"strings"
	"testing"
)

const sampleResume = `Jane Doe
jane@example.com | 555-123-4567
linkedin.com/in/janedoe

Professional Summary
Platform engineer with a decade of distributed systems work.

Skills
Go, SQL, Kubernetes

Experience
Acme Corp Staff Engineer 2019 - Present
- Led the platform team
- Cut deploy times in half

Education
State University 2011 - 2015`

func TestExtractResume(t *testing.T) {
	f := extractResume(sampleResume, nil)

	contact, ok := f["personalInfo"].(Fields)
	if !ok {
		t.Fatalf("personalInfo: got %T", f["personalInfo"])
	}
	if contact["name"] != "Jane Doe" {
		t.Errorf("name: got %v", contact["name"])
	}
	if contact["email"] != "jane@example.com" {
		t.Errorf("email: got %v", contact["email"])
	}
	if contact["phone"] != "555-123-4567" {
		t.Errorf("phone: got %v", contact["phone"])
	}
	if contact["linkedin"] != "linkedin.com/in/janedoe" {
		t.Errorf("linkedin: got %v", contact["linkedin"])
	}

	summary, _ := f["summary"].(string)
	if !strings.Contains(summary, "Platform engineer") {
		t.Errorf("summary: got %q", summary)
	}

	skills, _ := f["skills"].([]string)
	if !reflect.DeepEqual(skills, []string{"Go", "SQL", "Kubernetes"}) {
		t.Errorf("skills: got %v", skills)
	}

	experience, _ := f["experience"].([]Fields)
	if len(experience) != 1 {
		t.Fatalf("experience entries: got %d, want 1", len(experience))
	}
	if experience[0]["title"] != "Acme Corp Staff Engineer" {
		t.Errorf("experience title: got %v", experience[0]["title"])
	}
	if experience[0]["period"] != "2019 - Present" {
		t.Errorf("experience period: got %v", experience[0]["period"])
	}
	details, _ := experience[0]["details"].([]string)
	if len(details) != 2 || details[0] != "Led the platform team" {
		t.Errorf("experience details: got %v", details)
	}

	education, _ := f["education"].([]Fields)
	if len(education) != 1 || education[0]["title"] != "State University" {
		t.Errorf("education: got %v", education)
	}
}

func TestSplitSkills(t *testing.T) {
	got := splitSkills("- Go; Rust | Terraform, , Postgres")
	want := []string{"Go", "Rust", "Terraform", "Postgres"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitSkills = %v, want %v", got, want)
	}
}

func TestAppendEntry_DetailsAttachToLatest(t *testing.T) {
	entries := appendEntry(nil, "Initech Engineer 2016 - 2019")
	entries = appendEntry(entries, "- Built billing")
	entries = appendEntry(entries, "Acme Staff Engineer 2019 - Present")
	entries = appendEntry(entries, "- Runs platform")

	if len(entries) != 2 {
		t.Fatalf("entries: got %d, want 2", len(entries))
	}
	first, _ := entries[0]["details"].([]string)
	second, _ := entries[1]["details"].([]string)
	if len(first) != 1 || first[0] != "Built billing" {
		t.Errorf("first details: got %v", first)
	}
	if len(second) != 1 || second[0] != "Runs platform" {
		t.Errorf("second details: got %v", second)
	}
}
