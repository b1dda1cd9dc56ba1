package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"stickycal/internal/store"
)

var exportStamp = time.Date(2026, time.January, 15, 9, 30, 5, 0, time.Local)

// ============================================================
// Export
// ============================================================

func TestFilename(t *testing.T) {
	got := Filename("spring-term", exportStamp)
	if got != "spring-term_20260115_093005.json" {
		t.Fatalf("got %q", got)
	}
}

func TestToJSONRequiresScheduleID(t *testing.T) {
	_, err := ToJSON(nil, "", t.TempDir(), exportStamp)
	var verr *store.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestToJSONEmptyCollection(t *testing.T) {
	path, err := ToJSON(nil, "empty", t.TempDir(), exportStamp)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Fatalf("empty export should be an empty array, got %q", data)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	labels := []store.Label{
		{ID: 1, Date: "2026-01-15", Text: "Standup", Top: 5, Left: 5, Style: store.DefaultStyle()},
		{ID: 2, Date: "2026-01-15", Text: "Review", Top: 33, Left: 5, Style: store.LabelStyle{
			Color: "#c0392b", BackgroundColor: "#d6eaff", FontSize: 18, FontWeight: "bold", FontStyle: "italic",
		}},
	}

	dir := t.TempDir()
	path, err := ToJSON(labels, "term-a", dir, exportStamp)
	if err != nil {
		t.Fatal(err)
	}

	got, id, err := FromJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if id != "term-a_20260115_093005" {
		t.Fatalf("schedule id = %q", id)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(got))
	}
	if got[0] != labels[0] || got[1] != labels[1] {
		t.Fatalf("labels changed in transit: %+v", got)
	}
}

// ============================================================
// Import rejection
// ============================================================

func writeImportFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFromJSONRejectsNonArray(t *testing.T) {
	path := writeImportFile(t, "bad.json", `{"labels": []}`)
	_, _, err := FromJSON(path)
	var ferr *ImportFormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected ImportFormatError, got %v", err)
	}
}

func TestFromJSONRejectsMalformedArray(t *testing.T) {
	path := writeImportFile(t, "bad.json", `[{"id": "not-a-number"}]`)
	if _, _, err := FromJSON(path); err == nil {
		t.Fatal("expected error")
	}
}

func TestFromJSONMissingFile(t *testing.T) {
	_, _, err := FromJSON(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error")
	}
	var ferr *ImportFormatError
	if errors.As(err, &ferr) {
		t.Fatal("a read failure is not a format error")
	}
}

func TestScheduleIDFromFilename(t *testing.T) {
	if got := ScheduleIDFromFilename("/tmp/x/term-a_20260115_093005.json"); got != "term-a_20260115_093005" {
		t.Fatalf("got %q", got)
	}
	if got := ScheduleIDFromFilename("plain"); got != "plain" {
		t.Fatalf("got %q", got)
	}
}
