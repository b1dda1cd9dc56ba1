package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"stickycal/internal/store"
)

// Filename builds the export file name for a schedule at a moment in
// time: <scheduleID>_<YYYYMMDD_HHMMSS>.json
func Filename(scheduleID string, now time.Time) string {
	return fmt.Sprintf("%s_%s.json", scheduleID, now.Format("20060102_150405"))
}

// ToJSON writes the label collection as a JSON array (style embedded)
// into dir and returns the full path. An empty schedule id aborts with
// a ValidationError before anything is written.
func ToJSON(labels []store.Label, scheduleID, dir string, now time.Time) (string, error) {
	if scheduleID == "" {
		return "", &store.ValidationError{Reason: "schedule id is empty"}
	}

	if labels == nil {
		labels = []store.Label{}
	}
	data, err := json.MarshalIndent(labels, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal labels: %w", err)
	}

	path := filepath.Join(dir, Filename(scheduleID, now))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}
