package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stickycal/internal/store"
)

// ImportFormatError reports a file whose top-level JSON value is not
// an array of labels. The import is aborted and prior state retained.
type ImportFormatError struct {
	Path string
}

func (e *ImportFormatError) Error() string {
	return fmt.Sprintf("%s is not a JSON array of labels", filepath.Base(e.Path))
}

// FromJSON reads a previously exported label file. It returns the
// labels and the schedule id derived from the filename (sans
// extension). Any shape other than a top-level array fails with
// ImportFormatError; read or parse failures are wrapped as-is.
func FromJSON(path string) ([]store.Label, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read import file: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, "", &ImportFormatError{Path: path}
	}

	var labels []store.Label
	if err := json.Unmarshal(trimmed, &labels); err != nil {
		return nil, "", &ImportFormatError{Path: path}
	}

	return labels, ScheduleIDFromFilename(path), nil
}

// ScheduleIDFromFilename derives the schedule id from an imported
// file's name by stripping the directory and extension.
func ScheduleIDFromFilename(path string) string {
	name := filepath.Base(path)
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}
