package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bartekus/scriptcheck/internal/linescan"
)

// JSONWriter outputs the report as a single JSON document.
type JSONWriter struct{}

type jsonReport struct {
	Range        string               `json:"range,omitempty"`
	Outcome      Outcome              `json:"outcome"`
	FilesScanned int                  `json:"files_scanned"`
	Violations   []linescan.Violation `json:"violations"`
}

func (j *JSONWriter) Write(w io.Writer, report *Report) error {
	doc := jsonReport{
		Range:        report.Range,
		Outcome:      report.Outcome,
		FilesScanned: len(report.Files),
		Violations:   report.Violations,
	}
	if doc.Violations == nil {
		doc.Violations = []linescan.Violation{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
