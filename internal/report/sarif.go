package report

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json"

	// RuleID identifies the single rule this tool reports.
	RuleID = "scriptcheck/cyrillic"
)

// ToolVersion is stamped into SARIF output. The CLI sets it at start-up.
var ToolVersion = "0.0.0-dev"

// SARIFWriter outputs violations in SARIF v2.1.0 format.
type SARIFWriter struct{}

func (s *SARIFWriter) Write(w io.Writer, report *Report) error {
	data, err := json.MarshalIndent(buildSARIF(report), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling SARIF: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing SARIF: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	ShortDescription sarifMessage       `json:"shortDescription"`
	Help             sarifMessage       `json:"help"`
	DefaultConfig    sarifDefaultConfig `json:"defaultConfiguration"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

func buildSARIF(report *Report) sarifLog {
	results := make([]sarifResult, 0, len(report.Violations))
	for _, v := range report.Violations {
		results = append(results, sarifResult{
			RuleID:  RuleID,
			Level:   "error",
			Message: sarifMessage{Text: "Cyrillic characters: " + v.Preview},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: artifactURI(v.Path)},
					Region:           sarifRegion{StartLine: v.Line},
				},
			}},
		})
	}

	return sarifLog{
		Version: sarifVersion,
		Schema:  sarifSchema,
		Runs: []sarifRun{{
			Tool: sarifTool{
				Driver: sarifDriver{
					Name:    "scriptcheck",
					Version: ToolVersion,
					Rules: []sarifRule{{
						ID:               RuleID,
						Name:             "NoCyrillic",
						ShortDescription: sarifMessage{Text: "Line contains characters from the Cyrillic block (U+0400-U+04FF)"},
						Help:             sarifMessage{Text: MsgGuidance},
						DefaultConfig:    sarifDefaultConfig{Level: "error"},
					}},
				},
			},
			Results: results,
		}},
	}
}

// artifactURI percent-encodes a repository-relative path as a URI reference.
func artifactURI(path string) string {
	return (&url.URL{Path: path}).String()
}
