package report

import "io"

// Messages printed by the text format. CI logs and docs quote them verbatim.
const (
	MsgNoFiles    = "No changed text files to scan."
	MsgClean      = "No Cyrillic characters detected in changed files."
	MsgViolations = "Cyrillic characters detected in changed files:"
	MsgGuidance   = "Use English for PR descriptions, code comments, logs, and user-facing text in changed files."
)

// TextWriter outputs the plain CI log report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}

	switch report.Outcome {
	case OutcomeNoFiles:
		ew.println(MsgNoFiles)
	case OutcomeViolations:
		ew.println(MsgViolations)
		for _, v := range report.Violations {
			ew.printf("- %s\n", v)
		}
		ew.println(MsgGuidance)
	default:
		ew.println(MsgClean)
	}
	return ew.err
}
