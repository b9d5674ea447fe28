package report

import (
	"io"
	"strings"
)

// GitHubWriter emits one workflow-command annotation per violation, then the
// text report so the job log stays readable.
type GitHubWriter struct{}

func (g *GitHubWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}
	for _, v := range report.Violations {
		ew.printf("::error file=%s,line=%d::%s\n",
			escapeProperty(v.Path), v.Line, escapeData(v.Preview))
	}
	if ew.err != nil {
		return ew.err
	}
	return (&TextWriter{}).Write(w, report)
}

// Escaping rules follow the Actions toolkit command encoding.
func escapeData(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(s)
}

func escapeProperty(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C").Replace(s)
}
