// Package linescan finds lines that contain characters from a disallowed
// Unicode block.
package linescan

import (
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

// CyrillicPattern matches any rune in the Cyrillic block, U+0400 to U+04FF.
var CyrillicPattern = regexp.MustCompile(`[\x{0400}-\x{04FF}]`)

const (
	// DefaultMaxPreview bounds the preview length in runes.
	DefaultMaxPreview = 180

	ellipsis = "..."
)

// Violation is one offending line.
type Violation struct {
	Path    string `json:"path"`
	Line    int    `json:"line"`
	Preview string `json:"preview"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s:%d: %s", v.Path, v.Line, v.Preview)
}

// Matcher scans text for the disallowed pattern.
type Matcher struct {
	pattern    *regexp.Regexp
	maxPreview int
	log        *zap.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithMaxPreview sets the preview bound. Values below len("...")+1 are ignored.
func WithMaxPreview(n int) Option {
	return func(m *Matcher) {
		if n > len(ellipsis) {
			m.maxPreview = n
		}
	}
}

// WithLogger sets the logger used for skipped files.
func WithLogger(l *zap.Logger) Option {
	return func(m *Matcher) {
		if l != nil {
			m.log = l
		}
	}
}

// NewMatcher returns a Matcher for the Cyrillic block with a 180 rune preview.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{
		pattern:    CyrillicPattern,
		maxPreview: DefaultMaxPreview,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ScanFile reads name from fsys and scans it. A file that cannot be read
// yields no violations; it never aborts the caller's scan.
func (m *Matcher) ScanFile(fsys fs.FS, name string) []Violation {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		m.log.Debug("skipping unreadable file", zap.String("path", name), zap.Error(err))
		return nil
	}
	return m.Scan(name, data)
}

// Scan checks content line by line. Invalid UTF-8 sequences are dropped
// before splitting, so line numbers match what an editor shows.
func (m *Matcher) Scan(path string, content []byte) []Violation {
	text := strings.ToValidUTF8(string(content), "")

	var violations []Violation
	for i, line := range SplitLines(text) {
		if !m.pattern.MatchString(line) {
			continue
		}
		violations = append(violations, Violation{
			Path:    path,
			Line:    i + 1,
			Preview: Preview(line, m.maxPreview),
		})
	}
	return violations
}

// Preview trims surrounding whitespace and bounds the result to max runes,
// replacing the tail with "..." when it is cut.
func Preview(line string, max int) string {
	p := strings.TrimFunc(line, isSpace)
	if max <= len(ellipsis) || utf8.RuneCountInString(p) <= max {
		return p
	}
	runes := []rune(p)
	return string(runes[:max-len(ellipsis)]) + ellipsis
}

// isSpace also accepts the information separators U+001C to U+001F, which
// editors and CI logs render as blanks at either end of a line.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}
