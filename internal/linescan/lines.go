package linescan

// SplitLines splits text on every line boundary recognised by universal
// newline handling: \n, \r\n, \r, \v, \f, \x1c, \x1d, \x1e, U+0085, U+2028
// and U+2029. A trailing boundary does not produce an empty final line.
func SplitLines(text string) []string {
	var lines []string
	start := 0
	for i, r := range text {
		if !isLineBreak(r) {
			continue
		}
		if i < start {
			// second half of \r\n, already consumed
			continue
		}
		lines = append(lines, text[start:i])
		next := i + len(string(r))
		if r == '\r' && next < len(text) && text[next] == '\n' {
			next++
		}
		start = next
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
