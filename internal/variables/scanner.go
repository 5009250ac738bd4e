package variables

const (
	markerOpen  = '{'
	markerClose = '}'
	markerDef   = '>'
)

// isSpace matches the inline whitespace allowed between construct parts.
// Line endings are not spaces: a construct never spans lines.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isAlphaNumeric(c byte) bool {
	return (c >= '0' && c <= '9') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z')
}

// skipSpace returns the first index at or after pos that is not a space or tab.
func skipSpace(line []byte, pos int) int {
	for pos < len(line) && isSpace(line[pos]) {
		pos++
	}
	return pos
}

// hasCloser reports whether "}}" starts at pos.
func hasCloser(line []byte, pos int) bool {
	return pos+1 < len(line) && line[pos] == markerClose && line[pos+1] == markerClose
}

// hasOpener reports whether "{{" starts at pos.
func hasOpener(line []byte, pos int) bool {
	return pos+1 < len(line) && line[pos] == markerOpen && line[pos+1] == markerOpen
}

// trimLineEnd drops a trailing "\n" or "\r\n".
func trimLineEnd(line []byte) []byte {
	n := len(line)
	if n > 0 && line[n-1] == '\n' {
		n--
	}
	if n > 0 && line[n-1] == '\r' {
		n--
	}
	return line[:n]
}

// trimSpan narrows [start, stop) of line to exclude surrounding whitespace.
func trimSpan(line []byte, start, stop int) (int, int) {
	for start < stop && isTrimmable(line[start]) {
		start++
	}
	for stop > start && isTrimmable(line[stop-1]) {
		stop--
	}
	return start, stop
}

func isTrimmable(c byte) bool {
	switch c {
	case ' ', '\t', '\v', '\f', '\r', '\n':
		return true
	}
	return false
}
