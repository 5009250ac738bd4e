package variables

// definitionMatch is the outcome of recognising "{{> name content }}" on a
// line. Offsets index into the line passed to matchDefinition. The zero
// value is a non-match.
type definitionMatch struct {
	name         string
	start        int // first '{'
	stop         int // one past the closing "}}"
	contentStart int
	contentStop  int
}

func (m definitionMatch) matched() bool { return m.name != "" }

// matchDefinition recognises a definition construct starting at pos. It has
// no side effects, so it doubles as the probe used before committing a
// definition to the table.
func matchDefinition(line []byte, pos int) definitionMatch {
	line = trimLineEnd(line)
	max := len(line)
	if pos < 0 || !hasOpener(line, pos) || pos+2 >= max || line[pos+2] != markerDef {
		return definitionMatch{}
	}
	start := pos

	pos = skipSpace(line, pos+3)
	nameStart := pos
	for ; pos < max; pos++ {
		c := line[pos]
		if isSpace(c) {
			break
		}
		if !isAlphaNumeric(c) {
			return definitionMatch{}
		}
	}
	if pos >= max || pos == nameStart {
		return definitionMatch{}
	}
	nameStop := pos

	pos = skipSpace(line, pos)
	contentStart := pos
	for pos < max && !hasCloser(line, pos) {
		pos++
	}
	if pos >= max || pos == contentStart {
		return definitionMatch{}
	}

	cs, ce := trimSpan(line, contentStart, pos)
	if cs == ce {
		return definitionMatch{}
	}

	return definitionMatch{
		name:         string(line[nameStart:nameStop]),
		start:        start,
		stop:         pos + 2,
		contentStart: cs,
		contentStop:  ce,
	}
}

// referenceMatch is the outcome of recognising "{{ name }}" at the start of
// a line fragment. The zero value is a non-match.
type referenceMatch struct {
	name   string
	length int // bytes consumed, including both marker pairs
}

func (m referenceMatch) matched() bool { return m.name != "" }

// matchReference recognises a reference construct at the start of line.
// Like matchDefinition it only inspects the input.
func matchReference(line []byte) referenceMatch {
	max := len(line)
	if !hasOpener(line, 0) {
		return referenceMatch{}
	}

	pos := skipSpace(line, 2)
	nameStart := pos
	for ; pos < max; pos++ {
		c := line[pos]
		if isSpace(c) || hasCloser(line, pos) {
			break
		}
		if !isAlphaNumeric(c) {
			return referenceMatch{}
		}
	}
	if pos >= max || pos == nameStart {
		return referenceMatch{}
	}
	nameStop := pos

	pos = skipSpace(line, pos)
	if !hasCloser(line, pos) {
		return referenceMatch{}
	}

	return referenceMatch{
		name:   string(line[nameStart:nameStop]),
		length: pos + 2,
	}
}
