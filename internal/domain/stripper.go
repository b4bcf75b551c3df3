package domain

import "strings"

// StripComments removes // line comments and /* ... */ block comments
// (nesting supported) while preserving the contents of '...' and "..."
// literals. Line breaks terminating line comments are kept so the line
// structure of the code survives.
func StripComments(s string) string {
	var out strings.Builder

	out.Grow(len(s))

	var (
		inLine, inSQ, inDQ, escape bool
		blockDepth                 int
	)

	for i := 0; i < len(s); {
		ch := s[i]

		var nxt byte
		if i+1 < len(s) {
			nxt = s[i+1]
		}

		switch {
		case inSQ || inDQ:
			out.WriteByte(ch)

			switch {
			case escape:
				escape = false
			case ch == '\\':
				escape = true
			case inSQ && ch == '\'':
				inSQ = false
			case inDQ && ch == '"':
				inDQ = false
			}

			i++

		case inLine:
			if ch == '\n' {
				inLine = false

				out.WriteByte('\n')
			}

			i++

		case blockDepth > 0:
			switch {
			case ch == '/' && nxt == '*':
				blockDepth++
				i += 2
			case ch == '*' && nxt == '/':
				blockDepth--
				i += 2
			default:
				i++
			}

		case ch == '/' && nxt == '/':
			inLine = true
			i += 2

		case ch == '/' && nxt == '*':
			blockDepth = 1
			i += 2

		case ch == '\'':
			inSQ = true

			out.WriteByte(ch)

			i++

		case ch == '"':
			inDQ = true

			out.WriteByte(ch)

			i++

		default:
			out.WriteByte(ch)

			i++
		}
	}

	return out.String()
}

// StripLineComments removes only // comments, leaving block comments intact.
func StripLineComments(s string) string {
	var out strings.Builder

	out.Grow(len(s))

	var inLine, inSQ, inDQ, escape bool

	for i := 0; i < len(s); {
		ch := s[i]

		var nxt byte
		if i+1 < len(s) {
			nxt = s[i+1]
		}

		switch {
		case inSQ || inDQ:
			out.WriteByte(ch)

			switch {
			case escape:
				escape = false
			case ch == '\\':
				escape = true
			case inSQ && ch == '\'':
				inSQ = false
			case inDQ && ch == '"':
				inDQ = false
			}

			i++

		case inLine:
			if ch == '\n' {
				inLine = false

				out.WriteByte('\n')
			}

			i++

		case ch == '/' && nxt == '/':
			inLine = true
			i += 2

		case ch == '\'':
			inSQ = true

			out.WriteByte(ch)

			i++

		case ch == '"':
			inDQ = true

			out.WriteByte(ch)

			i++

		default:
			out.WriteByte(ch)

			i++
		}
	}

	return out.String()
}

// NormalizeBlankLines collapses runs of two or more blank lines into one and
// optionally strips blank lines at the very start of the text.
func NormalizeBlankLines(s string, stripLeading bool) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blankStreak := 0

	for _, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			blankStreak++
			if blankStreak == 1 {
				out = append(out, "")
			}

			continue
		}

		blankStreak = 0

		out = append(out, ln)
	}

	if stripLeading {
		for len(out) > 0 && strings.TrimSpace(out[0]) == "" {
			out = out[1:]
		}
	}

	return strings.Join(out, "\n")
}

// NormalizeNewlines converts Windows and old-Mac line endings to plain \n.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	return strings.ReplaceAll(s, "\r", "\n")
}
