package domain

import (
	"strings"

	m "crycurate/internal/model"
)

// Rewrite replays the resolved spans over the original text and produces the
// rewritten document plus one CommentRecord per span, in source order. Kept
// comments are emitted verbatim; dropped standalone comments take their line
// break and any immediately following blank lines with them, dropped inline
// comments leave the code and its line break untouched.
func Rewrite(filename, content string, resolved []resolvedSpan) (string, []m.CommentRecord) {
	var out strings.Builder

	records := make([]m.CommentRecord, 0, len(resolved))
	cursor := 0

	for _, r := range resolved {
		if r.span.Start < cursor {
			continue
		}

		records = append(records, m.CommentRecord{
			Filename:    filename,
			Fingerprint: r.fingerprint,
			Text:        r.text,
			Keep:        r.keep,
			Snippet:     r.context,
		})

		prefix := content[cursor:r.span.Start]

		if r.keep {
			out.WriteString(prefix)
			out.WriteString(r.text)

			cursor = r.span.End

			continue
		}

		cursor = r.span.End

		if standalone(content, r.span) {
			out.WriteString(prefix)

			cursor = consumeBlankLines(content, cursor)
		} else {
			// Inline drop: excise the comment and the horizontal whitespace
			// separating it from the code, keeping the line break.
			out.WriteString(strings.TrimRight(prefix, " \t"))
		}
	}

	out.WriteString(content[cursor:])

	return strings.TrimLeft(out.String(), "\n"), records
}

// standalone reports whether the span occupies its line alone: only
// horizontal whitespace between the previous line break and the span start,
// and only horizontal whitespace between the span end and the next line break
// or end of document.
func standalone(content string, span m.Span) bool {
	for i := span.Start - 1; i >= 0; i-- {
		c := content[i]
		if c == '\n' {
			break
		}

		if c != ' ' && c != '\t' && c != '\r' {
			return false
		}
	}

	for i := span.End; i < len(content); i++ {
		c := content[i]
		if c == '\n' {
			break
		}

		if c != ' ' && c != '\t' && c != '\r' {
			return false
		}
	}

	return true
}

// consumeBlankLines advances past the line break following a dropped
// standalone comment, plus any fully-blank lines after it, so no orphaned
// blank lines remain in the output.
func consumeBlankLines(content string, pos int) int {
	pos = skipLineBreak(content, skipHorizontal(content, pos))

	for {
		next := skipHorizontal(content, pos)
		if next >= len(content) || (content[next] != '\n' && content[next] != '\r') {
			return pos
		}

		pos = skipLineBreak(content, next)
	}
}

func skipHorizontal(content string, pos int) int {
	for pos < len(content) && (content[pos] == ' ' || content[pos] == '\t') {
		pos++
	}

	return pos
}

func skipLineBreak(content string, pos int) int {
	if pos < len(content) && content[pos] == '\r' {
		pos++
	}

	if pos < len(content) && content[pos] == '\n' {
		pos++
	}

	return pos
}
