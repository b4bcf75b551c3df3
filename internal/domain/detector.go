// Package domain implements the comment extraction pipeline: span detection,
// batched decision resolution, and lossless rewriting.
package domain

import (
	"crypto/sha1" //nolint:gosec // content fingerprint, not a security boundary
	"encoding/hex"
	"regexp"
	"sort"
	"strings"

	m "crycurate/internal/model"
)

var (
	// lineCommentRe matches a // comment up to (excluding) the line break.
	lineCommentRe = regexp.MustCompile(`//[^\n]*`)

	// docCommentRe matches /** ... */ doc comments; they are stripped from
	// context snippets but are not keep/drop candidates themselves.
	docCommentRe = regexp.MustCompile(`(?s)/\*\*.*?\*/`)

	// adjacentRe matches the gap between two stacked line comments: exactly
	// one line break plus optional indentation, no blank line and no code.
	adjacentRe = regexp.MustCompile(`^\r?\n[ \t]*$`)
)

// Fingerprint returns the content hash of a comment text. Identical comment
// text anywhere in the corpus yields the same fingerprint.
func Fingerprint(text string) string {
	sum := sha1.Sum([]byte(text)) //nolint:gosec // content fingerprint, not a security boundary

	return hex.EncodeToString(sum[:])
}

// DetectSpans scans raw text and returns non-overlapping comment spans in
// document order. Detection is lexical: phase 1 collects candidate spans per
// form, phase 2 sorts, drops overlaps keeping the earlier span, and coalesces
// adjacent line-comment runs into single logical spans.
func DetectSpans(content string) []m.Span {
	spans := blockSpans(content)

	for _, idx := range lineCommentRe.FindAllStringIndex(content, -1) {
		spans = append(spans, m.Span{Start: idx[0], End: idx[1], Kind: m.SpanLine})
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}

		return spans[i].End < spans[j].End
	})

	return coalesceLineRuns(content, dropOverlaps(spans))
}

// blockSpans collects /* ... */ spans whose opener is not the /** doc form.
// An unterminated block comment extends to the end of the document.
func blockSpans(content string) []m.Span {
	var spans []m.Span

	for i := 0; i+1 < len(content); {
		if content[i] != '/' || content[i+1] != '*' {
			i++

			continue
		}

		if i+2 < len(content) && content[i+2] == '*' {
			// Doc opener: skip this position only, so blocks nested further
			// in are still found.
			i++

			continue
		}

		rel := strings.Index(content[i+2:], "*/")
		if rel < 0 {
			spans = append(spans, m.Span{Start: i, End: len(content), Kind: m.SpanBlock})

			break
		}

		end := i + 2 + rel + 2
		spans = append(spans, m.Span{Start: i, End: end, Kind: m.SpanBlock})
		i = end
	}

	return spans
}

// dropOverlaps keeps the earliest-starting span of any overlapping pair and
// discards the later one entirely. Input must be sorted by Start.
func dropOverlaps(spans []m.Span) []m.Span {
	resolved := make([]m.Span, 0, len(spans))
	lastEnd := -1

	for _, span := range spans {
		if span.Start >= lastEnd {
			resolved = append(resolved, span)
			lastEnd = span.End
		}
	}

	return resolved
}

// coalesceLineRuns merges consecutive line-comment spans separated by exactly
// one line break plus horizontal whitespace. Runs never cross block comments
// or code.
func coalesceLineRuns(content string, spans []m.Span) []m.Span {
	coalesced := make([]m.Span, 0, len(spans))

	for i := 0; i < len(spans); {
		span := spans[i]
		if span.Kind != m.SpanLine {
			coalesced = append(coalesced, span)
			i++

			continue
		}

		j := i
		end := span.End

		for j+1 < len(spans) && spans[j+1].Kind == m.SpanLine {
			next := spans[j+1]
			if !adjacentRe.MatchString(content[end:next.Start]) {
				break
			}

			end = next.End
			j++
		}

		coalesced = append(coalesced, m.Span{Start: span.Start, End: end, Kind: m.SpanLine})
		i = j + 1
	}

	return coalesced
}
