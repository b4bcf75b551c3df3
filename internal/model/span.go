// Package model defines the data structures for dataset curation.
package model

// SpanKind represents the lexical form of a comment span.
type SpanKind string

const (
	// SpanLine represents a // comment, possibly coalesced with adjacent
	// line comments stacked on consecutive lines.
	SpanLine SpanKind = "line"
	// SpanBlock represents a /* ... */ comment.
	SpanBlock SpanKind = "block"
)

// Span is a contiguous byte range in source text covering one comment
// occurrence. Invariants: Start < End; resolved spans never overlap and are
// ordered by Start ascending.
type Span struct {
	Start int
	End   int
	Kind  SpanKind
}
