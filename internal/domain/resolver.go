package domain

import (
	"context"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"crycurate/internal/adapter"
	m "crycurate/internal/model"
)

// leadingBlankRe strips the first run of leading blank lines from a context
// snippet so the oracle sees meaningful following code first.
var leadingBlankRe = regexp.MustCompile(`^\s*\n`)

// resolvedSpan pairs a detected span with its decided fate plus the material
// that produced the decision.
type resolvedSpan struct {
	span        m.Span
	fingerprint string
	text        string
	context     string
	keep        bool
}

// batchResolver decides spans in document order. Spans with cached
// fingerprints are applied immediately; uncached spans accumulate into a
// pending batch that is flushed when it reaches the configured cap, when a
// cache hit interrupts accumulation (so decisions stay ordered), or at end of
// document.
type batchResolver struct {
	cache    adapter.DecisionCache
	oracle   adapter.Oracle
	opts     Options
	log      *zap.Logger
	filename string
}

// resolveAll walks the spans in order and returns one resolvedSpan per input
// span, in the same order.
func (r *batchResolver) resolveAll(ctx context.Context, content string, spans []m.Span) ([]resolvedSpan, error) {
	resolved := make([]resolvedSpan, 0, len(spans))

	var pending []resolvedSpan

	flush := func() error {
		if len(pending) == 0 {
			return nil
		}

		if err := r.classifyPending(ctx, pending); err != nil {
			return err
		}

		resolved = append(resolved, pending...)
		pending = nil

		return nil
	}

	for i, span := range spans {
		text := content[span.Start:span.End]
		entry := resolvedSpan{
			span:        span,
			fingerprint: Fingerprint(text),
			text:        text,
			context:     codeContext(content, span.End, nextStart(spans, i), r.opts.ContextMaxChars),
		}

		if keep, ok := r.cache.Lookup(entry.fingerprint); ok {
			if err := flush(); err != nil {
				return nil, err
			}

			entry.keep = keep
			resolved = append(resolved, entry)

			continue
		}

		pending = append(pending, entry)

		if len(pending) >= r.opts.BatchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}

	if err := flush(); err != nil {
		return nil, err
	}

	return resolved, nil
}

// classifyPending sends the still-uncached items of one batch to the oracle
// and records the outcome. Items the oracle fails to resolve fall back to the
// deterministic length policy; fallback decisions are recorded too, so future
// runs never re-ask.
func (r *batchResolver) classifyPending(ctx context.Context, pending []resolvedSpan) error {
	items := make([]adapter.OracleItem, 0, len(pending))
	queried := make([]int, 0, len(pending))

	for i := range pending {
		// A parallel document may have recorded this fingerprint since the
		// span was buffered.
		if keep, ok := r.cache.Lookup(pending[i].fingerprint); ok {
			pending[i].keep = keep

			continue
		}

		items = append(items, adapter.OracleItem{
			CommentText: pending[i].text,
			FilePath:    r.filename,
			CodeContext: pending[i].context,
		})
		queried = append(queried, i)
	}

	if len(items) == 0 {
		return nil
	}

	keeps, err := r.oracle.Classify(ctx, items)
	if err != nil {
		r.log.Warn("oracle batch failed, applying fallback policy",
			zap.String("file", r.filename),
			zap.Int("items", len(items)),
			zap.Error(err))

		keeps = nil
	}

	for pos, idx := range queried {
		if pos < len(keeps) {
			pending[idx].keep = keeps[pos]
		} else {
			pending[idx].keep = len(pending[idx].text) < r.opts.FallbackKeepBelow
		}

		if err := r.cache.Record(pending[idx].fingerprint, pending[idx].keep); err != nil {
			return fmt.Errorf("failed to record decision: %w", err)
		}
	}

	return nil
}

// nextStart returns the start offset of the span after index i, or -1 when i
// is the last span.
func nextStart(spans []m.Span, i int) int {
	if i+1 < len(spans) {
		return spans[i+1].Start
	}

	return -1
}

// codeContext slices the code following a comment, from afterEnd up to the
// next comment start (or end of document), capped at maxChars. Doc comments
// inside the slice are stripped and the first run of leading blank lines is
// trimmed.
func codeContext(content string, afterEnd, nextStart, maxChars int) string {
	stop := len(content)
	if nextStart >= 0 {
		stop = nextStart
	}

	snippet := content[afterEnd:stop]
	if len(snippet) > maxChars {
		snippet = snippet[:maxChars]
	}

	snippet = docCommentRe.ReplaceAllString(snippet, "")

	if loc := leadingBlankRe.FindStringIndex(snippet); loc != nil {
		snippet = snippet[loc[1]:]
	}

	return snippet
}
