package domain

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"crycurate/internal/adapter"
	m "crycurate/internal/model"
)

// Options tunes the extraction pipeline.
type Options struct {
	// BatchSize caps how many uncached comments accumulate before one oracle
	// call is issued.
	BatchSize int

	// ContextMaxChars caps the code context snippet sent with each comment.
	ContextMaxChars int

	// FallbackKeepBelow is the length threshold of the fallback policy:
	// comments the oracle fails to resolve are kept when shorter than this.
	FallbackKeepBelow int
}

// DefaultOptions returns the pipeline defaults.
func DefaultOptions() Options {
	return Options{
		BatchSize:         8,
		ContextMaxChars:   600,
		FallbackKeepBelow: 500,
	}
}

// Pipeline runs span detection, batched decision resolution, and rewriting
// for one document at a time. A single Pipeline may be shared by parallel
// documents; the decision cache carries the only shared state.
type Pipeline struct {
	cache  adapter.DecisionCache
	oracle adapter.Oracle
	opts   Options
	log    *zap.Logger
}

// normalized fills in defaults for unset option fields.
func (o Options) normalized() Options {
	defaults := DefaultOptions()

	if o.BatchSize <= 0 {
		o.BatchSize = defaults.BatchSize
	}

	if o.ContextMaxChars <= 0 {
		o.ContextMaxChars = defaults.ContextMaxChars
	}

	if o.FallbackKeepBelow <= 0 {
		o.FallbackKeepBelow = defaults.FallbackKeepBelow
	}

	return o
}

// NewPipeline wires a Pipeline from its collaborators.
func NewPipeline(cache adapter.DecisionCache, oracle adapter.Oracle, opts Options, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}

	return &Pipeline{cache: cache, oracle: oracle, opts: opts.normalized(), log: log}
}

// ExtractAndRewrite processes one document to completion: every comment span
// is decided (cache, oracle, or fallback) before any rewriting happens, so a
// failed document never yields partial output.
func (p *Pipeline) ExtractAndRewrite(ctx context.Context, filename, content string) ([]m.CommentRecord, m.FileRecord, error) {
	spans := DetectSpans(content)

	resolver := &batchResolver{
		cache:    p.cache,
		oracle:   p.oracle,
		opts:     p.opts,
		log:      p.log,
		filename: filename,
	}

	resolved, err := resolver.resolveAll(ctx, content, spans)
	if err != nil {
		return nil, m.FileRecord{}, fmt.Errorf("failed to resolve %s: %w", filename, err)
	}

	rewritten, records := Rewrite(filename, content, resolved)

	p.log.Debug("document processed",
		zap.String("file", filename),
		zap.Int("spans", len(spans)),
		zap.Int("records", len(records)))

	return records, m.FileRecord{Filename: filename, Content: rewritten, Variant: m.VariantCurated}, nil
}
