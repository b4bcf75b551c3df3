package domain

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crycurate/internal/adapter"
	m "crycurate/internal/model"
)

// fakeOracle records every batch it receives and answers from a script.
type fakeOracle struct {
	batches [][]adapter.OracleItem
	decide  func(items []adapter.OracleItem) ([]bool, error)
}

func (f *fakeOracle) Classify(_ context.Context, items []adapter.OracleItem) ([]bool, error) {
	f.batches = append(f.batches, items)

	if f.decide != nil {
		return f.decide(items)
	}

	keeps := make([]bool, len(items))
	for i := range keeps {
		keeps[i] = true
	}

	return keeps, nil
}

func newTestCache(t *testing.T) adapter.DecisionCache {
	t.Helper()

	cache, err := adapter.OpenDecisionCache(m.Path(filepath.Join(t.TempDir(), "cache.jsonl")), zap.NewNop())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = cache.Close()
	})

	return cache
}

func newTestResolver(cache adapter.DecisionCache, oracle adapter.Oracle) *batchResolver {
	return &batchResolver{
		cache:    cache,
		oracle:   oracle,
		opts:     DefaultOptions(),
		log:      zap.NewNop(),
		filename: "f.cry",
	}
}

func TestBatchResolver_FlushesOnBatchSizeCap(t *testing.T) {
	oracle := &fakeOracle{}
	r := newTestResolver(newTestCache(t), oracle)
	r.opts.BatchSize = 2

	content := "// a\nx\n// b\ny\n// c\nz\n"
	spans := DetectSpans(content)
	require.Len(t, spans, 3)

	resolved, err := r.resolveAll(context.Background(), content, spans)

	require.NoError(t, err)
	require.Len(t, resolved, 3)
	require.Len(t, oracle.batches, 2)
	assert.Len(t, oracle.batches[0], 2)
	assert.Len(t, oracle.batches[1], 1)
}

func TestBatchResolver_CacheHitFlushesPending(t *testing.T) {
	cache := newTestCache(t)
	require.NoError(t, cache.Record(Fingerprint("// cached"), false))

	oracle := &fakeOracle{}
	r := newTestResolver(cache, oracle)

	content := "// new\nx\n// cached\ny\n"
	spans := DetectSpans(content)
	require.Len(t, spans, 2)

	resolved, err := r.resolveAll(context.Background(), content, spans)

	require.NoError(t, err)
	require.Len(t, resolved, 2)

	// The pending batch was flushed before the cached decision was applied,
	// so results stay in document order.
	assert.Equal(t, "// new", resolved[0].text)
	assert.True(t, resolved[0].keep)
	assert.Equal(t, "// cached", resolved[1].text)
	assert.False(t, resolved[1].keep)

	require.Len(t, oracle.batches, 1)
	assert.Len(t, oracle.batches[0], 1)
}

func TestBatchResolver_IdenticalCommentsOneOracleCall(t *testing.T) {
	oracle := &fakeOracle{}
	r := newTestResolver(newTestCache(t), oracle)
	r.opts.BatchSize = 1

	content := "// same\nx\n\n// same\ny\n"
	spans := DetectSpans(content)
	require.Len(t, spans, 2)

	resolved, err := r.resolveAll(context.Background(), content, spans)

	require.NoError(t, err)
	require.Len(t, resolved, 2)
	require.Len(t, oracle.batches, 1)
	assert.True(t, resolved[0].keep)
	assert.True(t, resolved[1].keep)
}

func TestBatchResolver_FallbackOnOracleError(t *testing.T) {
	oracle := &fakeOracle{
		decide: func(_ []adapter.OracleItem) ([]bool, error) {
			return nil, errors.New("oracle down")
		},
	}
	cache := newTestCache(t)
	r := newTestResolver(cache, oracle)
	r.opts.FallbackKeepBelow = 20

	long := "// " + strings.Repeat("x", 40)
	content := "// short\ncode\n\n" + long + "\ncode\n"
	spans := DetectSpans(content)
	require.Len(t, spans, 2)

	resolved, err := r.resolveAll(context.Background(), content, spans)

	require.NoError(t, err)
	require.Len(t, resolved, 2)
	assert.True(t, resolved[0].keep, "short comment kept by fallback")
	assert.False(t, resolved[1].keep, "long comment dropped by fallback")

	// Fallback decisions are recorded so future runs never re-ask.
	keep, ok := cache.Lookup(Fingerprint("// short"))
	assert.True(t, ok)
	assert.True(t, keep)

	keep, ok = cache.Lookup(Fingerprint(long))
	assert.True(t, ok)
	assert.False(t, keep)
}

func TestBatchResolver_FallbackOnShortResult(t *testing.T) {
	oracle := &fakeOracle{
		decide: func(_ []adapter.OracleItem) ([]bool, error) {
			return []bool{false}, nil
		},
	}
	r := newTestResolver(newTestCache(t), oracle)

	content := "// a\nx\n\n// b\ny\n"
	spans := DetectSpans(content)
	require.Len(t, spans, 2)

	resolved, err := r.resolveAll(context.Background(), content, spans)

	require.NoError(t, err)
	assert.False(t, resolved[0].keep, "first item uses the oracle result")
	assert.True(t, resolved[1].keep, "unanswered item falls back to length policy")
}

func TestBatchResolver_ContextSentToOracle(t *testing.T) {
	oracle := &fakeOracle{}
	r := newTestResolver(newTestCache(t), oracle)

	content := "// note\nf x = x + 1\n"
	spans := DetectSpans(content)

	_, err := r.resolveAll(context.Background(), content, spans)

	require.NoError(t, err)
	require.Len(t, oracle.batches, 1)

	item := oracle.batches[0][0]
	assert.Equal(t, "// note", item.CommentText)
	assert.Equal(t, "f.cry", item.FilePath)
	assert.Equal(t, "f x = x + 1\n", item.CodeContext)
}

func TestCodeContext(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		afterEnd  int
		nextStart int
		maxChars  int
		want      string
	}{
		{
			name:      "runs to next span",
			content:   "// a\ncode here\n// b\n",
			afterEnd:  4,
			nextStart: 15,
			maxChars:  600,
			want:      "code here\n",
		},
		{
			name:      "runs to end of document",
			content:   "// a\ncode\n",
			afterEnd:  4,
			nextStart: -1,
			maxChars:  600,
			want:      "code\n",
		},
		{
			name:      "capped at max chars",
			content:   "// a\nabcdefghij",
			afterEnd:  4,
			nextStart: -1,
			maxChars:  5,
			want:      "abcd",
		},
		{
			name:      "doc comments stripped",
			content:   "// a\n/** doc */code\n",
			afterEnd:  4,
			nextStart: -1,
			maxChars:  600,
			want:      "code\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := codeContext(tt.content, tt.afterEnd, tt.nextStart, tt.maxChars)
			assert.Equal(t, tt.want, got)
		})
	}
}
