package domain

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"crycurate/internal/adapter"
	"crycurate/internal/controller"
	m "crycurate/internal/model"
)

// ExtractArgs configures one curation run.
type ExtractArgs struct {
	Paths     []m.Path
	OutDir    m.Path
	CachePath m.Path
	Exclude   []string
	Workers   int
	Model     string
	Offline   bool
	Options   Options
}

// BuildArgs configures a dataset build over raw sources.
type BuildArgs struct {
	Paths   []m.Path
	OutDir  m.Path
	Exclude []string
}

// ScrubArgs configures a copyright scrub of an existing dataset.
type ScrubArgs struct {
	Input  m.Path
	Output m.Path
}

// ListArgs configures a source listing.
type ListArgs struct {
	Paths   []m.Path
	Exclude []string
}

// OracleFactory builds the oracle for a run, so command wiring can pick the
// remote classifier or the offline heuristic at invocation time.
type OracleFactory func(ctx context.Context, args ExtractArgs) (adapter.Oracle, error)

// Workflow defines the dataset curation operations exposed to the CLI.
type Workflow interface {
	Extract(ctx context.Context, args ExtractArgs) error
	Build(ctx context.Context, args BuildArgs) error
	Scrub(args ScrubArgs) error
	List(args ListArgs) error
}

type workflow struct {
	fsAdapter adapter.SourceFSAdapter
	store     adapter.DatasetStore
	ui        controller.UI
	oracleFor OracleFactory
	log       *zap.Logger
}

// NewWorkflow creates a Workflow instance with the provided collaborators.
func NewWorkflow(fsAdapter adapter.SourceFSAdapter, store adapter.DatasetStore, ui controller.UI, oracleFor OracleFactory, log *zap.Logger) Workflow {
	if log == nil {
		log = zap.NewNop()
	}

	return &workflow{
		fsAdapter: fsAdapter,
		store:     store,
		ui:        ui,
		oracleFor: oracleFor,
		log:       log,
	}
}

// Extract runs the full curation pipeline over all sources: detect comment
// spans, resolve keep/drop decisions through the cache and oracle, rewrite
// each document, and write comments.jsonl plus dataset_curated.jsonl.
func (w *workflow) Extract(ctx context.Context, args ExtractArgs) error {
	args.Options = args.Options.normalized()

	sources, err := w.collectSources(args.Paths, args.Exclude)
	if err != nil {
		return err
	}

	cache, err := adapter.OpenDecisionCache(args.CachePath, w.log)
	if err != nil {
		return err
	}

	defer func() {
		_ = cache.Close()
	}()

	oracle, err := w.oracleFor(ctx, args)
	if err != nil {
		return err
	}

	pipeline := NewPipeline(cache, oracle, args.Options, w.log)

	workers := args.Workers
	if workers <= 0 {
		workers = 1
	}

	if err := w.ui.Start(controller.WithExtractMode(len(sources))); err != nil {
		return err
	}

	defer w.ui.Close()

	w.ui.DisplayRunInfo(workers, args.Model, args.Offline, cache.Len())

	comments := make([][]m.CommentRecord, len(sources))
	rows := make([]m.FileRecord, len(sources))

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, source := range sources {
		g.Go(func() error {
			raw, err := w.fsAdapter.ReadFile(source.Origin)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", source.Origin, err)
			}

			mu.Lock()
			w.ui.DisplayFileStart(source.Origin)
			mu.Unlock()

			records, row, err := pipeline.ExtractAndRewrite(gctx, string(source.Origin), string(raw))
			if err != nil {
				return err
			}

			comments[i] = records
			rows[i] = row

			mu.Lock()
			w.ui.DisplayFileDone(source.Origin, countKept(records), len(records)-countKept(records))
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	flat := make([]m.CommentRecord, 0, len(sources))
	for _, records := range comments {
		flat = append(flat, records...)
	}

	if err := w.store.WriteComments(joinPath(args.OutDir, "comments.jsonl"), flat); err != nil {
		return err
	}

	if err := w.store.WriteFileRecords(joinPath(args.OutDir, "dataset_curated.jsonl"), rows); err != nil {
		return err
	}

	w.ui.DisplaySummary(len(sources), len(flat), countKept(flat), cache.Len())
	w.ui.Wait()

	return nil
}

// Build writes the three raw dataset variants: with_comments (newline
// normalization only), without_comments (all comments stripped), and hybrid
// (line comments stripped, block comments kept).
func (w *workflow) Build(_ context.Context, args BuildArgs) error {
	sources, err := w.collectSources(args.Paths, args.Exclude)
	if err != nil {
		return err
	}

	rowsWith := make([]m.FileRecord, 0, len(sources))
	rowsWithout := make([]m.FileRecord, 0, len(sources))
	rowsHybrid := make([]m.FileRecord, 0, len(sources))

	for _, source := range sources {
		raw, err := w.fsAdapter.ReadFile(source.Origin)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", source.Origin, err)
		}

		base := NormalizeNewlines(string(raw))

		rowsWith = append(rowsWith, m.FileRecord{
			Filename: string(source.Origin),
			Content:  base,
			Variant:  m.VariantWithComments,
		})

		rowsWithout = append(rowsWithout, m.FileRecord{
			Filename: string(source.Origin),
			Content:  ensureTrailingNewline(NormalizeBlankLines(StripComments(base), true)),
			Variant:  m.VariantWithoutComments,
		})

		rowsHybrid = append(rowsHybrid, m.FileRecord{
			Filename: string(source.Origin),
			Content:  ensureTrailingNewline(NormalizeBlankLines(StripLineComments(base), true)),
			Variant:  m.VariantHybrid,
		})
	}

	for _, out := range []struct {
		name string
		rows []m.FileRecord
	}{
		{"dataset_with_comments.jsonl", rowsWith},
		{"dataset_without_comments.jsonl", rowsWithout},
		{"dataset_hybrid.jsonl", rowsHybrid},
	} {
		if err := w.store.WriteFileRecords(joinPath(args.OutDir, out.name), out.rows); err != nil {
			return err
		}
	}

	w.log.Info("datasets written",
		zap.String("dir", string(args.OutDir)),
		zap.Int("files", len(sources)))

	return nil
}

// Scrub removes copyright comments from every row of an existing JSONL
// dataset. When no output path is given the result lands next to the input
// with a _nocopyright suffix.
func (w *workflow) Scrub(args ScrubArgs) error {
	rows, err := w.store.ReadFileRecords(args.Input)
	if err != nil {
		return err
	}

	for i := range rows {
		rows[i] = ScrubCopyrights(rows[i])
	}

	output := args.Output
	if output == "" {
		output = scrubOutputPath(args.Input)
	}

	if err := w.store.WriteFileRecords(output, rows); err != nil {
		return err
	}

	w.log.Info("scrubbed dataset written",
		zap.String("output", string(output)),
		zap.Int("rows", len(rows)))

	return nil
}

// List displays every matched source file with its comment span count.
func (w *workflow) List(args ListArgs) error {
	sources, err := w.collectSources(args.Paths, args.Exclude)
	if err != nil {
		return w.ui.DisplaySourceList(nil, err)
	}

	stats := make([]controller.SourceStat, 0, len(sources))

	for _, source := range sources {
		raw, err := w.fsAdapter.ReadFile(source.Origin)
		if err != nil {
			return w.ui.DisplaySourceList(nil, err)
		}

		stats = append(stats, controller.SourceStat{
			Path:     source.Origin,
			Hash:     source.Hash,
			Comments: len(DetectSpans(string(raw))),
		})
	}

	return w.ui.DisplaySourceList(stats, nil)
}

func (w *workflow) collectSources(paths []m.Path, exclude []string) ([]m.Source, error) {
	patterns, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	sources, err := w.fsAdapter.Get(paths)
	if err != nil {
		return nil, fmt.Errorf("failed to get sources: %w", err)
	}

	filtered := sources[:0]

	for _, source := range sources {
		if matchesAny(patterns, string(source.Origin)) {
			w.log.Debug("source excluded", zap.String("path", string(source.Origin)))

			continue
		}

		filtered = append(filtered, source)
	}

	return filtered, nil
}

func compileExcludes(exclude []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(exclude))

	for _, expr := range exclude {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", expr, err)
		}

		patterns = append(patterns, re)
	}

	return patterns, nil
}

func matchesAny(patterns []*regexp.Regexp, path string) bool {
	for _, re := range patterns {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

func countKept(records []m.CommentRecord) int {
	kept := 0

	for _, r := range records {
		if r.Keep {
			kept++
		}
	}

	return kept
}

func joinPath(dir m.Path, name string) m.Path {
	if dir == "" {
		return m.Path(name)
	}

	return m.Path(filepath.Join(string(dir), name))
}

func scrubOutputPath(input m.Path) m.Path {
	dir := filepath.Dir(string(input))
	base := filepath.Base(string(input))
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	return m.Path(filepath.Join(dir, stem+"_nocopyright.jsonl"))
}

func ensureTrailingNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}

	return s + "\n"
}
