package cmd

import (
	"github.com/spf13/cobra"

	"crycurate/internal/domain"
	m "crycurate/internal/model"
)

var extractOutDirFlag string
var extractCacheFlag string
var extractBatchSizeFlag int
var extractContextCharsFlag int
var extractKeepBelowFlag int
var extractParallelFlag int
var extractModelFlag string
var extractOfflineFlag bool
var extractExcludeFlags []string

// extractCmd represents the extract command.
var extractCmd = newExtractCmd()

func newExtractCmd() *cobra.Command {
	defaults := domain.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "extract [paths...]",
		Short: "Extract comments and rewrite sources with curated comments",
		Long: `Extract detects every comment in the matched Cryptol/SAW sources,
classifies each one as keep or drop (cached decisions are reused, the rest go
to the oracle in batches), and writes comments.jsonl plus
dataset_curated.jsonl with the rewritten file contents.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Extract(cmd.Context(), domain.ExtractArgs{
				Paths:     parsePaths(args),
				OutDir:    m.Path(extractOutDirFlag),
				CachePath: m.Path(extractCacheFlag),
				Exclude:   extractExcludeFlags,
				Workers:   extractParallelFlag,
				Model:     extractModelFlag,
				Offline:   extractOfflineFlag,
				Options: domain.Options{
					BatchSize:         extractBatchSizeFlag,
					ContextMaxChars:   extractContextCharsFlag,
					FallbackKeepBelow: extractKeepBelowFlag,
				},
			})
		},
	}
	cmd.Flags().StringVarP(&extractOutDirFlag, "out-dir", "o", "curated", "directory for comments.jsonl and dataset_curated.jsonl")
	cmd.Flags().StringVarP(&extractCacheFlag, "cache", "c", ".crycurate-cache.jsonl", "decision cache file")
	cmd.Flags().IntVarP(&extractBatchSizeFlag, "batch-size", "b", defaults.BatchSize, "comments per oracle call")
	cmd.Flags().IntVar(&extractContextCharsFlag, "context-chars", defaults.ContextMaxChars, "max characters of code context per comment")
	cmd.Flags().IntVar(&extractKeepBelowFlag, "keep-below", defaults.FallbackKeepBelow, "fallback: keep unresolved comments shorter than this")
	cmd.Flags().IntVarP(&extractParallelFlag, "parallel", "p", 1, "number of files processed in parallel")
	cmd.Flags().StringVarP(&extractModelFlag, "model", "m", "gemini-2.5-flash", "oracle model name")
	cmd.Flags().BoolVar(&extractOfflineFlag, "offline", false, "use the length heuristic instead of the remote oracle")
	cmd.Flags().StringArrayVarP(&extractExcludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")

	return cmd
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
