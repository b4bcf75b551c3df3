package cmd

import (
	"github.com/spf13/cobra"

	"crycurate/internal/domain"
	m "crycurate/internal/model"
)

var buildOutDirFlag string
var buildExcludeFlags []string

// buildCmd represents the build command.
var buildCmd = newBuildCmd()

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [paths...]",
		Short: "Build raw dataset variants from sources",
		Long: `Build writes three JSONL datasets from the matched sources:
dataset_with_comments.jsonl (newline normalization only),
dataset_without_comments.jsonl (all comments stripped), and
dataset_hybrid.jsonl (line comments stripped, block comments kept).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Build(cmd.Context(), domain.BuildArgs{
				Paths:   parsePaths(args),
				OutDir:  m.Path(buildOutDirFlag),
				Exclude: buildExcludeFlags,
			})
		},
	}
	cmd.Flags().StringVarP(&buildOutDirFlag, "out-dir", "o", "datasets", "directory for the dataset variants")
	cmd.Flags().StringArrayVarP(&buildExcludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")

	return cmd
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
