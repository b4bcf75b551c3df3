// Package cmd provides the root command and CLI setup for crycurate.
package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"crycurate/internal/adapter"
	"crycurate/internal/controller"
	"crycurate/internal/domain"
	m "crycurate/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var datasetStore adapter.DatasetStore
var ui controller.UI
var logger *zap.Logger
var workflow domain.Workflow

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	datasetStore = adapter.NewDatasetStore()
	logger = zap.NewNop()
	workflow = domain.NewWorkflow(fsAdapter, datasetStore, ui, newOracle, logger)
}

var verboseFlag bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crycurate",
		Short: "Cryptol/SAW dataset curation tool",
		Long: `Crycurate builds fine-tuning datasets from Cryptol and SAW sources.
It detects comments, classifies them as worth keeping or noise through a
cached oracle, and rewrites each file with only the kept comments.

Supports recursive path patterns:
  - ./...          recursively scan current directory
  - ./specs/...    recursively scan specs directory
  - ./a ./b        scan multiple directories`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verboseFlag {
				if dev, err := zap.NewDevelopment(); err == nil {
					logger = dev
					workflow = domain.NewWorkflow(fsAdapter, datasetStore, ui, newOracle, logger)
				}
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// newOracle picks the classifier for a run: the remote model by default, the
// deterministic length heuristic when running offline.
func newOracle(ctx context.Context, args domain.ExtractArgs) (adapter.Oracle, error) {
	if args.Offline {
		return &adapter.HeuristicOracle{KeepBelow: args.Options.FallbackKeepBelow}, nil
	}

	return adapter.NewGeminiOracle(ctx, args.Model, logger)
}

func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{"./..."}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
