package cmd

import (
	"github.com/spf13/cobra"

	"crycurate/internal/domain"
	m "crycurate/internal/model"
)

var scrubOutputFlag string

// scrubCmd represents the scrub command.
var scrubCmd = newScrubCmd()

func newScrubCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrub <dataset.jsonl>",
		Short: "Remove copyright comments from a dataset",
		Long: `Scrub rewrites every row of an existing JSONL dataset with copyright
block and line comments removed. Without --output the result is written next
to the input with a _nocopyright suffix.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Scrub(domain.ScrubArgs{
				Input:  m.Path(args[0]),
				Output: m.Path(scrubOutputFlag),
			})
		},
	}
	cmd.Flags().StringVarP(&scrubOutputFlag, "output", "o", "", "output file (default: <input>_nocopyright.jsonl)")

	return cmd
}

func init() {
	rootCmd.AddCommand(scrubCmd)
}
