package cmd

import (
	"github.com/KaramelBytes/agentmetrics-cli/internal/console"
	"github.com/KaramelBytes/agentmetrics-cli/internal/report"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [results.json]",
	Short: "Print the summary of an existing results file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Output
		if len(args) == 1 {
			path = args[0]
		}
		r, err := report.Read(path)
		if err != nil {
			return err
		}
		return console.Summary(cmd.OutOrStdout(), r)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
