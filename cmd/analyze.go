package cmd

import (
	"fmt"

	"github.com/KaramelBytes/agentmetrics-cli/internal/analysis"
	"github.com/KaramelBytes/agentmetrics-cli/internal/console"
	"github.com/KaramelBytes/agentmetrics-cli/internal/dataset"
	"github.com/KaramelBytes/agentmetrics-cli/internal/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	anaOutputPath string
	anaSheetName  string
	anaSheetIndex int
	anaSkipRows   int
	anaTopN       int
	anaAll        bool
	anaQuiet      bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file.xlsx]",
	Short: "Aggregate an agent performance workbook and write results.json",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Input
		if len(args) == 1 {
			path = args[0]
		}
		outPath := cfg.Output
		load := dataset.LoadOptions{SheetName: cfg.SheetName, SheetIndex: cfg.SheetIndex, SkipRows: cfg.SkipRows}
		opt := analysis.DefaultOptions()
		opt.TopN = cfg.TopN
		opt.FalseTokens = cfg.FalseTokens

		// Flags override config when set
		f := cmd.Flags()
		if f.Changed("output") {
			outPath = anaOutputPath
		}
		if f.Changed("sheet-name") {
			load.SheetName = anaSheetName
		}
		if f.Changed("sheet-index") {
			load.SheetIndex = anaSheetIndex
		}
		if f.Changed("skip-rows") {
			if anaSkipRows < 0 {
				return fmt.Errorf("invalid --skip-rows: %d", anaSkipRows)
			}
			load.SkipRows = anaSkipRows
		}
		if f.Changed("top") {
			if anaTopN <= 0 {
				return fmt.Errorf("invalid --top: %d (must be > 0)", anaTopN)
			}
			opt.TopN = anaTopN
		}

		logger.Info("reading workbook", zap.String("path", path), zap.String("sheet", load.SheetName), zap.Int("skip_rows", load.SkipRows))
		raw, err := dataset.LoadXLSX(path, load)
		if err != nil {
			return err
		}
		tbl := dataset.Normalize(raw)
		logger.Info("loaded records", zap.Int("records", tbl.Len()), zap.Int("columns", len(tbl.Columns)))
		logger.Debug("columns", zap.Strings("names", tbl.Columns))

		res, err := analysis.Run(tbl, opt)
		if err != nil {
			return fmt.Errorf("analyze %s: %w", path, err)
		}
		for _, w := range res.Warnings {
			logger.Warn(w)
		}
		logger.Info("ranked groups",
			zap.Int(opt.AgentTypeColumn, len(res.AgentTypes)),
			zap.Int(opt.ArchitectureColumn, len(res.Architectures)),
			zap.Int(opt.TaskCategoryColumn, len(res.TaskCategories)))

		results := report.Build(res, opt.TopN)
		if err := report.Write(outPath, results); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if anaAll {
			if err := console.Breakdown(out, res, opt); err != nil {
				return err
			}
		}
		if !anaQuiet {
			if err := console.Summary(out, results); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "✓ Wrote results to %s\n", outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "results.json", "path of the JSON report")
	analyzeCmd.Flags().StringVar(&anaSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	analyzeCmd.Flags().IntVar(&anaSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	analyzeCmd.Flags().IntVar(&anaSkipRows, "skip-rows", 0, "rows above the header row to discard")
	analyzeCmd.Flags().IntVar(&anaTopN, "top", 3, "groups kept per question")
	analyzeCmd.Flags().BoolVar(&anaAll, "all", false, "print every group for each question")
	analyzeCmd.Flags().BoolVarP(&anaQuiet, "quiet", "q", false, "do not print the summary")
}
