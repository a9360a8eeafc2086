// Package console renders human-readable views of a run. Nothing here is part
// of the results.json contract.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/agentmetrics-cli/internal/analysis"
	"github.com/KaramelBytes/agentmetrics-cli/internal/report"
	"github.com/charmbracelet/lipgloss"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

const rule = "================================================================================"

// Summary writes the top-ranked answers of a results document.
func Summary(w io.Writer, r *report.Results) error {
	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString(headingStyle.Render("SUMMARY OF ANSWERS") + "\n")
	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("\nTotal data records processed: %d\n", r.TotalRecords))

	writeRatioAnswers(&b, "Q1", r.Question1)
	writeRatioAnswers(&b, "Q2", r.Question2)

	b.WriteString(fmt.Sprintf("\n%s\n", sectionStyle.Render("Q3 - "+r.Question3.Title)))
	if len(r.Question3.Data) == 0 {
		b.WriteString("  (no groups)\n")
	}
	for i, e := range r.Question3.Data {
		b.WriteString(fmt.Sprintf("  %d. %s: %.4f (n=%d)\n", i+1, safeName(e.Name), e.MedianScore, e.Count))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeRatioAnswers(b *strings.Builder, label string, s report.RatioSection) {
	b.WriteString(fmt.Sprintf("\n%s\n", sectionStyle.Render(label+" - "+s.Title)))
	if len(s.Data) == 0 {
		b.WriteString("  (no groups)\n")
	}
	for i, e := range s.Data {
		b.WriteString(fmt.Sprintf("  %d. %s: %.2f%% (%d/%d)\n", i+1, safeName(e.Name), e.Ratio*100, e.MultimodalCount, e.TotalCount))
	}
}

// Breakdown writes every group of every question, not just the top ones.
func Breakdown(w io.Writer, res *analysis.Result, opt analysis.Options) error {
	var b strings.Builder
	writeRatioTable(&b, "QUESTION 1: "+opt.AgentTypeColumn+" by "+opt.MultimodalColumn+" ratio", opt.AgentTypeColumn, res.AgentTypes)
	writeRatioTable(&b, "QUESTION 2: "+opt.ArchitectureColumn+" by "+opt.MultimodalColumn+" ratio", opt.ArchitectureColumn, res.Architectures)

	b.WriteString(rule + "\n")
	b.WriteString(headingStyle.Render("QUESTION 3: "+opt.TaskCategoryColumn+" by median "+opt.BiasScoreColumn) + "\n")
	b.WriteString(rule + "\n")
	width := nameWidth(opt.TaskCategoryColumn, len(res.TaskCategories), func(i int) string { return res.TaskCategories[i].Name })
	b.WriteString(fmt.Sprintf("%-*s  %10s  %10s  %6s\n", width, opt.TaskCategoryColumn, "median", "mean", "count"))
	for _, m := range res.TaskCategories {
		b.WriteString(fmt.Sprintf("%-*s  %10.4f  %10.4f  %6d\n", width, safeName(m.Name), m.Median, m.Mean, m.Count))
	}
	b.WriteString("\n")

	if len(res.Warnings) > 0 {
		b.WriteString("[NOTES]\n")
		for _, wn := range res.Warnings {
			b.WriteString(warnStyle.Render("⚠ "+wn) + "\n")
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeRatioTable(b *strings.Builder, heading, keyCol string, stats []analysis.RatioStat) {
	b.WriteString(rule + "\n")
	b.WriteString(headingStyle.Render(heading) + "\n")
	b.WriteString(rule + "\n")
	width := nameWidth(keyCol, len(stats), func(i int) string { return stats[i].Name })
	b.WriteString(fmt.Sprintf("%-*s  %16s  %11s  %8s\n", width, keyCol, "multimodal_count", "total_count", "ratio"))
	for _, r := range stats {
		b.WriteString(fmt.Sprintf("%-*s  %16d  %11d  %8.4f\n", width, safeName(r.Name), r.MultimodalCount, r.TotalCount, r.Ratio))
	}
	b.WriteString("\n")
}

func nameWidth(header string, n int, name func(int) string) int {
	w := lipgloss.Width(header)
	for i := 0; i < n; i++ {
		if nw := lipgloss.Width(safeName(name(i))); nw > w {
			w = nw
		}
	}
	return w
}

func safeName(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	if s == "" {
		return "(unnamed)"
	}
	return s
}
