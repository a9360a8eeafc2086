package analysis

import (
	"fmt"

	"github.com/KaramelBytes/agentmetrics-cli/internal/dataset"
)

// Options controls which columns are aggregated and how many groups are reported.
type Options struct {
	AgentTypeColumn    string
	ArchitectureColumn string
	TaskCategoryColumn string
	// MultimodalColumn is the boolean flag used for the ratio questions.
	MultimodalColumn string
	// BiasScoreColumn is the numeric column used for the median question.
	BiasScoreColumn string
	// TopN limits the ranked groups kept per question.
	TopN int
	// FalseTokens are extra strings treated as false in MultimodalColumn.
	FalseTokens []string
}

// DefaultOptions returns the column names of the agent performance dataset.
func DefaultOptions() Options {
	return Options{
		AgentTypeColumn:    "agent_type",
		ArchitectureColumn: "model_architecture",
		TaskCategoryColumn: "task_category",
		MultimodalColumn:   "multimodal_capability",
		BiasScoreColumn:    "bias_detection_score",
		TopN:               3,
	}
}

// Result holds every ranked group for the three questions. Use Top to cut it down.
type Result struct {
	// Total is the number of data rows after header promotion.
	Total          int
	AgentTypes     []RatioStat
	Architectures  []RatioStat
	TaskCategories []MedianStat
	Warnings       []string
}

// Run coerces the flag and score columns of t and computes all three rankings.
// t is left untouched.
func Run(t *dataset.Table, opt Options) (*Result, error) {
	ct, err := dataset.Coerce(t, dataset.CoerceOptions{
		BoolColumn:    opt.MultimodalColumn,
		NumericColumn: opt.BiasScoreColumn,
		FalseTokens:   opt.FalseTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("coerce: %w", err)
	}

	res := &Result{Total: ct.Len()}
	if res.AgentTypes, err = RatioBy(ct, opt.AgentTypeColumn, opt.MultimodalColumn); err != nil {
		return nil, fmt.Errorf("ratio by %s: %w", opt.AgentTypeColumn, err)
	}
	if res.Architectures, err = RatioBy(ct, opt.ArchitectureColumn, opt.MultimodalColumn); err != nil {
		return nil, fmt.Errorf("ratio by %s: %w", opt.ArchitectureColumn, err)
	}
	if res.TaskCategories, res.Warnings, err = MedianBy(ct, opt.TaskCategoryColumn, opt.BiasScoreColumn); err != nil {
		return nil, fmt.Errorf("median by %s: %w", opt.TaskCategoryColumn, err)
	}
	if missing := countMissing(ct, opt.BiasScoreColumn); missing > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d/%d rows have no numeric %s", missing, res.Total, opt.BiasScoreColumn))
	}
	return res, nil
}

func countMissing(t *dataset.Table, col string) int {
	j, ok := t.Col(col)
	if !ok {
		return 0
	}
	n := 0
	for _, row := range t.Rows {
		if v, _ := row[j].(dataset.NullFloat); !v.Valid {
			n++
		}
	}
	return n
}
