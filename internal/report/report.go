// Package report turns ranked aggregates into the results.json document.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/KaramelBytes/agentmetrics-cli/internal/analysis"
	"github.com/KaramelBytes/agentmetrics-cli/internal/utils"
)

// Section titles are part of the output contract and do not change with the top-N limit.
const (
	AgentTypeTitle    = "Top 3 Agent Types by Multimodal Capability Ratio"
	ArchitectureTitle = "Top 3 Model Architectures by Multimodal Capability Ratio"
	TaskCategoryTitle = "Top 3 Task Categories by Median Bias Detection Score"
)

// Results is the document consumed by the dashboard.
type Results struct {
	TotalRecords int           `json:"total_records"`
	Question1    RatioSection  `json:"question1"`
	Question2    RatioSection  `json:"question2"`
	Question3    MedianSection `json:"question3"`
}

type RatioSection struct {
	Title string       `json:"title"`
	Data  []RatioEntry `json:"data"`
}

type RatioEntry struct {
	Name            string  `json:"name"`
	Ratio           float64 `json:"ratio"`
	MultimodalCount int     `json:"multimodal_count"`
	TotalCount      int     `json:"total_count"`
}

type MedianSection struct {
	Title string        `json:"title"`
	Data  []MedianEntry `json:"data"`
}

type MedianEntry struct {
	Name        string  `json:"name"`
	MedianScore float64 `json:"median_score"`
	Count       int     `json:"count"`
}

// Build keeps the first topN groups of each ranking.
func Build(res *analysis.Result, topN int) *Results {
	return &Results{
		TotalRecords: res.Total,
		Question1:    ratioSection(AgentTypeTitle, analysis.Top(res.AgentTypes, topN)),
		Question2:    ratioSection(ArchitectureTitle, analysis.Top(res.Architectures, topN)),
		Question3:    medianSection(TaskCategoryTitle, analysis.Top(res.TaskCategories, topN)),
	}
}

func ratioSection(title string, stats []analysis.RatioStat) RatioSection {
	s := RatioSection{Title: title, Data: make([]RatioEntry, 0, len(stats))}
	for _, r := range stats {
		s.Data = append(s.Data, RatioEntry{
			Name:            r.Name,
			Ratio:           r.Ratio,
			MultimodalCount: r.MultimodalCount,
			TotalCount:      r.TotalCount,
		})
	}
	return s
}

func medianSection(title string, stats []analysis.MedianStat) MedianSection {
	s := MedianSection{Title: title, Data: make([]MedianEntry, 0, len(stats))}
	for _, m := range stats {
		s.Data = append(s.Data, MedianEntry{Name: m.Name, MedianScore: m.Median, Count: m.Count})
	}
	return s
}

// Marshal encodes r as indented UTF-8 JSON.
func Marshal(r *Results) ([]byte, error) {
	return utils.PrettyJSON(r)
}

// Write encodes r and replaces path in one step. Nothing is written if encoding fails.
func Write(path string, r *Results) error {
	b, err := Marshal(r)
	if err != nil {
		return err
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// Read loads a results document written by Write.
func Read(path string) (*Results, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	var r Results
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &r, nil
}
