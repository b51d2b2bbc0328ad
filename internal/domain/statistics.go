package domain

import (
	"regexp"
	"sort"
	"strconv"
	"time"
)

// DefaultStaleDays is the staleness threshold used by reports.
const DefaultStaleDays = 7

// ProjectStats is the rollup of one project.
// Fields are ordered to minimize memory padding.
type ProjectStats struct {
	Project      string  `json:"project"`
	CostUSD      float64 `json:"costUsd"`
	Total        int     `json:"total"`
	Completed    int     `json:"completed"`
	InProgress   int     `json:"inProgress"`
	Pending      int     `json:"pending"`
	StaleOpenPRs int     `json:"staleOpenPrs"`
	OpenOrphans  int     `json:"openOrphans"`
	// Error is set when the project could not be reconciled; counts are zero.
	Error string `json:"error,omitempty"`
}

// NeedsAttention reports whether an operator should look at the project:
// a broken spec, a stale PR, pending work with nothing in progress, or an
// open orphan.
func (s ProjectStats) NeedsAttention() bool {
	return s.Error != "" ||
		s.StaleOpenPRs > 0 ||
		(s.Pending > 0 && s.InProgress == 0) ||
		s.OpenOrphans > 0
}

// CompletionPercent returns completed/total as a percentage.
func (s ProjectStats) CompletionPercent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) * 100 / float64(s.Total)
}

// ReviewerStats counts PRs assigned to a reviewer across all projects.
type ReviewerStats struct {
	Username string `json:"username"`
	Merged   int    `json:"merged"`
	Open     int    `json:"open"`
}

// StatisticsReport is the structured export of a statistics run.
// Fields are ordered to minimize memory padding.
type StatisticsReport struct {
	GeneratedAt time.Time       `json:"generatedAt"`
	Projects    []ProjectStats  `json:"projects"`
	Reviewers   []ReviewerStats `json:"reviewers"`
	StaleDays   int             `json:"staleDays"`
}

// TotalCost sums the cost of every project.
func (r *StatisticsReport) TotalCost() float64 {
	total := 0.0
	for _, p := range r.Projects {
		total += p.CostUSD
	}
	return total
}

// NeedingAttention returns the projects that need attention.
func (r *StatisticsReport) NeedingAttention() []ProjectStats {
	var out []ProjectStats
	for _, p := range r.Projects {
		if p.NeedsAttention() {
			out = append(out, p)
		}
	}
	return out
}

// BuildProjectStats rolls up a reconciliation result.
// Staleness is counted over the open PRs of the project, matched or orphaned.
func BuildProjectStats(result *ReconciliationResult, openPRs []PullRequest, costUSD float64, now time.Time, staleDays int) ProjectStats {
	stats := ProjectStats{
		Project:     result.Project,
		CostUSD:     costUSD,
		Total:       len(result.Tasks),
		Completed:   result.Count(TaskStatusCompleted),
		InProgress:  result.Count(TaskStatusInProgress),
		Pending:     result.Count(TaskStatusPending),
		OpenOrphans: len(result.OpenOrphans()),
	}
	for _, pr := range ProjectPRs(openPRs, result.Project) {
		if pr.IsStale(now, staleDays) {
			stats.StaleOpenPRs++
		}
	}
	return stats
}

// AggregateReviewers counts open and merged PRs per assignee.
// A PR number seen more than once is counted once. The result is sorted by
// username.
func AggregateReviewers(prs []PullRequest) []ReviewerStats {
	byUser := make(map[string]*ReviewerStats)
	seen := make(map[int]bool)
	for _, pr := range prs {
		if seen[pr.Number] {
			continue
		}
		seen[pr.Number] = true
		for _, a := range pr.Assignees {
			s, ok := byUser[a]
			if !ok {
				s = &ReviewerStats{Username: a}
				byUser[a] = s
			}
			switch {
			case pr.IsMerged():
				s.Merged++
			case pr.IsOpen():
				s.Open++
			}
		}
	}

	out := make([]ReviewerStats, 0, len(byUser))
	for _, s := range byUser {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

// costPattern matches "Total Cost" followed by a dollar amount, as posted by
// the workflow after an agent run, e.g. "| **Total Cost** | **$0.123456** |".
var costPattern = regexp.MustCompile(`(?i)total\s+cost[^$0-9]*\$\s*([0-9]+(?:\.[0-9]+)?)`)

// ParseCostComment extracts the USD amount from a cost comment.
func ParseCostComment(text string) (float64, bool) {
	m := costPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// SumCost adds up the known cost of PRs.
func SumCost(prs []PullRequest) float64 {
	total := 0.0
	for _, pr := range prs {
		total += pr.Cost()
	}
	return total
}
