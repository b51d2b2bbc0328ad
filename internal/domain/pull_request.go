package domain

import (
	"slices"
	"time"
)

// PRState is the lifecycle state of a pull request as reported by the platform.
type PRState string

// PR states.
const (
	PRStateOpen   PRState = "open"
	PRStateMerged PRState = "merged"
	PRStateClosed PRState = "closed"
)

// PullRequest is a point-in-time, read-only view of a remote pull request.
// Fields are ordered to minimize memory padding.
type PullRequest struct {
	CreatedAt time.Time  `json:"createdAt"`
	MergedAt  *time.Time `json:"mergedAt,omitempty"`
	CostUSD   *float64   `json:"costUsd,omitempty"`
	State     PRState    `json:"state"`
	Branch    string     `json:"branch"`
	Title     string     `json:"title,omitempty"`
	URL       string     `json:"url,omitempty"`
	Assignees []string   `json:"assignees,omitempty"`
	Labels    []string   `json:"labels,omitempty"`
	Number    int        `json:"number"`
}

// IsMerged reports whether the PR was merged.
// A set MergedAt counts even if State disagrees.
func (pr PullRequest) IsMerged() bool {
	return pr.State == PRStateMerged || pr.MergedAt != nil
}

// IsOpen reports whether the PR is still open.
func (pr PullRequest) IsOpen() bool {
	return pr.State == PRStateOpen && !pr.IsMerged()
}

// Descriptor decodes the PR's branch name.
func (pr PullRequest) Descriptor() (BranchDescriptor, bool) {
	return ParseBranch(pr.Branch)
}

// HasLabel reports whether the PR carries the label.
func (pr PullRequest) HasLabel(label string) bool {
	return slices.Contains(pr.Labels, label)
}

// Age returns the time elapsed since creation, or since the merge for merged PRs.
func (pr PullRequest) Age(now time.Time) time.Duration {
	if pr.IsMerged() && pr.MergedAt != nil {
		return now.Sub(*pr.MergedAt)
	}
	return now.Sub(pr.CreatedAt)
}

// IsStale reports whether an open PR is older than staleDays.
// Merged and closed PRs are never stale.
func (pr PullRequest) IsStale(now time.Time, staleDays int) bool {
	if !pr.IsOpen() {
		return false
	}
	return pr.Age(now) > time.Duration(staleDays)*24*time.Hour
}

// Cost returns the recorded cost, or 0 when unknown.
func (pr PullRequest) Cost() float64 {
	if pr.CostUSD == nil {
		return 0
	}
	return *pr.CostUSD
}

// DedupeByNumber keeps one record per PR number in first-seen order.
// When copies disagree, a merged copy replaces an unmerged one: a PR can be
// merged between two listings but never unmerged.
func DedupeByNumber(prs []PullRequest) []PullRequest {
	index := make(map[int]int, len(prs))
	out := make([]PullRequest, 0, len(prs))
	for _, pr := range prs {
		if i, ok := index[pr.Number]; ok {
			if pr.IsMerged() && !out[i].IsMerged() {
				out[i] = pr
			}
			continue
		}
		index[pr.Number] = len(out)
		out = append(out, pr)
	}
	return out
}

// DropMerged returns the PRs of open that have no merged copy in merged.
func DropMerged(open, merged []PullRequest) []PullRequest {
	done := make(map[int]bool, len(merged))
	for _, pr := range merged {
		if pr.IsMerged() {
			done[pr.Number] = true
		}
	}
	out := make([]PullRequest, 0, len(open))
	for _, pr := range open {
		if !done[pr.Number] {
			out = append(out, pr)
		}
	}
	return out
}
