package domain

import "sort"

// TaskWithStatus pairs a task with its derived status and the PR it matched.
// Fields are ordered to minimize memory padding.
type TaskWithStatus struct {
	PR     *PullRequest `json:"pr,omitempty"` // Matched PR, nil if none
	Status TaskStatus   `json:"status"`
	Task   Task         `json:"task"`
}

// ReconciliationResult joins the spec document with the PR listing.
type ReconciliationResult struct {
	Project     string           `json:"project"`
	Tasks       []TaskWithStatus `json:"tasks"`       // Document order
	OrphanedPRs []PullRequest    `json:"orphanedPrs"` // Sorted by PR number
}

// Reconcile derives the status of every task of a project from the spec
// document and the open and merged PR listings.
//
// Only PRs whose branch decodes to the given project take part; anything
// else belongs to unrelated work and is dropped. For a task hash, an open
// PR wins over a merged one, and within the same state the most recently
// created wins. A checked task is always completed. An unchecked task with
// a merged PR is completed as well, because the checkbox update lags the
// merge. PRs whose hash matches no task are orphans.
//
// Each record is classified by its own state, not by the list it came in,
// and closed-but-unmerged PRs are ignored. A PR number that appears twice
// is considered once, preferring the merged copy (see DedupeByNumber).
func Reconcile(spec *SpecDocument, openPRs, mergedPRs []PullRequest, project string) *ReconciliationResult {
	result := &ReconciliationResult{Project: project}

	known := make(map[string]bool)
	if spec != nil {
		for _, t := range spec.Tasks {
			known[t.Hash] = true
		}
	}

	matches := make(map[string]PullRequest)
	for _, pr := range DedupeByNumber(concatPRs(openPRs, mergedPRs)) {
		if !pr.IsOpen() && !pr.IsMerged() {
			continue
		}
		desc, ok := pr.Descriptor()
		if !ok || desc.Project != project {
			continue
		}
		if !known[desc.TaskHash] {
			result.OrphanedPRs = append(result.OrphanedPRs, pr)
			continue
		}
		if current, ok := matches[desc.TaskHash]; !ok || preferPR(pr, current) {
			matches[desc.TaskHash] = pr
		}
	}

	sort.SliceStable(result.OrphanedPRs, func(i, j int) bool {
		return result.OrphanedPRs[i].Number < result.OrphanedPRs[j].Number
	})

	if spec == nil {
		return result
	}
	result.Tasks = make([]TaskWithStatus, 0, len(spec.Tasks))
	for _, t := range spec.Tasks {
		entry := TaskWithStatus{Task: t, Status: TaskStatusPending}
		if pr, ok := matches[t.Hash]; ok {
			entry.PR = &pr
		}
		switch {
		case t.Checked:
			entry.Status = TaskStatusCompleted
		case entry.PR != nil && entry.PR.IsOpen():
			entry.Status = TaskStatusInProgress
		case entry.PR != nil && entry.PR.IsMerged():
			entry.Status = TaskStatusCompleted
		}
		result.Tasks = append(result.Tasks, entry)
	}
	return result
}

// preferPR reports whether candidate should replace current as the match.
func preferPR(candidate, current PullRequest) bool {
	if candidate.IsOpen() != current.IsOpen() {
		return candidate.IsOpen()
	}
	return candidate.CreatedAt.After(current.CreatedAt)
}

func concatPRs(a, b []PullRequest) []PullRequest {
	all := make([]PullRequest, 0, len(a)+len(b))
	all = append(all, a...)
	return append(all, b...)
}

// Count returns the number of tasks in the given status.
func (r *ReconciliationResult) Count(status TaskStatus) int {
	n := 0
	for _, t := range r.Tasks {
		if t.Status == status {
			n++
		}
	}
	return n
}

// OpenOrphans returns the orphaned PRs that are still open.
// Merged orphans are history and need no attention.
func (r *ReconciliationResult) OpenOrphans() []PullRequest {
	var open []PullRequest
	for _, pr := range r.OrphanedPRs {
		if pr.IsOpen() {
			open = append(open, pr)
		}
	}
	return open
}

// NextPending returns the first pending task in document order.
func (r *ReconciliationResult) NextPending() (Task, bool) {
	for _, t := range r.Tasks {
		if t.Status == TaskStatusPending {
			return t.Task, true
		}
	}
	return Task{}, false
}

// MatchedPRs returns every PR matched to a task, in document order.
func (r *ReconciliationResult) MatchedPRs() []PullRequest {
	var prs []PullRequest
	for _, t := range r.Tasks {
		if t.PR != nil {
			prs = append(prs, *t.PR)
		}
	}
	return prs
}

// ProjectPRs filters a listing down to PRs whose branch decodes to project.
func ProjectPRs(prs []PullRequest, project string) []PullRequest {
	var out []PullRequest
	for _, pr := range prs {
		if desc, ok := pr.Descriptor(); ok && desc.Project == project {
			out = append(out, pr)
		}
	}
	return out
}
