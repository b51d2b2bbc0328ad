package domain

// DefaultProjectLimit is the number of open PRs a project without reviewers may have.
const DefaultProjectLimit = 1

// Reviewer is an assignable reviewer and the number of open PRs they accept.
// The order of reviewers in the configuration is the assignment priority.
type Reviewer struct {
	Username   string `yaml:"username" json:"username"`
	MaxOpenPRs int    `yaml:"maxOpenPRs" json:"maxOpenPRs"`
}

// AdmissionResult is the outcome of a capacity check.
type AdmissionResult int

const (
	// AdmissionAllowed means a new task may be started.
	AdmissionAllowed AdmissionResult = iota
	// AdmissionDeniedReviewers means every reviewer is at or over capacity.
	AdmissionDeniedReviewers
	// AdmissionDeniedProjectLimit means the project-wide slot count is used up.
	AdmissionDeniedProjectLimit
)

func (r AdmissionResult) String() string {
	switch r {
	case AdmissionAllowed:
		return "allowed"
	case AdmissionDeniedReviewers:
		return "reviewers_at_capacity"
	case AdmissionDeniedProjectLimit:
		return "project_limit"
	default:
		return "unknown"
	}
}

// Admission is the decision of CheckAdmission.
// Fields are ordered to minimize memory padding.
type Admission struct {
	OpenByReviewer map[string]int // Open PR count per reviewer (reviewer mode)
	Reviewer       string         // Selected reviewer, empty in project mode
	Result         AdmissionResult
	OpenPRs        int // Open PRs of the project
	Limit          int // Project limit (project mode)
}

// Allowed reports whether a new task may be started.
func (a Admission) Allowed() bool {
	return a.Result == AdmissionAllowed
}

// SelectAssignee returns the first reviewer in configured order whose open
// PR count is below their maximum. Reviewers with a maximum of 0 are never
// selected, and a count above the maximum is treated like a full slot.
// Returns false when nobody has capacity.
func SelectAssignee(reviewers []Reviewer, openByReviewer map[string]int) (string, bool) {
	for _, r := range reviewers {
		if r.MaxOpenPRs <= 0 {
			continue
		}
		if openByReviewer[r.Username] < r.MaxOpenPRs {
			return r.Username, true
		}
	}
	return "", false
}

// HasProjectCapacity is the reviewer-less mode: a single project-wide slot
// count. A non-positive limit falls back to DefaultProjectLimit.
func HasProjectCapacity(openProjectPRs, limit int) bool {
	if limit <= 0 {
		limit = DefaultProjectLimit
	}
	return openProjectPRs < limit
}

// CountOpenByAssignee counts open PRs of the project per assignee.
// A PR with several assignees counts once for each of them.
func CountOpenByAssignee(prs []PullRequest, project string) map[string]int {
	counts := make(map[string]int)
	for _, pr := range ProjectPRs(prs, project) {
		if !pr.IsOpen() {
			continue
		}
		for _, a := range pr.Assignees {
			counts[a]++
		}
	}
	return counts
}

// CountOpen counts open PRs of the project, regardless of assignee.
func CountOpen(prs []PullRequest, project string) int {
	n := 0
	for _, pr := range ProjectPRs(prs, project) {
		if pr.IsOpen() {
			n++
		}
	}
	return n
}

// CheckAdmission decides whether a project may start another task.
//
// With reviewers configured, the first reviewer with a free slot is chosen.
// Without reviewers, the project's open PR count is compared with limit.
//
// The decision is a pure function of the PR snapshot it is given. Two runs
// that read the same snapshot before either opens its PR can both be
// admitted, so a transient over-admission is possible. This is a
// best-effort throttle; there is no lock across runs, and the next run
// re-derives everything from the platform.
func CheckAdmission(reviewers []Reviewer, openPRs []PullRequest, project string, limit int) Admission {
	a := Admission{OpenPRs: CountOpen(openPRs, project)}
	if len(reviewers) > 0 {
		a.OpenByReviewer = CountOpenByAssignee(openPRs, project)
		if username, ok := SelectAssignee(reviewers, a.OpenByReviewer); ok {
			a.Reviewer = username
			a.Result = AdmissionAllowed
		} else {
			a.Result = AdmissionDeniedReviewers
		}
		return a
	}

	a.Limit = limit
	if a.Limit <= 0 {
		a.Limit = DefaultProjectLimit
	}
	if HasProjectCapacity(a.OpenPRs, a.Limit) {
		a.Result = AdmissionAllowed
	} else {
		a.Result = AdmissionDeniedProjectLimit
	}
	return a
}
