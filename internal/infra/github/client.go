// Package github lists task pull requests through the gh CLI.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/runoshun/git-chain/internal/domain"
)

// prFields is the set of JSON fields requested from gh pr list.
const prFields = "number,state,headRefName,createdAt,mergedAt,assignees,labels,title,url"

// Client implements domain.PullRequestLister and domain.CostSource using gh.
// Fields are ordered to minimize memory padding.
type Client struct {
	exec    domain.CommandExecutor
	repo    string        // owner/name, empty = current repository
	dir     string        // working directory for gh
	timeout time.Duration // per-call timeout, zero = none
}

// Ensure Client implements the ports.
var (
	_ domain.PullRequestLister = (*Client)(nil)
	_ domain.CostSource        = (*Client)(nil)
)

// NewClient creates a gh-backed client.
func NewClient(exec domain.CommandExecutor, dir string, cfg domain.GitHubConfig) *Client {
	return &Client{
		exec:    exec,
		repo:    cfg.Repo,
		dir:     dir,
		timeout: cfg.Timeout,
	}
}

// ghUser is a gh login reference.
type ghUser struct {
	Login string `json:"login"`
}

// ghLabel is a gh label reference.
type ghLabel struct {
	Name string `json:"name"`
}

// ghPullRequest mirrors the JSON produced by gh pr list.
type ghPullRequest struct {
	CreatedAt   time.Time  `json:"createdAt"`
	MergedAt    *time.Time `json:"mergedAt"`
	State       string     `json:"state"`
	HeadRefName string     `json:"headRefName"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Assignees   []ghUser   `json:"assignees"`
	Labels      []ghLabel  `json:"labels"`
	Number      int        `json:"number"`
}

// ghComment mirrors one entry of gh pr view --json comments.
type ghComment struct {
	Body string `json:"body"`
}

// ListPullRequests returns PRs carrying opts.Label in opts.State.
func (c *Client) ListPullRequests(ctx context.Context, opts domain.ListPROptions) ([]domain.PullRequest, error) {
	state := opts.State
	if state == "" {
		state = domain.PRStateOpen
	}
	args := []string{"pr", "list", "--state", string(state), "--json", prFields}
	if opts.Label != "" {
		args = append(args, "--label", opts.Label)
	}
	if opts.Limit > 0 {
		args = append(args, "--limit", strconv.Itoa(opts.Limit))
	}
	args = c.withRepo(args)

	out, err := c.run(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s PRs: %v", domain.ErrRemoteAPI, state, err)
	}

	var raw []ghPullRequest
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode %s PRs: %v", domain.ErrRemoteAPI, state, err)
	}

	prs := make([]domain.PullRequest, 0, len(raw))
	for _, r := range raw {
		prs = append(prs, r.toDomain())
	}
	return prs, nil
}

// PullRequestCost returns the cost from the most recent cost comment on a PR.
func (c *Client) PullRequestCost(ctx context.Context, number int) (float64, bool, error) {
	args := c.withRepo([]string{"pr", "view", strconv.Itoa(number), "--json", "comments"})

	out, err := c.run(ctx, args)
	if err != nil {
		return 0, false, fmt.Errorf("%w: view PR #%d: %v", domain.ErrRemoteAPI, number, err)
	}

	var payload struct {
		Comments []ghComment `json:"comments"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		return 0, false, fmt.Errorf("%w: decode PR #%d comments: %v", domain.ErrRemoteAPI, number, err)
	}

	for i := len(payload.Comments) - 1; i >= 0; i-- {
		if cost, ok := domain.ParseCostComment(payload.Comments[i].Body); ok {
			return cost, true, nil
		}
	}
	return 0, false, nil
}

func (c *Client) withRepo(args []string) []string {
	if c.repo != "" {
		args = append(args, "--repo", c.repo)
	}
	return args
}

func (c *Client) run(ctx context.Context, args []string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.exec.Output(ctx, domain.NewCommand("gh", args, c.dir))
}

func (r ghPullRequest) toDomain() domain.PullRequest {
	pr := domain.PullRequest{
		Number:    r.Number,
		State:     domain.PRState(strings.ToLower(r.State)),
		Branch:    r.HeadRefName,
		Title:     r.Title,
		URL:       r.URL,
		CreatedAt: r.CreatedAt,
	}
	if r.MergedAt != nil && !r.MergedAt.IsZero() {
		merged := *r.MergedAt
		pr.MergedAt = &merged
	}
	for _, a := range r.Assignees {
		pr.Assignees = append(pr.Assignees, a.Login)
	}
	for _, l := range r.Labels {
		pr.Labels = append(pr.Labels, l.Name)
	}
	return pr
}
