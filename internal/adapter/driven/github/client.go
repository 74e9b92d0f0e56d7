// Package github implements the GitHubClient and GitHubWriter ports using the go-github library.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/ghbots/internal/domain/model"
	"github.com/ericfisherdev/ghbots/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.GitHubClient = (*Client)(nil)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com/"

// Client implements the driven.GitHubClient port using the go-github library.
type Client struct {
	gh     *gh.Client
	logger *slog.Logger

	mu    sync.Mutex
	repos map[string]model.Repository // Resolved repositories keyed by the caller's name or ID.
}

// NewClient creates a GitHub API client for baseURL with the following transport stack:
//  1. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  2. httpcache (ETag-based conditional request caching)
//  3. oauth2 static token transport (PAT auth)
func NewClient(baseURL, token string, logger *slog.Logger) (*Client, error) {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	cacheTransport.Transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
	}
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)

	return NewClientWithHTTPClient(rateLimitClient, baseURL, logger)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// Tests use it to point the client at an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string, logger *slog.Logger) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	client.BaseURL = u

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{gh: client, logger: logger, repos: make(map[string]model.Repository)}, nil
}

// parseBaseURL accepts the REST API root with or without a trailing slash.
// go-github requires the slash.
func parseBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		raw = DefaultBaseURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parsing base URL %q: scheme and host are required", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

// ResolveRepository looks up a repository by numeric ID or "owner/repo".
// Successful lookups are remembered for the lifetime of the client.
func (c *Client) ResolveRepository(ctx context.Context, nameOrID string) (model.Repository, error) {
	c.mu.Lock()
	cached, ok := c.repos[nameOrID]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	var (
		repo *gh.Repository
		resp *gh.Response
		err  error
	)

	if id, convErr := strconv.ParseInt(nameOrID, 10, 64); convErr == nil {
		repo, resp, err = c.gh.Repositories.GetByID(ctx, id)
	} else {
		owner, name, splitErr := splitRepo(nameOrID)
		if splitErr != nil {
			return model.Repository{}, splitErr
		}
		repo, resp, err = c.gh.Repositories.Get(ctx, owner, name)
	}
	if err != nil {
		return model.Repository{}, fmt.Errorf("fetching repository %s: %w", nameOrID, err)
	}

	c.logRateLimit(resp, nameOrID+"/repo", 0, 1)

	mapped, err := mapRepository(repo)
	if err != nil {
		return model.Repository{}, err
	}

	c.mu.Lock()
	c.repos[nameOrID] = mapped
	c.mu.Unlock()

	return mapped, nil
}

// FetchPullRequest returns head SHA and labels for a single PR.
func (c *Client) FetchPullRequest(ctx context.Context, repoFullName string, prNumber int) (*model.PullRequest, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	pr, resp, err := c.gh.PullRequests.Get(ctx, owner, repo, prNumber)
	if err != nil {
		return nil, fmt.Errorf("fetching PR %s#%d: %w", repoFullName, prNumber, err)
	}

	c.logRateLimit(resp, repoFullName+"/pr", 0, 1)

	return mapPullRequest(pr, repoFullName)
}

// FetchReviewComments retrieves all review comments for a pull request.
// It handles pagination automatically and maps go-github types to domain model types.
func (c *Client) FetchReviewComments(ctx context.Context, repoFullName string, prNumber int) ([]model.ReviewComment, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	opts := &gh.PullRequestListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	var allComments []model.ReviewComment

	for {
		comments, resp, err := c.gh.PullRequests.ListComments(ctx, owner, repo, prNumber, opts)
		if err != nil {
			return nil, fmt.Errorf("listing review comments for %s#%d (page %d): %w", repoFullName, prNumber, opts.Page, err)
		}

		c.logRateLimit(resp, repoFullName+"/comments", opts.Page, len(comments))

		for _, comment := range comments {
			mapped, err := mapReviewComment(comment)
			if err != nil {
				return nil, err
			}
			allComments = append(allComments, mapped)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allComments, nil
}

// FetchChangedFiles retrieves the changed-file list of a pull request.
func (c *Client) FetchChangedFiles(ctx context.Context, repoFullName string, prNumber int) ([]model.DiffFile, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	opts := &gh.ListOptions{PerPage: 100}
	var allFiles []model.DiffFile

	for {
		files, resp, err := c.gh.PullRequests.ListFiles(ctx, owner, repo, prNumber, opts)
		if err != nil {
			return nil, fmt.Errorf("listing files for %s#%d (page %d): %w", repoFullName, prNumber, opts.Page, err)
		}

		c.logRateLimit(resp, repoFullName+"/files", opts.Page, len(files))

		for _, f := range files {
			if f.GetFilename() == "" {
				return nil, fmt.Errorf("%w: changed file without filename on %s#%d", model.ErrMalformedResponse, repoFullName, prNumber)
			}
			allFiles = append(allFiles, model.DiffFile{
				Filename: f.GetFilename(),
				Status:   f.GetStatus(),
				SHA:      f.GetSHA(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allFiles, nil
}

// logRateLimit logs the GitHub API rate limit status after each call.
func (c *Client) logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	c.logger.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 100 {
		c.logger.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}

// mapRepository converts a go-github Repository to a domain model Repository.
func mapRepository(r *gh.Repository) (model.Repository, error) {
	if r.GetFullName() == "" {
		return model.Repository{}, fmt.Errorf("%w: repository %d has no full_name", model.ErrMalformedResponse, r.GetID())
	}
	owner, name, err := splitRepo(r.GetFullName())
	if err != nil {
		return model.Repository{}, fmt.Errorf("%w: %v", model.ErrMalformedResponse, err)
	}
	return model.Repository{
		ID:       r.GetID(),
		FullName: r.GetFullName(),
		Owner:    owner,
		Name:     name,
	}, nil
}

// mapPullRequest converts a go-github PullRequest to a domain model PullRequest.
// It uses GetXxx() helper methods exclusively to avoid nil pointer panics.
func mapPullRequest(pr *gh.PullRequest, repoFullName string) (*model.PullRequest, error) {
	if pr.GetHead().GetSHA() == "" {
		return nil, fmt.Errorf("%w: PR %s#%d has no head SHA", model.ErrMalformedResponse, repoFullName, pr.GetNumber())
	}

	labels := make([]string, 0, len(pr.Labels))
	for _, l := range pr.Labels {
		if l.GetName() == "" {
			return nil, fmt.Errorf("%w: PR %s#%d has a label without name", model.ErrMalformedResponse, repoFullName, pr.GetNumber())
		}
		labels = append(labels, l.GetName())
	}

	return &model.PullRequest{
		Number:       pr.GetNumber(),
		RepoFullName: repoFullName,
		HeadSHA:      pr.GetHead().GetSHA(),
		BaseSHA:      pr.GetBase().GetSHA(),
		Labels:       labels,
	}, nil
}

// mapReviewComment converts a go-github PullRequestComment to a domain model ReviewComment.
// Inline comments must carry the path they are anchored to.
func mapReviewComment(c *gh.PullRequestComment) (model.ReviewComment, error) {
	if c.GetDiffHunk() != "" && c.GetPath() == "" {
		return model.ReviewComment{}, fmt.Errorf("%w: review comment %d has a diff hunk but no path", model.ErrMalformedResponse, c.GetID())
	}

	return model.ReviewComment{
		ID:       c.GetID(),
		Body:     c.GetBody(),
		Path:     c.GetPath(),
		Position: c.GetPosition(),
		Line:     c.GetLine(),
		DiffHunk: c.GetDiffHunk(),
		CommitID: c.GetCommitID(),
	}, nil
}

// splitRepo splits a "owner/repo" string into its two components.
func splitRepo(fullName string) (string, string, error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo name %q: expected owner/repo", fullName)
	}
	return parts[0], parts[1], nil
}
