package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v82/github"

	"github.com/ericfisherdev/ghbots/internal/domain/model"
	"github.com/ericfisherdev/ghbots/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.GitHubWriter = (*Client)(nil)

// CreateReviewComment posts an inline comment at payload.Path, using
// payload.Line as the diff position on payload.CommitID.
func (c *Client) CreateReviewComment(ctx context.Context, repoFullName string, prNumber int, payload model.CommentPayload) (int64, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return 0, err
	}

	comment, resp, err := c.gh.PullRequests.CreateComment(ctx, owner, repo, prNumber, &gh.PullRequestComment{
		Body:     gh.Ptr(payload.Body),
		Path:     gh.Ptr(payload.Path),
		Position: gh.Ptr(payload.Line),
		CommitID: gh.Ptr(payload.CommitID),
	})
	if err != nil {
		var ghErr *gh.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusUnprocessableEntity {
			return 0, fmt.Errorf("creating comment at %s:%d on %s#%d (position not in diff or stale commit %s): %w",
				payload.Path, payload.Line, repoFullName, prNumber, payload.CommitID, err)
		}
		return 0, fmt.Errorf("creating comment at %s:%d on %s#%d: %w", payload.Path, payload.Line, repoFullName, prNumber, err)
	}

	c.logRateLimit(resp, repoFullName+"/create-comment", 0, 1)
	return comment.GetID(), nil
}

// AddLabels adds labels to the pull request through the Issues API.
func (c *Client) AddLabels(ctx context.Context, repoFullName string, prNumber int, labels []string) error {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return err
	}

	_, resp, err := c.gh.Issues.AddLabelsToIssue(ctx, owner, repo, prNumber, labels)
	if err != nil {
		return fmt.Errorf("adding labels to %s#%d: %w", repoFullName, prNumber, err)
	}

	c.logRateLimit(resp, repoFullName+"/add-labels", 0, len(labels))
	return nil
}
