package driven

import (
	"context"

	"github.com/ericfisherdev/ghbots/internal/domain/model"
)

// GitHubClient defines the driven port for reading pull request state.
type GitHubClient interface {
	// ResolveRepository looks a repository up by "owner/repo" or numeric ID.
	ResolveRepository(ctx context.Context, nameOrID string) (model.Repository, error)
	// FetchPullRequest returns a single PR with its head SHA and labels.
	FetchPullRequest(ctx context.Context, repoFullName string, prNumber int) (*model.PullRequest, error)
	// FetchReviewComments returns every review comment on the PR.
	FetchReviewComments(ctx context.Context, repoFullName string, prNumber int) ([]model.ReviewComment, error)
	// FetchChangedFiles returns the PR's changed-file list in API order.
	FetchChangedFiles(ctx context.Context, repoFullName string, prNumber int) ([]model.DiffFile, error)
}
