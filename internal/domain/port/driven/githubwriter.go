package driven

import (
	"context"

	"github.com/ericfisherdev/ghbots/internal/domain/model"
)

// GitHubWriter defines the driven port for GitHub write operations.
// It is kept separate from GitHubClient so dry runs can swap it out.
type GitHubWriter interface {
	// CreateReviewComment posts an inline comment and returns its ID.
	CreateReviewComment(ctx context.Context, repoFullName string, prNumber int, payload model.CommentPayload) (int64, error)
	// AddLabels adds labels to the PR. Existing labels are never removed.
	AddLabels(ctx context.Context, repoFullName string, prNumber int, labels []string) error
}
