package application

import (
	"context"
	"log/slog"

	"github.com/ericfisherdev/ghbots/internal/domain/model"
	"github.com/ericfisherdev/ghbots/internal/domain/port/driven"
)

// PublishResult summarises one publisher run.
type PublishResult struct {
	Defects int
	Created int
	Skipped int
}

// DefectPublisher posts static-analysis defects as inline PR comments,
// skipping any defect whose exact comment already exists at its location.
type DefectPublisher struct {
	client driven.GitHubClient
	writer driven.GitHubWriter
	logger *slog.Logger
}

// NewDefectPublisher creates a DefectPublisher with the required dependencies.
func NewDefectPublisher(client driven.GitHubClient, writer driven.GitHubWriter, logger *slog.Logger) *DefectPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefectPublisher{
		client: client,
		writer: writer,
		logger: logger,
	}
}

// Publish ensures one comment per defect exists on the PR. Defects are
// processed in input order; the first failing write aborts the run and
// comments created before it stay in place.
func (p *DefectPublisher) Publish(ctx context.Context, project string, prNumber int, defects []model.Defect) (PublishResult, error) {
	result := PublishResult{Defects: len(defects)}
	if len(defects) == 0 {
		p.logger.Info("report is empty, nothing to publish")
		return result, nil
	}

	repo, err := p.client.ResolveRepository(ctx, project)
	if err != nil {
		return result, err
	}

	pr, err := p.client.FetchPullRequest(ctx, repo.FullName, prNumber)
	if err != nil {
		return result, err
	}

	comments, err := p.client.FetchReviewComments(ctx, repo.FullName, prNumber)
	if err != nil {
		return result, err
	}
	discussions := model.NewDiscussionIndex(comments)

	for _, defect := range defects {
		payload := model.NewCommentPayload(defect, pr.HeadSHA)

		if discussions.Contains(payload.Path, payload.Line, payload.Body) {
			p.logger.Debug("skipping already reported defect",
				"check", defect.CheckName,
				"path", payload.Path,
				"line", payload.Line,
			)
			result.Skipped++
			continue
		}

		id, err := p.writer.CreateReviewComment(ctx, repo.FullName, prNumber, payload)
		if err != nil {
			return result, err
		}
		discussions.Add(payload.Path, payload.Line, payload.Body)
		result.Created++

		p.logger.Debug("created review comment",
			"id", id,
			"check", defect.CheckName,
			"path", payload.Path,
			"line", payload.Line,
		)
	}

	p.logger.Info("defects published",
		"repo", repo.FullName,
		"pr", prNumber,
		"defects", result.Defects,
		"created", result.Created,
		"skipped", result.Skipped,
	)

	return result, nil
}
