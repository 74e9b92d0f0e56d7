package application

import (
	"context"
	"log/slog"

	"github.com/ericfisherdev/ghbots/internal/domain/model"
	"github.com/ericfisherdev/ghbots/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.GitHubWriter = (*DryRunWriter)(nil)

// DryRunWriter logs the writes it would perform instead of calling GitHub.
type DryRunWriter struct {
	logger *slog.Logger
}

// NewDryRunWriter creates a DryRunWriter.
func NewDryRunWriter(logger *slog.Logger) *DryRunWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &DryRunWriter{logger: logger}
}

// CreateReviewComment logs the comment and returns ID 0.
func (w *DryRunWriter) CreateReviewComment(_ context.Context, repoFullName string, prNumber int, payload model.CommentPayload) (int64, error) {
	w.logger.Info("dry run: would create review comment",
		"repo", repoFullName,
		"pr", prNumber,
		"path", payload.Path,
		"line", payload.Line,
		"commit", payload.CommitID,
		"body", payload.Body,
	)
	return 0, nil
}

// AddLabels logs the labels.
func (w *DryRunWriter) AddLabels(_ context.Context, repoFullName string, prNumber int, labels []string) error {
	w.logger.Info("dry run: would add labels", "repo", repoFullName, "pr", prNumber, "labels", labels)
	return nil
}
