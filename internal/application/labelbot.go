package application

import (
	"context"
	"log/slog"

	"github.com/ericfisherdev/ghbots/internal/domain/model"
	"github.com/ericfisherdev/ghbots/internal/domain/port/driven"
)

// LabelResult summarises one label bot run.
type LabelResult struct {
	Files    []string
	Computed []string
	Merged   []string
	Added    []string // Labels the PR did not carry before; empty when nothing was written.
}

// LabelBot labels a PR from the files it changes.
type LabelBot struct {
	client driven.GitHubClient
	writer driven.GitHubWriter
	files  driven.ChangedFilesSource
	logger *slog.Logger
}

// NewLabelBot creates a LabelBot with the required dependencies.
func NewLabelBot(client driven.GitHubClient, writer driven.GitHubWriter, files driven.ChangedFilesSource, logger *slog.Logger) *LabelBot {
	if logger == nil {
		logger = slog.Default()
	}
	return &LabelBot{
		client: client,
		writer: writer,
		files:  files,
		logger: logger,
	}
}

// Update computes labels from the changes since baseRef and adds them,
// together with the PR's non-bot labels, to the PR. Labels are never removed.
func (b *LabelBot) Update(ctx context.Context, project string, prNumber int, baseRef string) (LabelResult, error) {
	var result LabelResult

	files, err := b.files.ChangedFiles(ctx, baseRef)
	if err != nil {
		return result, err
	}
	result.Files = files

	computed := ClassifyLabels(files)
	result.Computed = computed.Sorted()
	b.logger.Debug("labels detected", "files", len(files), "labels", result.Computed)

	repo, err := b.client.ResolveRepository(ctx, project)
	if err != nil {
		return result, err
	}

	pr, err := b.client.FetchPullRequest(ctx, repo.FullName, prNumber)
	if err != nil {
		return result, err
	}

	merged := MergeLabels(computed, pr.Labels)
	result.Merged = merged.Sorted()

	missing := merged.Missing(model.NewLabelSet(pr.Labels...))
	if len(missing) == 0 {
		b.logger.Debug("no need to update labels", "repo", repo.FullName, "pr", prNumber, "labels", result.Merged)
		return result, nil
	}

	if err := b.writer.AddLabels(ctx, repo.FullName, prNumber, result.Merged); err != nil {
		return result, err
	}
	result.Added = missing

	b.logger.Info("labels updated",
		"repo", repo.FullName,
		"pr", prNumber,
		"added", missing,
		"labels", result.Merged,
	)

	return result, nil
}
