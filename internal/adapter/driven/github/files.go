package github

import (
	"context"

	"github.com/ericfisherdev/ghbots/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ChangedFilesSource = (*PRFiles)(nil)

// PRFiles lists a pull request's changed files from the API instead of a
// local checkout. The base ref is ignored; GitHub already knows the PR base.
type PRFiles struct {
	Client   driven.GitHubClient
	Project  string // "owner/repo" or numeric repository ID.
	PRNumber int
}

// ChangedFiles returns the filenames of the PR's changed-file list.
func (p *PRFiles) ChangedFiles(ctx context.Context, _ string) ([]string, error) {
	repo, err := p.Client.ResolveRepository(ctx, p.Project)
	if err != nil {
		return nil, err
	}

	files, err := p.Client.FetchChangedFiles(ctx, repo.FullName, p.PRNumber)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Filename)
	}
	return names, nil
}
