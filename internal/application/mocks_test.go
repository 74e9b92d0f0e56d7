package application

import (
	"context"
	"io"
	"log/slog"

	"github.com/ericfisherdev/ghbots/internal/domain/model"
)

// --- Mock implementations of the driven ports ---

type mockGitHubClient struct {
	repo        model.Repository
	pr          *model.PullRequest
	comments    []model.ReviewComment
	files       []model.DiffFile
	resolveErr  error
	prErr       error
	commentsErr error
}

func (m *mockGitHubClient) ResolveRepository(_ context.Context, _ string) (model.Repository, error) {
	return m.repo, m.resolveErr
}

func (m *mockGitHubClient) FetchPullRequest(_ context.Context, _ string, _ int) (*model.PullRequest, error) {
	return m.pr, m.prErr
}

func (m *mockGitHubClient) FetchReviewComments(_ context.Context, _ string, _ int) ([]model.ReviewComment, error) {
	return m.comments, m.commentsErr
}

func (m *mockGitHubClient) FetchChangedFiles(_ context.Context, _ string, _ int) ([]model.DiffFile, error) {
	return m.files, nil
}

// mockGitHubWriter records writes. Created comments are fed back into the
// client's comment list so consecutive runs see the state a real PR would.
type mockGitHubWriter struct {
	client     *mockGitHubClient
	created    []model.CommentPayload
	labelCalls [][]string
	failAfter  int // Fail the Nth comment creation (1-based); 0 never fails.
	err        error
}

func (m *mockGitHubWriter) CreateReviewComment(_ context.Context, _ string, _ int, payload model.CommentPayload) (int64, error) {
	if m.failAfter > 0 && len(m.created)+1 == m.failAfter {
		return 0, m.err
	}
	m.created = append(m.created, payload)
	if m.client != nil {
		m.client.comments = append(m.client.comments, model.ReviewComment{
			ID:       int64(len(m.created)),
			Body:     payload.Body,
			Path:     payload.Path,
			Position: payload.Line,
			DiffHunk: "@@ -1 +1 @@",
			CommitID: payload.CommitID,
		})
	}
	return int64(len(m.created)), nil
}

func (m *mockGitHubWriter) AddLabels(_ context.Context, _ string, _ int, labels []string) error {
	if m.err != nil {
		return m.err
	}
	m.labelCalls = append(m.labelCalls, labels)
	return nil
}

type mockChangedFiles struct {
	files   []string
	err     error
	baseRef string
}

func (m *mockChangedFiles) ChangedFiles(_ context.Context, baseRef string) ([]string, error) {
	m.baseRef = baseRef
	return m.files, m.err
}

// --- Helper functions ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defect(fingerprint, check, desc, path string, line int) model.Defect {
	return model.Defect{
		Fingerprint: fingerprint,
		CheckName:   check,
		Description: desc,
		Location: model.Location{
			Path:      path,
			Positions: model.Positions{Begin: model.Position{Line: line}},
		},
	}
}

func testRepo() model.Repository {
	return model.Repository{ID: 1, FullName: "owner/repo", Owner: "owner", Name: "repo"}
}
