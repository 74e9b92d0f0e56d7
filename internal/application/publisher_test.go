package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/ghbots/internal/domain/model"
)

func newPublisherFixture() (*mockGitHubClient, *mockGitHubWriter, *DefectPublisher) {
	client := &mockGitHubClient{
		repo: testRepo(),
		pr:   &model.PullRequest{Number: 42, RepoFullName: "owner/repo", HeadSHA: "head123"},
	}
	writer := &mockGitHubWriter{client: client}
	return client, writer, NewDefectPublisher(client, writer, discardLogger())
}

func TestPublish_CreatesComment(t *testing.T) {
	_, writer, publisher := newPublisherFixture()

	result, err := publisher.Publish(context.Background(), "owner/repo", 42, []model.Defect{
		defect("f1", "rule/x", "bad thing", "a.py", 10),
	})

	require.NoError(t, err)
	assert.Equal(t, PublishResult{Defects: 1, Created: 1, Skipped: 0}, result)
	require.Len(t, writer.created, 1)
	assert.Equal(t, model.CommentPayload{
		Body:     "f1: rule/x\n\nbad thing",
		Path:     "a.py",
		Line:     10,
		CommitID: "head123",
	}, writer.created[0])
}

func TestPublish_SkipsExistingComment(t *testing.T) {
	client, writer, publisher := newPublisherFixture()
	client.comments = []model.ReviewComment{
		{ID: 1, Body: "f1: rule/x\n\nbad thing", Path: "a.py", Position: 10, DiffHunk: "@@"},
	}

	result, err := publisher.Publish(context.Background(), "owner/repo", 42, []model.Defect{
		defect("f1", "rule/x", "bad thing", "a.py", 10),
		defect("f2", "rule/y", "worse thing", "a.py", 10),
	})

	require.NoError(t, err)
	assert.Equal(t, PublishResult{Defects: 2, Created: 1, Skipped: 1}, result)
	require.Len(t, writer.created, 1)
	assert.Equal(t, "f2: rule/y\n\nworse thing", writer.created[0].Body)
}

func TestPublish_DifferentLocationIsNotDuplicate(t *testing.T) {
	client, writer, publisher := newPublisherFixture()
	client.comments = []model.ReviewComment{
		{ID: 1, Body: "f1: rule/x\n\nbad thing", Path: "a.py", Position: 11, DiffHunk: "@@"},
		{ID: 2, Body: "f1: rule/x\n\nbad thing", Path: "b.py", Position: 10, DiffHunk: "@@"},
	}

	_, err := publisher.Publish(context.Background(), "owner/repo", 42, []model.Defect{
		defect("f1", "rule/x", "bad thing", "a.py", 10),
	})

	require.NoError(t, err)
	assert.Len(t, writer.created, 1)
}

func TestPublish_IgnoresNonInlineComments(t *testing.T) {
	client, writer, publisher := newPublisherFixture()
	client.comments = []model.ReviewComment{
		{ID: 1, Body: "f1: rule/x\n\nbad thing", Path: "a.py", Position: 10},
	}

	_, err := publisher.Publish(context.Background(), "owner/repo", 42, []model.Defect{
		defect("f1", "rule/x", "bad thing", "a.py", 10),
	})

	require.NoError(t, err)
	assert.Len(t, writer.created, 1)
}

func TestPublish_IdempotentAcrossRuns(t *testing.T) {
	_, writer, publisher := newPublisherFixture()
	defects := []model.Defect{
		defect("f1", "rule/x", "bad thing", "a.py", 10),
		defect("f2", "rule/y", "other", "b.go", 3),
	}

	first, err := publisher.Publish(context.Background(), "owner/repo", 42, defects)
	require.NoError(t, err)
	second, err := publisher.Publish(context.Background(), "owner/repo", 42, defects)
	require.NoError(t, err)

	assert.Equal(t, 2, first.Created)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.Skipped)
	assert.Len(t, writer.created, 2)
}

func TestPublish_DuplicateDefectInOneReport(t *testing.T) {
	_, writer, publisher := newPublisherFixture()
	d := defect("f1", "rule/x", "bad thing", "a.py", 10)

	result, err := publisher.Publish(context.Background(), "owner/repo", 42, []model.Defect{d, d})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Len(t, writer.created, 1)
}

func TestPublish_EmptyReportMakesNoCalls(t *testing.T) {
	client, writer, publisher := newPublisherFixture()
	client.resolveErr = errors.New("must not be called")

	result, err := publisher.Publish(context.Background(), "owner/repo", 42, nil)

	require.NoError(t, err)
	assert.Equal(t, PublishResult{}, result)
	assert.Empty(t, writer.created)
}

func TestPublish_WriteFailureAborts(t *testing.T) {
	_, writer, publisher := newPublisherFixture()
	writer.failAfter = 2
	writer.err = errors.New("boom")

	result, err := publisher.Publish(context.Background(), "owner/repo", 42, []model.Defect{
		defect("f1", "a", "x", "a.py", 1),
		defect("f2", "b", "y", "a.py", 2),
		defect("f3", "c", "z", "a.py", 3),
	})

	require.Error(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Len(t, writer.created, 1, "comments created before the failure stay")
}

func TestPublish_FetchErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *mockGitHubClient)
	}{
		{"resolve", func(c *mockGitHubClient) { c.resolveErr = errors.New("no repo") }},
		{"pr", func(c *mockGitHubClient) { c.prErr = model.ErrMalformedResponse }},
		{"comments", func(c *mockGitHubClient) { c.commentsErr = errors.New("no comments") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, writer, publisher := newPublisherFixture()
			tt.setup(client)

			_, err := publisher.Publish(context.Background(), "owner/repo", 42, []model.Defect{
				defect("f1", "rule/x", "bad thing", "a.py", 10),
			})

			require.Error(t, err)
			assert.Empty(t, writer.created)
		})
	}
}

func TestPublish_DryRunWriter(t *testing.T) {
	client := &mockGitHubClient{
		repo: testRepo(),
		pr:   &model.PullRequest{Number: 42, HeadSHA: "head123"},
	}
	publisher := NewDefectPublisher(client, NewDryRunWriter(discardLogger()), discardLogger())

	result, err := publisher.Publish(context.Background(), "owner/repo", 42, []model.Defect{
		defect("f1", "rule/x", "bad thing", "a.py", 10),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
}
