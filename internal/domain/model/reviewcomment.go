package model

// ReviewComment is an existing comment on a pull request. Inline comments
// carry a DiffHunk; general discussion comments do not.
type ReviewComment struct {
	ID       int64
	Body     string
	Path     string
	Position int // Line position the comment was created at.
	Line     int
	DiffHunk string
	CommitID string
}

// IsInline reports whether the comment is anchored to a diff hunk.
func (c ReviewComment) IsInline() bool {
	return c.DiffHunk != ""
}
