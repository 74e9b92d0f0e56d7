package model

import "fmt"

// CommentPayload is the inline comment derived from one defect.
type CommentPayload struct {
	Body     string
	Path     string
	Line     int // Sent to GitHub as the comment position.
	CommitID string
}

// NewCommentPayload builds the comment for a defect, attached to commitID.
func NewCommentPayload(d Defect, commitID string) CommentPayload {
	return CommentPayload{
		Body:     CommentBody(d),
		Path:     d.Location.Path,
		Line:     d.Line(),
		CommitID: commitID,
	}
}

// CommentBody renders "<fingerprint>: <check_name>\n\n<description>".
func CommentBody(d Defect) string {
	return fmt.Sprintf("%s: %s\n\n%s", d.Fingerprint, d.CheckName, d.Description)
}

// DiscussionIndex maps "path:line" to the set of comment bodies already
// present at that location.
type DiscussionIndex map[string]map[string]struct{}

// NewDiscussionIndex indexes the inline comments among comments. Comments
// without a diff hunk are ignored.
func NewDiscussionIndex(comments []ReviewComment) DiscussionIndex {
	idx := make(DiscussionIndex)
	for _, c := range comments {
		if !c.IsInline() {
			continue
		}
		idx.Add(c.Path, c.Position, c.Body)
	}
	return idx
}

// Add records body at path:line.
func (idx DiscussionIndex) Add(path string, line int, body string) {
	key := locationKey(path, line)
	bodies, ok := idx[key]
	if !ok {
		bodies = make(map[string]struct{})
		idx[key] = bodies
	}
	bodies[body] = struct{}{}
}

// Contains reports whether an identical body already exists at path:line.
func (idx DiscussionIndex) Contains(path string, line int, body string) bool {
	_, ok := idx[locationKey(path, line)][body]
	return ok
}

func locationKey(path string, line int) string {
	return fmt.Sprintf("%s:%d", path, line)
}
