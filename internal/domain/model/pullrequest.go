package model

// PullRequest is the subset of a GitHub pull request both bots need.
type PullRequest struct {
	Number       int
	RepoFullName string
	HeadSHA      string // Most recent commit of the PR; review comments attach to it.
	BaseSHA      string
	Labels       []string
}

// DiffFile is one entry of a pull request's changed-file list.
type DiffFile struct {
	Filename string
	Status   string // "added", "modified", "removed", "renamed", ...
	SHA      string // Blob SHA of the file at head.
}
