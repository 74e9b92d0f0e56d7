package model

// Repository identifies a GitHub repository resolved from a project
// identifier (full name or numeric ID).
type Repository struct {
	ID       int64
	FullName string
	Owner    string
	Name     string
}
