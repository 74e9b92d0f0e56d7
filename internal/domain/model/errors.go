package model

import "errors"

// ErrMalformedResponse is returned (wrapped) when a GitHub API response is
// missing a field the bots depend on.
var ErrMalformedResponse = errors.New("malformed response")

// ErrInvalidReport is returned (wrapped) when a Code Climate report cannot be
// decoded or a defect lacks a required field.
var ErrInvalidReport = errors.New("invalid report")
