package models

import "github.com/pkg/errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrSavedJobsLimit      = errors.New("saved jobs limit reached (100 per user)")
	ErrDocumentLimit       = errors.New("document limit reached (2 per type per job)")
	ErrDuplicateSavedJob   = errors.New("job is already saved")
	ErrDuplicateCareerItem = errors.New("career item already exists")
)
