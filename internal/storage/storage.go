package storage

import "errors"

var (
	ErrSequenceExists    = errors.New("video sequence exists")
	ErrSequenceNotFound  = errors.New("video sequence not found")
	ErrVideoNotFound     = errors.New("video not found")
	ErrReferenceNotFound = errors.New("video reference not found")
)
