package services

import (
	"errors"

	"rolereader/resume-matcher/internal/repositories"
)

var (
	ErrComparisonNotFound     = repositories.ErrComparisonNotFound
	ErrNLPNotReady            = errors.New("NLP service not initialized")
	ErrSemanticSearchDisabled = errors.New("semantic search is not configured")
)

// ValidationError marks input the caller has to fix before retrying.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
