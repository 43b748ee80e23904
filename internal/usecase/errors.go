package usecase

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrCandidateNotFound  = errors.New("candidate not found")
	ErrJobNotFound        = errors.New("job not found")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrPublishUnavailable = errors.New("event publishing unavailable")
	ErrInternal           = errors.New("internal error")
)
