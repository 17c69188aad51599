package utils

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("resource not found")
	ErrCreatorNotFound     = errors.New("creator not found")
	ErrCredentialNotFound  = errors.New("credential not found")
	ErrMilestoneNotFound   = errors.New("milestone not found")
	ErrAuditLogNotFound    = errors.New("audit log entry not found")
	ErrDeliverableNotFound = errors.New("deliverable not found")
	ErrUserNotFound        = errors.New("user not found")

	ErrConflict            = errors.New("conflict")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrDuplicateCredential = errors.New("credential already exists for this platform and account")
	ErrInvalidTransition   = errors.New("invalid status transition")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	ErrAuditWrite       = errors.New("audit log write failed")
	ErrAuditImmutable   = errors.New("audit log entries are immutable")
	ErrGenerationFailed = errors.New("deliverable generation failed")
	ErrDatabaseError    = errors.New("database error")

	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
)

// notFoundErrors are all reported as 404.
var notFoundErrors = []error{
	ErrNotFound,
	ErrCreatorNotFound,
	ErrCredentialNotFound,
	ErrMilestoneNotFound,
	ErrAuditLogNotFound,
	ErrDeliverableNotFound,
	ErrUserNotFound,
}

var conflictErrors = []error{
	ErrConflict,
	ErrEmailAlreadyExists,
	ErrDuplicateCredential,
	ErrInvalidTransition,
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsDomainError reports whether err already carries one of the sentinels
// above, so callers should pass it through instead of wrapping it.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidPage) ||
		errors.Is(err, ErrInvalidPageSize) ||
		isAny(err, notFoundErrors) ||
		isAny(err, conflictErrors) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrAuditWrite) ||
		errors.Is(err, ErrAuditImmutable) ||
		errors.Is(err, ErrGenerationFailed) ||
		errors.Is(err, ErrDatabaseError)
}
