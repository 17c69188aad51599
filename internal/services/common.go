package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studiocrm/internal/repositories"
	"studiocrm/pkg/utils"
)

// translateErr passes domain errors through and classifies the rest.
func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case utils.IsDomainError(err):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", utils.ErrConflict, err)
	default:
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
}

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", utils.ErrValidation, fmt.Sprintf(format, args...))
}

func parseUUID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, validationErr("%s must be a valid UUID", field)
	}
	return id, nil
}

func parseOptionalUUID(field, raw string) (*uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := parseUUID(field, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseOrdering turns "-a,b" into orderings, rejecting columns outside allowed.
func parseOrdering(raw string, allowed map[string]bool, fallback []repositories.Ordering) ([]repositories.Ordering, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}

	var out []repositories.Ordering
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		desc := strings.HasPrefix(part, "-")
		column := strings.TrimPrefix(part, "-")
		if !allowed[column] {
			return nil, validationErr("cannot order by %q", column)
		}
		out = append(out, repositories.Ordering{Column: column, Desc: desc})
	}
	if len(out) == 0 {
		return fallback, nil
	}
	return out, nil
}

// splitList splits a comma separated query value, dropping blanks.
func splitList(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
