package validation

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	MinWorkers = 1
	MaxWorkers = 20
)

func ValidateWorkerCount(workers int) error {
	if workers < MinWorkers || workers > MaxWorkers {
		return fmt.Errorf("worker count must be between %d and %d, got %d", MinWorkers, MaxWorkers, workers)
	}
	return nil
}

func ParseGUID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid GUID %q: %w", value, err)
	}
	return id, nil
}

func ValidateNonEmptyString(fieldName, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

func ValidateResourceKind(kind string) error {
	validKinds := map[string]bool{
		"project":      true,
		"loin":         true,
		"domain_model": true,
		"context":      true,
		"template":     true,
	}
	if !validKinds[kind] {
		return fmt.Errorf("invalid resource kind: %s (must be one of: project, loin, domain_model, context, template)", kind)
	}
	return nil
}
