package domain

import (
	"fmt"
	"sort"
	"strings"

	"cleanops/internal/pkg/validator"
)

// ValidationError reports every field of a record that failed its schema,
// not only the first. It is returned as a value, never panicked.
type ValidationError struct {
	Entity string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s validation failed: %s", e.Entity, strings.Join(parts, "; "))
}

// TransitionError reports a status edge absent from the entity's
// transition table. The entity is left unchanged.
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: no transition %s -> %s", e.Entity, e.From, e.To)
}

func validateEntity(entity string, v any, extra map[string]string) *ValidationError {
	fields := validator.Validate(v)
	if fields == nil {
		fields = make(map[string]string, len(extra))
	}
	for k, msg := range extra {
		fields[k] = msg
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Entity: entity, Fields: fields}
}
