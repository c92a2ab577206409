package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a referenced item or comment does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports the required fields that were missing or invalid.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid or missing fields: %s", strings.Join(e.Fields, ", "))
}
