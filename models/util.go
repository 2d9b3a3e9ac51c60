package models

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateID generates a unique ID with the given prefix
// Example: GenerateID("scenario") -> "scenario:uuid-here"
func GenerateID(prefix string) string {
	return fmt.Sprintf("%s:%s", prefix, uuid.New().String())
}

// IsUUID reports whether s parses as a UUID. Project and template references
// that look like UUIDs are passed to the server verbatim instead of being
// resolved by name.
func IsUUID(s string) bool {
	return uuid.Validate(s) == nil
}
