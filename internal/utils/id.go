package utils

import (
	"github.com/google/uuid"
)

// NewID returns a record id of the form <prefix>-<uuid>.
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
