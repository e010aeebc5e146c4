package validation

import (
	"fmt"
	"strings"
)

// ValidateGroupName validates a group name's length and content.
func ValidateGroupName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("group name is required")
	}
	if len(trimmed) < 3 {
		return fmt.Errorf("group name must be at least 3 characters long")
	}
	if len(trimmed) > 120 {
		return fmt.Errorf("group name must not exceed 120 characters")
	}
	return nil
}
