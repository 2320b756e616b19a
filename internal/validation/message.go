package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxMessageLength mirrors the bound enforced by the Message model.
const MaxMessageLength = 140

// ValidateMessageText checks that message text is non-empty and within the length bound.
func ValidateMessageText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("message text is required")
	}

	if utf8.RuneCountInString(text) > MaxMessageLength {
		return fmt.Errorf("message text must not exceed %d characters", MaxMessageLength)
	}

	return nil
}
