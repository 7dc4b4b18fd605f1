package game

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAnswer validates typed numeric-entry input. Zero is allowed since
// "n × 0" questions exist; negatives and non-numbers are not.
func ParseAnswer(text string) (int, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, fmt.Errorf("empty input: %w", ErrInvalidAnswer)
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", trimmed, ErrInvalidAnswer)
	}
	if n < 0 {
		return 0, fmt.Errorf("%d: %w", n, ErrInvalidAnswer)
	}
	return n, nil
}
