package parser

import (
	"regexp"
	"strings"
)

var (
	multiSpaceRE = regexp.MustCompile(`\s+`)
	numberRE     = regexp.MustCompile(`^[+-]?\d+$`)
)

func normaliseInput(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	var b strings.Builder
	lastSpace := false
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-' || r == '_' || r == '/' || r == '\'' {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(multiSpaceRE.ReplaceAllString(b.String(), " "))
}

func tokenise(normalised string) []string {
	if strings.TrimSpace(normalised) == "" {
		return nil
	}
	return strings.Fields(normalised)
}

// looksNumeric is checked on the raw text so a leading minus survives and
// reaches answer validation.
func looksNumeric(raw string) bool {
	return numberRE.MatchString(strings.TrimSpace(raw))
}

func isPronoun(token string) bool {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "it", "that", "this", "one":
		return true
	default:
		return false
	}
}
