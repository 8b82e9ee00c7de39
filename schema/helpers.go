package schema

import (
	"strings"
	"unicode"
)

// Slugify turns free text into a stable lowercase identifier,
// e.g. "No secrets in code!" becomes "no-secrets-in-code".
func Slugify(text string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// RuleIDOf returns the finding's RuleID, falling back to a slug of its title.
func RuleIDOf(f Finding) string {
	if f.RuleID != "" {
		return f.RuleID
	}
	if slug := Slugify(f.Title); slug != "" {
		return slug
	}
	return ToolName
}

// FlattenLine replaces line breaks with spaces so text stays on one Markdown line.
func FlattenLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
}
