package util

import (
	"regexp"
	"strings"
)

var (
	nonSlug = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify turns a display name into a URL slug: "Gaming Laptops" -> "gaming-laptops".
func Slugify(s string) string {
	return normalize(s, "-")
}

// KeyFromName turns an English name into a characteristic key:
// "Screen Size (in)" -> "screen_size_in".
func KeyFromName(s string) string {
	return normalize(s, "_")
}

func normalize(s, sep string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlug.ReplaceAllString(s, sep)
	return strings.Trim(s, sep)
}

// SplitCSV splits a comma-separated query value, dropping blanks.
func SplitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
