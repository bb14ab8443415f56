package common

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)
	urlPattern          = regexp.MustCompile(`^https?://[a-zA-Z0-9][-a-zA-Z0-9.]*[a-zA-Z0-9](/[^\s]*)?$`)
)

// SanitizeURL cleans up common copy-paste damage: surrounding
// whitespace, markdown link syntax, and stray punctuation left over
// from prose.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	for _, suffix := range []string{",", ".", ")", "}", "]", "\"", "'", ">", ";"} {
		cleaned = strings.TrimSuffix(cleaned, suffix)
	}
	for _, prefix := range []string{"(", "[", "<", "\"", "'"} {
		cleaned = strings.TrimPrefix(cleaned, prefix)
	}

	return strings.TrimSpace(cleaned)
}

// SanitizeAndValidateURLs sanitizes every URL and splits them into
// usable and rejected lists. Rejected entries keep their original form
// so error messages show what the user actually typed.
func SanitizeAndValidateURLs(urls []string) ([]string, []string) {
	sanitized := make([]string, 0, len(urls))
	var invalid []string

	for _, rawURL := range urls {
		cleaned := SanitizeURL(rawURL)

		if cleaned == "" || strings.Contains(cleaned, " ") || !urlPattern.MatchString(cleaned) {
			invalid = append(invalid, rawURL)
			continue
		}

		parsed, err := url.Parse(cleaned)
		if err != nil || parsed.Host == "" {
			invalid = append(invalid, rawURL)
			continue
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			invalid = append(invalid, rawURL)
			continue
		}
		if strings.ContainsAny(parsed.Host, "{}[]<>\"'") {
			invalid = append(invalid, rawURL)
			continue
		}

		sanitized = append(sanitized, cleaned)
	}

	return sanitized, invalid
}
