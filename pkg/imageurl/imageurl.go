// Package imageurl provides URL helpers for deriving local asset names
// and recognizing image URLs.
package imageurl

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	extPattern      = regexp.MustCompile(`^\.[a-z0-9]+$`)
	imageExtPattern = regexp.MustCompile(`(?i)\.(jpe?g|png|gif|webp|avif|svg|bmp|tiff?)$`)
	invalidChars    = regexp.MustCompile(`[^a-z0-9._-]+`)
	hyphenRuns      = regexp.MustCompile(`-+`)
)

// ExtractExtension derives a file extension from the URL's path, falling
// back to ".jpg" when the URL is malformed or its last path component has
// no recognizable extension.
func ExtractExtension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() {
		return ".jpg"
	}

	pathname := u.EscapedPath()
	lastDot := strings.LastIndex(pathname, ".")
	if lastDot != -1 {
		ext := strings.ToLower(pathname[lastDot:])
		if extPattern.MatchString(ext) {
			return ext
		}
	}
	return ".jpg"
}

// ExtractBasename derives a sanitized base name from the last non-empty
// path segment of the URL. Returns "" when nothing usable remains, which
// callers treat as "use the counter fallback".
func ExtractBasename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() {
		return ""
	}

	pathname := u.EscapedPath()
	if decoded, err := url.PathUnescape(pathname); err == nil {
		pathname = decoded
	}

	segments := strings.Split(pathname, "/")
	last := ""
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			last = segments[i]
			break
		}
	}

	// Keep dotfiles intact: only strip an extension after a non-leading dot.
	if lastDot := strings.LastIndex(last, "."); lastDot > 0 {
		last = last[:lastDot]
	}

	sanitized := strings.ToLower(last)
	sanitized = invalidChars.ReplaceAllString(sanitized, "-")
	sanitized = hyphenRuns.ReplaceAllString(sanitized, "-")
	sanitized = strings.Trim(sanitized, "-")
	return sanitized
}

// IsImageURL reports whether the URL's path ends in a known image extension.
func IsImageURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() {
		return false
	}
	return imageExtPattern.MatchString(u.EscapedPath())
}

// Resolve resolves a possibly relative src against a base URL, returning
// "" when either side fails to parse.
func Resolve(src, baseURL string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	resolved, err := base.Parse(src)
	if err != nil || !resolved.IsAbs() {
		return ""
	}
	return resolved.String()
}
