// Package bundle assembles the final archive file and derives its name.
package bundle

import (
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	maxSlugLength = 80
	fileExtension = ".textpack"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// stripMarks decomposes to NFD, drops combining marks, and recomposes,
// so "Café" slugs as "cafe" rather than losing the letter.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify lower-cases, strips diacritics, and collapses every run of
// non-alphanumeric characters into a single hyphen, truncating to 80
// characters. Titles that leave nothing behind (e.g. entirely non-Latin
// scripts) fall back to the supplied default, which may be empty.
func Slugify(title, fallback string) string {
	normalized, _, err := transform.String(stripMarks, title)
	if err != nil {
		normalized = title
	}

	slug := strings.ToLower(normalized)
	slug = nonAlnum.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}

	if slug == "" {
		return fallback
	}
	return slug
}

// DomainLabel derives a short label from the source URL's host: the www
// prefix is stripped, the TLD dropped, and remaining labels joined with
// hyphens ("en.wikipedia.org" becomes "en-wikipedia"). Returns "" when
// the URL is unusable.
func DomainLabel(sourceURL string) string {
	u, err := url.Parse(sourceURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	parts := strings.Split(host, ".")
	if len(parts) > 2 {
		return strings.Join(parts[:len(parts)-1], "-")
	}
	return parts[0]
}

// Filename builds the archive filename: {date}-{domain-}{slug}.textpack.
// An empty date means today; a full ISO-8601 timestamp is reduced to its
// date part. The domain label is omitted when sourceURL yields none.
func Filename(title, date, sourceURL, fallback string) string {
	datePrefix := date
	if datePrefix == "" {
		datePrefix = time.Now().UTC().Format("2006-01-02")
	}
	if i := strings.Index(datePrefix, "T"); i > 0 {
		datePrefix = datePrefix[:i]
	}

	var middle []string
	if domain := DomainLabel(sourceURL); domain != "" {
		middle = append(middle, domain)
	}
	if slug := Slugify(title, fallback); slug != "" {
		middle = append(middle, slug)
	}

	return datePrefix + "-" + strings.Join(middle, "-") + fileExtension
}
