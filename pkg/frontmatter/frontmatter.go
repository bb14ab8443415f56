// Package frontmatter builds the YAML metadata header prefixed to the
// archived document.
//
// Emission is deliberately manual: the yaml.v3 emitter folds scalars
// longer than 80 columns onto continuation lines, and the frontmatter
// format requires every field value on a single line so downstream
// tooling can grep for it. Values are double-quoted with Go escaping,
// which is a valid subset of YAML double-quoted style; the tests parse
// the block back with yaml.v3 to hold the two sides together.
package frontmatter

import (
	"strconv"
	"strings"
	"time"

	"github.com/dtnitsch/textpack-archiver/models"
	"github.com/dtnitsch/textpack-archiver/pkg/textstats"
)

// Build renders the frontmatter block for the given page metadata.
// Required fields (title, url, word_count, archived_at) always appear;
// optional metadata is included only when present. The block is wrapped
// in "---" delimiter lines.
func Build(meta models.PageMetadata, textContent string, now time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")

	writeString(&b, "title", meta.Title)
	switch len(meta.Authors) {
	case 0:
	case 1:
		writeString(&b, "author", meta.Authors[0])
	default:
		writeList(&b, "author", meta.Authors)
	}
	if meta.Date != "" {
		writeString(&b, "date", meta.Date)
	}
	writeString(&b, "url", meta.URL)
	if meta.CanonicalURL != "" {
		writeString(&b, "canonical_url", meta.CanonicalURL)
	}
	if meta.SiteName != "" {
		writeString(&b, "site_name", meta.SiteName)
	}
	if meta.Language != "" {
		writeString(&b, "language", meta.Language)
	}
	if meta.Description != "" {
		writeString(&b, "description", meta.Description)
	}
	if meta.Excerpt != "" {
		writeString(&b, "excerpt", meta.Excerpt)
	}
	if len(meta.Keywords) > 0 {
		writeList(&b, "keywords", meta.Keywords)
	}
	if meta.OGImage != "" {
		writeString(&b, "og_image", meta.OGImage)
	}
	if meta.OGType != "" {
		writeString(&b, "og_type", meta.OGType)
	}

	b.WriteString("word_count: " + strconv.Itoa(textstats.WordCount(textContent)) + "\n")
	writeString(&b, "archived_at", now.UTC().Format(time.RFC3339))

	b.WriteString("---\n")
	return b.String()
}

func writeString(b *strings.Builder, key, value string) {
	b.WriteString(key + ": " + strconv.Quote(value) + "\n")
}

func writeList(b *strings.Builder, key string, values []string) {
	b.WriteString(key + ":\n")
	for _, v := range values {
		b.WriteString("  - " + strconv.Quote(v) + "\n")
	}
}
