package metadata

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return doc
}

func TestExtractOpenGraphFirst(t *testing.T) {
	doc := parseDoc(t, `<html><head>
		<title>Plain Title</title>
		<meta property="og:title" content="OG Title">
		<meta property="og:description" content="OG description">
		<meta name="description" content="Meta description">
		<meta property="og:site_name" content="Example Site">
		<meta property="og:image" content="https://example.com/og.jpg">
		<meta property="og:type" content="article">
		<link rel="canonical" href="https://example.com/canonical">
	</head></html>`)

	meta := Extract(doc, "https://example.com/post", "", nil)

	if meta.Title != "OG Title" {
		t.Errorf("title = %q, want %q", meta.Title, "OG Title")
	}
	if meta.Description != "OG description" {
		t.Errorf("description = %q, want og:description preferred", meta.Description)
	}
	if meta.SiteName != "Example Site" {
		t.Errorf("site name = %q", meta.SiteName)
	}
	if meta.OGImage != "https://example.com/og.jpg" {
		t.Errorf("og image = %q", meta.OGImage)
	}
	if meta.OGType != "article" {
		t.Errorf("og type = %q", meta.OGType)
	}
	if meta.CanonicalURL != "https://example.com/canonical" {
		t.Errorf("canonical = %q", meta.CanonicalURL)
	}
	if meta.URL != "https://example.com/post" {
		t.Errorf("url = %q", meta.URL)
	}
}

func TestExtractTitleFallsBackToTitleTag(t *testing.T) {
	doc := parseDoc(t, `<html><head><title>  Plain Title  </title></head></html>`)

	meta := Extract(doc, "https://example.com", "", nil)
	if meta.Title != "Plain Title" {
		t.Errorf("title = %q, want %q", meta.Title, "Plain Title")
	}
}

func TestExtractAuthorCascade(t *testing.T) {
	doc := parseDoc(t, `<html><head>
		<meta name="author" content="Meta Author">
		<script type="application/ld+json">{"author": {"name": "LD Author"}}</script>
	</head></html>`)

	meta := Extract(doc, "https://example.com", "", nil)
	if len(meta.Authors) != 1 || meta.Authors[0] != "Meta Author" {
		t.Errorf("authors = %v, want meta author to win", meta.Authors)
	}
}

func TestExtractAuthorsFromJSONLD(t *testing.T) {
	doc := parseDoc(t, `<html><head>
		<script type="application/ld+json">{"author": [{"name": "First Author"}, "Second Author"]}</script>
	</head></html>`)

	meta := Extract(doc, "https://example.com", "", nil)
	want := []string{"First Author", "Second Author"}
	if len(meta.Authors) != len(want) {
		t.Fatalf("authors = %v, want %v", meta.Authors, want)
	}
	for i := range want {
		if meta.Authors[i] != want[i] {
			t.Errorf("authors[%d] = %q, want %q", i, meta.Authors[i], want[i])
		}
	}
}

func TestExtractDateNormalized(t *testing.T) {
	doc := parseDoc(t, `<html><head>
		<meta property="article:published_time" content="January 15, 2026">
	</head></html>`)

	meta := Extract(doc, "https://example.com", "", nil)
	if meta.Date != "2026-01-15T00:00:00Z" {
		t.Errorf("date = %q, want normalized ISO-8601", meta.Date)
	}
}

func TestExtractDateSkipsInvalid(t *testing.T) {
	doc := parseDoc(t, `<html><head>
		<meta property="article:published_time" content="not a date at all,,">
		<meta name="date" content="2026-02-01T08:00:00Z">
	</head></html>`)

	meta := Extract(doc, "https://example.com", "", nil)
	if meta.Date != "2026-02-01T08:00:00Z" {
		t.Errorf("date = %q, want fallback past the invalid value", meta.Date)
	}
}

func TestExtractDateFromTimeElement(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<time datetime="2026-03-10T12:30:00Z">March 10</time>
	</body></html>`)

	meta := Extract(doc, "https://example.com", "", nil)
	if meta.Date != "2026-03-10T12:30:00Z" {
		t.Errorf("date = %q", meta.Date)
	}
}

func TestExtractLanguageFromHTMLLang(t *testing.T) {
	doc := parseDoc(t, `<html lang="de"><head></head></html>`)

	meta := Extract(doc, "https://example.com", "", nil)
	if meta.Language != "de" {
		t.Errorf("language = %q, want %q", meta.Language, "de")
	}
}

func TestExtractLanguageDetected(t *testing.T) {
	text := strings.Repeat("The quick brown fox jumps over the lazy dog near the riverbank. ", 8)
	doc := parseDoc(t, `<html><head></head></html>`)

	meta := Extract(doc, "https://example.com", text, nil)
	if meta.Language != "en" {
		t.Errorf("language = %q, want %q", meta.Language, "en")
	}
}

func TestExtractKeywords(t *testing.T) {
	doc := parseDoc(t, `<html><head>
		<meta name="keywords" content="go, systems,  , programming">
	</head></html>`)

	meta := Extract(doc, "https://example.com", "", nil)
	want := []string{"go", "systems", "programming"}
	if len(meta.Keywords) != len(want) {
		t.Fatalf("keywords = %v, want %v", meta.Keywords, want)
	}
	for i := range want {
		if meta.Keywords[i] != want[i] {
			t.Errorf("keywords[%d] = %q, want %q", i, meta.Keywords[i], want[i])
		}
	}
}

func TestExtractMissingFieldsStayEmpty(t *testing.T) {
	doc := parseDoc(t, `<html><head><title>Bare</title></head></html>`)

	meta := Extract(doc, "https://example.com", "", nil)
	if meta.Date != "" || meta.SiteName != "" || meta.OGImage != "" || meta.Keywords != nil {
		t.Errorf("expected zero values for absent fields, got %+v", meta)
	}
}

func TestExtractMalformedJSONLDIgnored(t *testing.T) {
	doc := parseDoc(t, `<html><head>
		<script type="application/ld+json">{not valid json</script>
	</head></html>`)

	meta := Extract(doc, "https://example.com", "", nil)
	if meta.Authors != nil {
		t.Errorf("authors = %v, want nil for malformed JSON-LD", meta.Authors)
	}
}
