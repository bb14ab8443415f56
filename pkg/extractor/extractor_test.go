package extractor

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseFragment(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return doc
}

func srcOf(t *testing.T, doc *goquery.Document) string {
	t.Helper()
	src, _ := doc.Find("img").First().Attr("src")
	return src
}

func TestResolveLazyImagesDataSrc(t *testing.T) {
	doc := parseFragment(t, `<img src="data:image/gif;base64,R0lGOD" data-src="https://example.com/real.jpg">`)
	ResolveLazyImages(doc)

	if got := srcOf(t, doc); got != "https://example.com/real.jpg" {
		t.Errorf("src = %q, want the data-src value", got)
	}
}

func TestResolveLazyImagesAttrPriority(t *testing.T) {
	doc := parseFragment(t, `<img data-lazy-src="https://example.com/lazy.jpg" data-original="https://example.com/orig.jpg">`)
	ResolveLazyImages(doc)

	if got := srcOf(t, doc); got != "https://example.com/lazy.jpg" {
		t.Errorf("src = %q, want data-lazy-src to win over data-original", got)
	}
}

func TestResolveLazyImagesSrcsetWidth(t *testing.T) {
	doc := parseFragment(t, `<img srcset="https://example.com/s.jpg 320w, https://example.com/l.jpg 1280w, https://example.com/m.jpg 640w">`)
	ResolveLazyImages(doc)

	if got := srcOf(t, doc); got != "https://example.com/l.jpg" {
		t.Errorf("src = %q, want the widest srcset candidate", got)
	}
}

func TestResolveLazyImagesSrcsetDensity(t *testing.T) {
	doc := parseFragment(t, `<img srcset="https://example.com/1x.jpg 1x, https://example.com/2x.jpg 2x">`)
	ResolveLazyImages(doc)

	if got := srcOf(t, doc); got != "https://example.com/2x.jpg" {
		t.Errorf("src = %q, want the densest srcset candidate", got)
	}
}

func TestResolveLazyImagesPicture(t *testing.T) {
	doc := parseFragment(t, `<picture>
		<source srcset="https://example.com/wide.webp 1200w">
		<img src="https://example.com/fallback.jpg">
	</picture>`)
	ResolveLazyImages(doc)

	if got := srcOf(t, doc); got != "https://example.com/wide.webp" {
		t.Errorf("src = %q, want the picture source hoisted", got)
	}
}

func TestResolveLazyImagesKeepsPlainSrc(t *testing.T) {
	doc := parseFragment(t, `<img src="https://example.com/plain.jpg">`)
	ResolveLazyImages(doc)

	if got := srcOf(t, doc); got != "https://example.com/plain.jpg" {
		t.Errorf("src = %q, want untouched", got)
	}
}

func TestExtractArticle(t *testing.T) {
	paragraph := strings.Repeat("The quick brown fox jumps over the lazy dog and keeps on running through the long field. ", 10)
	html := `<html><head><title>Field Notes</title></head><body>
		<nav><a href="/">Home</a></nav>
		<article>
			<h1>Field Notes</h1>
			<p>` + paragraph + `</p>
			<p>` + paragraph + `</p>
			<p>` + paragraph + `</p>
		</article>
	</body></html>`

	article, err := Extract(parseFragment(t, html), "https://example.com/field-notes", nil)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if article.Title != "Field Notes" {
		t.Errorf("title = %q, want %q", article.Title, "Field Notes")
	}
	if !strings.Contains(article.TextContent, "quick brown fox") {
		t.Error("text content missing article body")
	}
	if article.Length == 0 {
		t.Error("length = 0, want > 0")
	}
}

func TestExtractResolvesLazyImagesFirst(t *testing.T) {
	paragraph := strings.Repeat("Plenty of prose so the extractor keeps this section as the main article content. ", 12)
	html := `<html><body><article>
		<p>` + paragraph + `</p>
		<img data-src="https://example.com/hero.jpg" alt="Hero">
		<p>` + paragraph + `</p>
	</article></body></html>`

	doc := parseFragment(t, html)

	article, err := Extract(doc, "https://example.com/post", nil)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(article.Content, "https://example.com/hero.jpg") {
		t.Error("lazy image URL not promoted into extracted content")
	}
	if got := srcOf(t, doc); got != "https://example.com/hero.jpg" {
		t.Errorf("document src = %q, want resolved in place", got)
	}
}

func TestExtractEmptyPage(t *testing.T) {
	_, err := Extract(parseFragment(t, "<html><body></body></html>"), "https://example.com/empty", nil)
	if !errors.Is(err, ErrNoContent) {
		t.Errorf("error = %v, want ErrNoContent", err)
	}
}

func TestExtractBadURL(t *testing.T) {
	_, err := Extract(parseFragment(t, "<html></html>"), "://not-a-url", nil)
	if err == nil {
		t.Fatal("expected error for malformed url")
	}
}
