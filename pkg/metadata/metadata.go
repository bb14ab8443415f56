// Package metadata pulls document metadata out of a page's head:
// Open Graph tags first, then JSON-LD, then plain meta tags.
package metadata

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/pemistahl/lingua-go"

	"github.com/dtnitsch/textpack-archiver/models"
)

// languageSampleLength bounds how much text the language detector sees.
const languageSampleLength = 4000

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// Extract runs the metadata cascade over a parsed page. textContent is
// the extracted article text, used only as a language detection fallback
// when neither the html lang attribute nor og:locale is present.
func Extract(doc *goquery.Document, rawURL, textContent string, logger *slog.Logger) models.PageMetadata {
	if logger == nil {
		logger = slog.Default()
	}

	jsonLD := parseJSONLD(doc)

	return models.PageMetadata{
		Title:        extractTitle(doc),
		Authors:      extractAuthors(doc, jsonLD),
		Date:         extractDate(doc, jsonLD, logger),
		URL:          rawURL,
		CanonicalURL: doc.Find(`link[rel="canonical"]`).First().AttrOr("href", ""),
		SiteName:     firstOf(metaContent(doc, "og:site_name"), metaContent(doc, "application-name")),
		Language:     extractLanguage(doc, textContent),
		Description:  firstOf(metaContent(doc, "og:description"), metaContent(doc, "description")),
		Keywords:     extractKeywords(doc),
		OGImage:      metaContent(doc, "og:image"),
		OGType:       metaContent(doc, "og:type"),
	}
}

// metaContent reads a meta tag's content, matching property= first and
// name= second.
func metaContent(doc *goquery.Document, property string) string {
	sel := doc.Find(`meta[property="` + property + `"]`).First()
	if sel.Length() == 0 {
		sel = doc.Find(`meta[name="` + property + `"]`).First()
	}
	return strings.TrimSpace(sel.AttrOr("content", ""))
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseJSONLD(doc *goquery.Document) map[string]any {
	script := doc.Find(`script[type="application/ld+json"]`).First()
	if script.Length() == 0 {
		return nil
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(script.Text()), &payload); err != nil {
		return nil
	}
	return payload
}

func extractTitle(doc *goquery.Document) string {
	if title := metaContent(doc, "og:title"); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func extractAuthors(doc *goquery.Document, jsonLD map[string]any) []string {
	if author := metaContent(doc, "author"); author != "" {
		return []string{author}
	}
	if author := metaContent(doc, "article:author"); author != "" {
		return []string{author}
	}
	if jsonLD == nil {
		return nil
	}

	switch author := jsonLD["author"].(type) {
	case string:
		return []string{author}
	case map[string]any:
		if name, ok := author["name"].(string); ok && name != "" {
			return []string{name}
		}
	case []any:
		var names []string
		for _, entry := range author {
			switch v := entry.(type) {
			case string:
				names = append(names, v)
			case map[string]any:
				if name, ok := v["name"].(string); ok && name != "" {
					names = append(names, name)
				}
			}
		}
		return names
	}
	return nil
}

// extractDate tries the publication date sources in priority order and
// normalizes the first parseable one to UTC ISO-8601. Unparseable values
// are logged and skipped rather than carried through raw.
func extractDate(doc *goquery.Document, jsonLD map[string]any, logger *slog.Logger) string {
	sources := []string{
		metaContent(doc, "article:published_time"),
		metaContent(doc, "date"),
		doc.Find("time[datetime]").First().AttrOr("datetime", ""),
	}
	if jsonLD != nil {
		if published, ok := jsonLD["datePublished"].(string); ok {
			sources = append(sources, published)
		}
	}

	for _, raw := range sources {
		if raw == "" {
			continue
		}
		parsed, err := dateparse.ParseAny(raw)
		if err != nil {
			logger.Warn("invalid date value", "raw", raw)
			continue
		}
		return parsed.UTC().Format(time.RFC3339)
	}
	return ""
}

func extractLanguage(doc *goquery.Document, textContent string) string {
	if lang := doc.Find("html").First().AttrOr("lang", ""); lang != "" {
		return lang
	}
	if locale := metaContent(doc, "og:locale"); locale != "" {
		return locale
	}
	return detectLanguage(textContent)
}

// detectLanguage guesses the language from the article text. The
// detector is built once; low accuracy mode keeps its model footprint
// small, which is plenty for whole-article samples.
func detectLanguage(textContent string) string {
	sample := strings.TrimSpace(textContent)
	if sample == "" {
		return ""
	}
	if len(sample) > languageSampleLength {
		sample = sample[:languageSampleLength]
	}

	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			WithLowAccuracyMode().
			Build()
	})

	lang, ok := detector.DetectLanguageOf(sample)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}

func extractKeywords(doc *goquery.Document) []string {
	raw := metaContent(doc, "keywords")
	if raw == "" {
		return nil
	}

	var keywords []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
