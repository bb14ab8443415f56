// Package extractor distills a web page down to its main article content.
package extractor

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/dtnitsch/textpack-archiver/models"
)

// ErrNoContent reports a page the content extractor produced nothing for,
// such as a login wall or an index page with no article body.
var ErrNoContent = errors.New("readability could not extract article content from this page")

var imgTagPattern = regexp.MustCompile(`(?i)<img[\s>]`)

// Extract resolves lazy-loaded images in doc and then runs readability
// over the page. The document is mutated in place so callers see the
// resolved sources afterwards. Returns ErrNoContent when extraction
// succeeds but yields an empty article body.
func Extract(doc *goquery.Document, rawURL string, logger *slog.Logger) (*models.Article, error) {
	if logger == nil {
		logger = slog.Default()
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page url %s: %w", rawURL, err)
	}

	ResolveLazyImages(doc)

	resolved, err := doc.Html()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize resolved page: %w", err)
	}

	readabilityParser := readability.NewParser()
	article, err := readabilityParser.Parse(strings.NewReader(resolved), parsedURL)
	if err != nil {
		logger.Info("readability returned no content", "url", rawURL, "error", err)
		return nil, ErrNoContent
	}
	if strings.TrimSpace(article.Content) == "" {
		logger.Info("readability returned no content", "url", rawURL)
		return nil, ErrNoContent
	}

	logger.Info("extraction complete",
		"url", rawURL,
		"title", article.Title,
		"content_length", len(article.Content),
		"image_count", len(imgTagPattern.FindAllString(article.Content, -1)))

	return &models.Article{
		Title:       article.Title,
		Content:     article.Content,
		TextContent: article.TextContent,
		Excerpt:     article.Excerpt,
		Byline:      article.Byline,
		Length:      article.Length,
	}, nil
}
