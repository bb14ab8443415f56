// Package fetcher retrieves page HTML and the assets a conversion run
// references.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "textpack-archiver/1.0"

type Fetcher struct {
	client *http.Client
	logger *slog.Logger
}

// New returns a Fetcher backed by a cookie-jar client so asset requests
// ride on any session cookies the page fetch established, which is what
// lets authentication-gated images come through.
func New(logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	jar, _ := cookiejar.New(nil)
	return &Fetcher{
		client: &http.Client{Jar: jar},
		logger: logger,
	}
}

// GetHTML fetches a URL and parses the response body into a document.
func (f *Fetcher) GetHTML(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := f.GetHTMLBytes(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// GetHTMLBytes fetches a URL and returns the raw response body.
func (f *Fetcher) GetHTMLBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch HTML, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
