// Package models defines data structures shared across the archive pipeline.
package models

// Article is the result of running content extraction on a page.
// Content is the cleaned article HTML fragment; TextContent is the same
// content with markup stripped.
type Article struct {
	Title       string
	Content     string
	TextContent string
	Excerpt     string
	Byline      string
	Length      int
}

// PageImage is a candidate image found in the full page document,
// independent of whether extraction kept it.
type PageImage struct {
	URL string
	Alt string
}
