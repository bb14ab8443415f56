package models

// PageMetadata holds metadata extracted from a page's head element, OG tags,
// JSON-LD, and meta tags. Optional fields use the zero value for "absent"
// and are omitted from downstream output.
type PageMetadata struct {
	Title        string
	Authors      []string // single author or ordered list; empty when unknown
	Date         string   // ISO-8601, empty when unknown or unparseable
	URL          string
	CanonicalURL string
	SiteName     string
	Language     string
	Description  string
	Excerpt      string
	Keywords     []string
	OGImage      string
	OGType       string
}
