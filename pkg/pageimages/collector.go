// Package pageimages finds images in the full page document that content
// extraction dropped, and appends them to the Markdown as a visual appendix.
package pageimages

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/textpack-archiver/models"
	"github.com/dtnitsch/textpack-archiver/pkg/imageurl"
)

// Images narrower and shorter than this are treated as decoration
// (icons, spacers, tracking pixels) and skipped.
const minDimension = 50

// Collect gathers substantial images from the full page document. Images
// inside nav/header/footer landmarks, tiny images, empty and data: sources
// are skipped; relative sources are resolved against baseURL and anything
// unresolvable is dropped. Duplicates are collapsed by absolute URL with
// the first occurrence winning the alt text.
func Collect(doc *goquery.Document, baseURL string) []models.PageImage {
	seen := make(map[string]struct{})
	var result []models.PageImage

	doc.Find("body img").Each(func(_ int, img *goquery.Selection) {
		if img.ParentsFiltered("nav, header, footer").Length() > 0 {
			return
		}
		if tooSmall(img) {
			return
		}

		src := img.AttrOr("src", "")
		if src == "" || strings.HasPrefix(src, "data:") {
			return
		}

		// A link to the full-size original beats the thumbnail src. The
		// href may be relative, so it is resolved before the check.
		if anchor := img.Closest("a"); anchor.Length() > 0 {
			if href := anchor.AttrOr("href", ""); href != "" {
				if full := imageurl.Resolve(href, baseURL); full != "" && imageurl.IsImageURL(full) {
					src = href
				}
			}
		}

		absolute := imageurl.Resolve(src, baseURL)
		if absolute == "" {
			return
		}
		if _, dup := seen[absolute]; dup {
			return
		}
		seen[absolute] = struct{}{}

		result = append(result, models.PageImage{
			URL: absolute,
			Alt: img.AttrOr("alt", ""),
		})
	})

	return result
}

// tooSmall reports whether both declared dimensions are below the floor.
// Images with no usable dimensions are kept: indeterminate is not "small".
func tooSmall(img *goquery.Selection) bool {
	w := dimension(img, "width")
	h := dimension(img, "height")
	if w == 0 && h == 0 {
		return false
	}
	return w < minDimension && h < minDimension
}

func dimension(img *goquery.Selection, attr string) int {
	value, ok := img.Attr(attr)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
