package extractor

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Attributes lazy-loading libraries stash the real image URL in.
var lazyAttrs = []string{"data-src", "data-lazy-src", "data-original"}

// ResolveLazyImages rewrites img src attributes in place so that
// downstream extraction sees real image URLs instead of placeholders.
// It promotes known lazy-load attributes, falls back to the best srcset
// candidate, and hoists picture source sets onto their img child.
func ResolveLazyImages(doc *goquery.Document) {
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		resolveImg(img)
	})
	doc.Find("picture").Each(func(_ int, picture *goquery.Selection) {
		resolvePicture(picture)
	})
}

func resolveImg(img *goquery.Selection) {
	for _, attr := range lazyAttrs {
		if value, ok := img.Attr(attr); ok && value != "" {
			img.SetAttr("src", value)
			return
		}
	}

	if srcset, ok := img.Attr("srcset"); ok {
		if best := bestFromSrcset(srcset); best != "" {
			img.SetAttr("src", best)
		}
	}
}

func resolvePicture(picture *goquery.Selection) {
	img := picture.Find("img").First()
	if img.Length() == 0 {
		return
	}

	picture.Find("source").EachWithBreak(func(_ int, source *goquery.Selection) bool {
		srcset, ok := source.Attr("srcset")
		if !ok {
			return true
		}
		best := bestFromSrcset(srcset)
		if best == "" {
			return true
		}
		img.SetAttr("src", best)
		return false
	})
}

// bestFromSrcset picks the candidate with the largest width (w) or pixel
// density (x) descriptor. Candidates without a descriptor count as 1x.
func bestFromSrcset(srcset string) string {
	bestURL := ""
	bestValue := -1.0

	for _, entry := range strings.Split(srcset, ",") {
		fields := strings.Fields(strings.TrimSpace(entry))
		if len(fields) == 0 {
			continue
		}

		value := 1.0
		if len(fields) > 1 {
			descriptor := fields[1]
			switch {
			case strings.HasSuffix(descriptor, "w"):
				n, err := strconv.Atoi(strings.TrimSuffix(descriptor, "w"))
				if err != nil {
					n = 0
				}
				value = float64(n)
			case strings.HasSuffix(descriptor, "x"):
				f, err := strconv.ParseFloat(strings.TrimSuffix(descriptor, "x"), 64)
				if err != nil {
					f = 1
				}
				value = f
			}
		}

		if value > bestValue {
			bestValue = value
			bestURL = fields[0]
		}
	}

	return bestURL
}
