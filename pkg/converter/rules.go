package converter

import (
	"regexp"
	"strconv"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/textpack-archiver/models"
	"github.com/dtnitsch/textpack-archiver/pkg/assetpath"
	"github.com/dtnitsch/textpack-archiver/pkg/imageurl"
)

// Inline frames from these hosts survive conversion as verbatim HTML;
// every other iframe is dropped.
var videoHosts = regexp.MustCompile(`(?i)youtube\.com|youtu\.be|vimeo\.com|dailymotion\.com|dai\.ly`)

var tableChildTags = []string{"thead", "tbody", "tfoot", "tr", "th", "td", "caption", "colgroup", "col"}

// Cells carry GFM rules of their own and may fall through to them; the
// section wrappers have no rule in the plugin and must pass content on
// themselves once a rule is registered for their tag.
var (
	tableCellTags    = []string{"tr", "th", "td"}
	tableSectionTags = []string{"thead", "tbody", "tfoot", "caption", "colgroup", "col"}
)

// Pre-conversion hooks stamp bookkeeping attributes on anchors and list
// items; verbatim output must not carry them.
var stampedAttrs = []string{"data-index", "data-converter-list-prefix"}

// buildRules assembles the ordered rule set. Rules added later take
// precedence over the library defaults and the GFM plugin, and a rule
// returning nil falls through to the next match.
func buildRules(settings models.ConversionSettings, alloc *assetpath.Allocator) []md.Rule {
	rules := []md.Rule{
		detailsRule(),
		summaryRule(),
		verbatimInlineRule("sup"),
		verbatimInlineRule("sub"),
		iframeRule(),
		figureRule(settings, alloc),
		figcaptionRule(),
		imageRule(alloc),
		linkedImageRule(alloc),
	}

	if settings.TableStyle == models.StyleHTML {
		rules = append(rules, verbatimTableRule(), suppressTableChildrenRule())
	} else {
		rules = append(rules, complexTableRule(), complexTableCellRule(), complexTableSectionRule())
	}

	return rules
}

// outerHTML serializes a selection back to HTML, attributes and nested
// structure included. Serialization works on a clone with the converter's
// stamped bookkeeping attributes removed.
func outerHTML(selec *goquery.Selection) string {
	clone := selec.Clone()
	for _, attr := range stampedAttrs {
		clone.RemoveAttr(attr)
		clone.Find("[" + attr + "]").RemoveAttr(attr)
	}
	html, err := goquery.OuterHtml(clone)
	if err != nil {
		return ""
	}
	return html
}

// isComplexTable reports whether any cell spans rows or columns, or the
// table nests another table. Such tables cannot round-trip through pipe
// syntax and are emitted as verbatim HTML instead.
func isComplexTable(table *goquery.Selection) bool {
	spanned := false
	table.Find("td, th").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		if spanOf(cell, "colspan") > 1 || spanOf(cell, "rowspan") > 1 {
			spanned = true
			return false
		}
		return true
	})
	if spanned {
		return true
	}
	return table.Find("table").Length() > 0
}

func spanOf(cell *goquery.Selection, attr string) int {
	value, ok := cell.Attr(attr)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// preferredImageURL returns the URL to allocate for an img element. When
// the image is wrapped in a link whose target is itself an image, the link
// target is treated as the full-size original and wins over the thumbnail
// src. The second return value is the enclosing anchor, when it applied.
func preferredImageURL(img *goquery.Selection) (string, *goquery.Selection) {
	src := img.AttrOr("src", "")
	anchor := img.Closest("a")
	if anchor.Length() > 0 {
		if href := anchor.AttrOr("href", ""); href != "" && imageurl.IsImageURL(href) {
			return href, anchor
		}
	}
	return src, nil
}

func insideFigure(selec *goquery.Selection) bool {
	return selec.ParentsFiltered("figure").Length() > 0
}

func verbatimTableRule() md.Rule {
	return md.Rule{
		Filter: []string{"table"},
		Replacement: func(_ string, selec *goquery.Selection, _ *md.Options) *string {
			return md.String("\n\n" + outerHTML(selec) + "\n\n")
		},
	}
}

func suppressTableChildrenRule() md.Rule {
	return md.Rule{
		Filter: tableChildTags,
		Replacement: func(_ string, _ *goquery.Selection, _ *md.Options) *string {
			return md.String("")
		},
	}
}

func complexTableRule() md.Rule {
	return md.Rule{
		Filter: []string{"table"},
		Replacement: func(_ string, selec *goquery.Selection, _ *md.Options) *string {
			if !isComplexTable(selec) {
				return nil // let the GFM table rule produce a pipe table
			}
			return md.String("\n\n" + outerHTML(selec) + "\n\n")
		},
	}
}

func complexTableCellRule() md.Rule {
	return md.Rule{
		Filter: tableCellTags,
		Replacement: func(_ string, selec *goquery.Selection, _ *md.Options) *string {
			table := selec.ParentsFiltered("table").First()
			if table.Length() > 0 && isComplexTable(table) {
				return md.String("")
			}
			return nil // let the GFM row and cell rules run
		},
	}
}

func complexTableSectionRule() md.Rule {
	return md.Rule{
		Filter: tableSectionTags,
		Replacement: func(content string, selec *goquery.Selection, _ *md.Options) *string {
			table := selec.ParentsFiltered("table").First()
			if table.Length() > 0 && isComplexTable(table) {
				return md.String("")
			}
			// No library rule exists for these tags, so content is
			// passed through here instead of falling to a default.
			return md.String(content)
		},
	}
}

func detailsRule() md.Rule {
	return md.Rule{
		Filter: []string{"details"},
		Replacement: func(_ string, selec *goquery.Selection, _ *md.Options) *string {
			return md.String("\n\n" + outerHTML(selec) + "\n\n")
		},
	}
}

// The summary element is already part of its parent details' verbatim HTML
// and must not be converted a second time.
func summaryRule() md.Rule {
	return md.Rule{
		Filter: []string{"summary"},
		Replacement: func(_ string, _ *goquery.Selection, _ *md.Options) *string {
			return md.String("")
		},
	}
}

// Super/subscript carry meaning Markdown cannot express, including nested
// markup such as citation links, so they stay inline HTML.
func verbatimInlineRule(tag string) md.Rule {
	return md.Rule{
		Filter: []string{tag},
		Replacement: func(_ string, selec *goquery.Selection, _ *md.Options) *string {
			return md.String(outerHTML(selec))
		},
	}
}

func iframeRule() md.Rule {
	return md.Rule{
		Filter: []string{"iframe"},
		Replacement: func(_ string, selec *goquery.Selection, _ *md.Options) *string {
			if videoHosts.MatchString(selec.AttrOr("src", "")) {
				return md.String("\n\n" + outerHTML(selec) + "\n\n")
			}
			return md.String("")
		},
	}
}

func figureRule(settings models.ConversionSettings, alloc *assetpath.Allocator) md.Rule {
	return md.Rule{
		Filter: []string{"figure"},
		Replacement: func(_ string, selec *goquery.Selection, _ *md.Options) *string {
			if settings.FigureStyle == models.StyleHTML {
				return md.String("\n\n" + figureAsHTML(selec, alloc) + "\n\n")
			}
			return md.String("\n\n" + figureAsMarkdown(selec, alloc) + "\n\n")
		},
	}
}

// figureAsHTML rewrites every contained image source to its local asset
// path before serializing the figure verbatim. A link wrapping the image
// whose target is the full-size original is rewritten to the same path.
func figureAsHTML(figure *goquery.Selection, alloc *assetpath.Allocator) string {
	figure.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := img.AttrOr("src", "")
		if src == "" {
			return
		}
		target, anchor := preferredImageURL(img)
		path := alloc.Allocate(target)
		img.SetAttr("src", path)
		if anchor != nil {
			anchor.SetAttr("href", path)
		}
	})
	return outerHTML(figure)
}

// figureAsMarkdown emits one image reference per contained image, followed
// by the caption text in italics on its own line. Raw caption markup is
// discarded.
func figureAsMarkdown(figure *goquery.Selection, alloc *assetpath.Allocator) string {
	var out string
	figure.Find("img").Each(func(_ int, img *goquery.Selection) {
		target, _ := preferredImageURL(img)
		path := alloc.Allocate(target)
		out += "![" + img.AttrOr("alt", "") + "](" + path + ")"
	})

	caption := strings.TrimSpace(figure.Find("figcaption").Text())
	if caption != "" {
		out += "\n*" + caption + "*"
	}
	return out
}

func figcaptionRule() md.Rule {
	return md.Rule{
		Filter: []string{"figcaption"},
		Replacement: func(_ string, _ *goquery.Selection, _ *md.Options) *string {
			return md.String("")
		},
	}
}

// imageRule handles standalone images. Images inside figures fall through:
// the figure rule owns them and discards whatever the defaults produce.
func imageRule(alloc *assetpath.Allocator) md.Rule {
	return md.Rule{
		Filter: []string{"img"},
		Replacement: func(_ string, selec *goquery.Selection, _ *md.Options) *string {
			if insideFigure(selec) {
				return nil
			}
			target, _ := preferredImageURL(selec)
			path := alloc.Allocate(target)
			return md.String("![" + selec.AttrOr("alt", "") + "](" + path + ")")
		},
	}
}

// linkedImageRule discards the anchor wrapper around a linked image: a link
// whose sole content is one image and whose target is itself an image URL
// renders as a plain image reference to the link target.
func linkedImageRule(alloc *assetpath.Allocator) md.Rule {
	return md.Rule{
		Filter: []string{"a"},
		Replacement: func(_ string, selec *goquery.Selection, _ *md.Options) *string {
			if insideFigure(selec) {
				return nil
			}
			href := selec.AttrOr("href", "")
			if href == "" || !imageurl.IsImageURL(href) {
				return nil
			}
			children := selec.Children()
			if children.Length() != 1 || !children.First().Is("img") {
				return nil
			}
			if strings.TrimSpace(selec.Text()) != "" {
				return nil
			}
			img := children.First()
			path := alloc.Allocate(href)
			return md.String("![" + img.AttrOr("alt", "") + "](" + path + ")")
		},
	}
}
