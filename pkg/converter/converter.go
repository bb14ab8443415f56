// Package converter transforms extracted article HTML into Markdown.
//
// The conversion is rule driven: custom rules handle tables, collapsible
// sections, super/subscript, embedded video frames, figures, and images;
// everything else falls through to the library defaults plus the GitHub
// Flavored plugin. Image sources are rewritten to local asset paths handed
// out by an explicitly supplied allocator, so the walk stays synchronous
// and independent of network results.
package converter

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/textpack-archiver/models"
	"github.com/dtnitsch/textpack-archiver/pkg/assetpath"
)

// Convert turns an HTML fragment into Markdown, honoring the conversion
// settings and allocating local paths for every referenced image. Returns
// the Markdown and the asset map accumulated during the walk. Allocations
// whose local path never made it into the output are discarded, so the
// returned map only covers paths that literally occur in the Markdown.
//
// Convert is deterministic: identical input, settings, and a fresh
// allocator always produce identical output.
func Convert(html string, settings models.ConversionSettings, alloc *assetpath.Allocator) (string, models.AssetMap, error) {
	conv := md.NewConverter("", true, &md.Options{
		HeadingStyle:     "atx",
		HorizontalRule:   "---",
		BulletListMarker: "-",
		CodeBlockStyle:   "fenced",
		EmDelimiter:      "_",
		StrongDelimiter:  "**",
	})
	conv.Use(plugin.GitHubFlavored())

	// The table plugin's pre-conversion hook moves each caption out of its
	// table so the text survives pipe conversion. Tables emitted as verbatim
	// HTML must keep their captions, so those are moved back first-child.
	conv.Before(func(selec *goquery.Selection) {
		selec.Find("table + caption").Each(func(_ int, caption *goquery.Selection) {
			table := caption.Prev()
			if settings.TableStyle == models.StyleHTML || isComplexTable(table) {
				table.PrependSelection(caption)
			}
		})
	})

	conv.AddRules(buildRules(settings, alloc)...)

	markdown, err := conv.ConvertString(html)
	if err != nil {
		return "", nil, fmt.Errorf("failed to convert HTML: %w", err)
	}

	// Rules run speculatively during the tree walk; drop any allocation
	// whose path is absent from the final document.
	for url, path := range alloc.Assets() {
		if !strings.Contains(markdown, path) {
			alloc.Discard(url)
		}
	}

	return markdown, alloc.Assets(), nil
}
