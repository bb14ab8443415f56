package pageimages

import (
	"strings"

	"github.com/dtnitsch/textpack-archiver/models"
	"github.com/dtnitsch/textpack-archiver/pkg/assetpath"
)

// Append adds orphaned images (collected from the page but absent from the
// asset map) beneath a thematic-break separator. The caller's map is never
// mutated; orphan paths are allocated collision-aware against every
// existing allocation. With no orphans the inputs are returned untouched.
func Append(markdown string, assets models.AssetMap, images []models.PageImage) (string, models.AssetMap) {
	var orphans []models.PageImage
	for _, img := range images {
		if _, known := assets[img.URL]; !known {
			orphans = append(orphans, img)
		}
	}
	if len(orphans) == 0 {
		return markdown, assets
	}

	alloc := assetpath.NewSeeded(assets)
	lines := make([]string, len(orphans))
	for i, img := range orphans {
		lines[i] = "![" + img.Alt + "](" + alloc.Allocate(img.URL) + ")"
	}

	return markdown + "\n\n---\n\n" + strings.Join(lines, "\n\n"), alloc.Assets()
}
