// Package patcher repairs generated Markdown after fetch results are known.
package patcher

import (
	"strings"

	"github.com/dtnitsch/textpack-archiver/models"
)

// RevertFailedAssets replaces every occurrence of a failed asset's local
// path with its original remote URL, so broken downloads degrade to plain
// links instead of dangling archive paths. Local paths are unique tokens
// within one run, which makes literal substring replacement safe for both
// Markdown image syntax and verbatim inline HTML; replacement order across
// assets does not matter. Records with Failed=false are ignored.
func RevertFailedAssets(markdown string, failed []models.AssetRecord) string {
	patched := markdown
	for _, asset := range failed {
		if !asset.Failed {
			continue
		}
		patched = strings.ReplaceAll(patched, asset.LocalPath, asset.OriginalURL)
	}
	return patched
}
