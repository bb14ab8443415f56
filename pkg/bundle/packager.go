package bundle

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dtnitsch/textpack-archiver/models"
)

const (
	manifestVersion   = 2
	manifestType      = "net.daringfireball.markdown"
	creatorIdentifier = "com.github.dtnitsch.textpack-archiver"
	creatorURL        = "https://github.com/dtnitsch/textpack-archiver"
)

// Manifest is the info.json descriptor inside every archive.
type Manifest struct {
	Version           int    `json:"version"`
	Type              string `json:"type"`
	Transient         bool   `json:"transient"`
	CreatorIdentifier string `json:"creatorIdentifier"`
	CreatorURL        string `json:"creatorURL"`
	SourceURL         string `json:"sourceURL"`
}

// Package builds the zip archive: info.json first, then text.md (the
// frontmatter block, a blank line, then the body), then the successfully
// fetched assets sorted by local path. Failed assets are skipped since
// the markdown has already been reverted to reference their original
// URLs. Entry timestamps are left zeroed so identical inputs produce
// identical bytes.
func Package(frontmatter, body, sourceURL string, assets []models.AssetRecord) ([]byte, error) {
	manifest, err := json.MarshalIndent(Manifest{
		Version:           manifestVersion,
		Type:              manifestType,
		Transient:         false,
		CreatorIdentifier: creatorIdentifier,
		CreatorURL:        creatorURL,
		SourceURL:         sourceURL,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal archive manifest: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	if err := writeEntry(zw, "info.json", manifest); err != nil {
		return nil, err
	}
	if err := writeEntry(zw, "text.md", []byte(frontmatter+"\n"+body)); err != nil {
		return nil, err
	}

	kept := make([]models.AssetRecord, 0, len(assets))
	for _, asset := range assets {
		if !asset.Failed {
			kept = append(kept, asset)
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].LocalPath < kept[j].LocalPath })

	for _, asset := range kept {
		if err := writeEntry(zw, asset.LocalPath, asset.Data); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("failed to create archive entry %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write archive entry %s: %w", name, err)
	}
	return nil
}
