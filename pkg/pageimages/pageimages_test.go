package pageimages

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/textpack-archiver/models"
)

const base = "https://example.com/articles/post"

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse HTML: %v", err)
	}
	return doc
}

func TestCollectSkipsLandmarkRegions(t *testing.T) {
	doc := parse(t, `<body>
		<nav><img src="/logo.png"></nav>
		<header><img src="/banner.png"></header>
		<article><img src="/hero.png" alt="hero"></article>
		<footer><img src="/badge.png"></footer>
	</body>`)

	images := Collect(doc, base)

	if len(images) != 1 {
		t.Fatalf("Collect() returned %d images, want 1: %v", len(images), images)
	}
	if images[0].URL != "https://example.com/hero.png" {
		t.Errorf("URL = %q", images[0].URL)
	}
	if images[0].Alt != "hero" {
		t.Errorf("Alt = %q", images[0].Alt)
	}
}

func TestCollectSizeFloor(t *testing.T) {
	doc := parse(t, `<body>
		<img src="/icon.png" width="16" height="16">
		<img src="/wide.png" width="600" height="20">
		<img src="/unknown.png">
	</body>`)

	images := Collect(doc, base)

	var urls []string
	for _, img := range images {
		urls = append(urls, img.URL)
	}

	if len(images) != 2 {
		t.Fatalf("Collect() = %v, want wide.png and unknown.png", urls)
	}
	// One large dimension is enough, and missing dimensions are kept.
	if images[0].URL != "https://example.com/wide.png" || images[1].URL != "https://example.com/unknown.png" {
		t.Errorf("Collect() = %v", urls)
	}
}

func TestCollectSkipsEmptyAndDataURIs(t *testing.T) {
	doc := parse(t, `<body>
		<img src="">
		<img src="data:image/gif;base64,R0lGOD">
		<img src="/real.png">
	</body>`)

	images := Collect(doc, base)

	if len(images) != 1 || images[0].URL != "https://example.com/real.png" {
		t.Errorf("Collect() = %v", images)
	}
}

func TestCollectPrefersLinkedOriginal(t *testing.T) {
	doc := parse(t, `<body>
		<a href="/photos/full.jpg"><img src="/photos/thumb.jpg" alt="shot"></a>
		<a href="/gallery.html"><img src="/photos/other-thumb.jpg"></a>
	</body>`)

	images := Collect(doc, base)

	if len(images) != 2 {
		t.Fatalf("Collect() returned %d images, want 2", len(images))
	}
	if images[0].URL != "https://example.com/photos/full.jpg" {
		t.Errorf("linked original not preferred: %q", images[0].URL)
	}
	if images[1].URL != "https://example.com/photos/other-thumb.jpg" {
		t.Errorf("non-image link target should not win: %q", images[1].URL)
	}
}

func TestCollectDeduplicatesFirstWins(t *testing.T) {
	doc := parse(t, `<body>
		<img src="/same.png" alt="first">
		<img src="/same.png" alt="second">
	</body>`)

	images := Collect(doc, base)

	if len(images) != 1 {
		t.Fatalf("Collect() returned %d images, want 1", len(images))
	}
	if images[0].Alt != "first" {
		t.Errorf("Alt = %q, want first occurrence", images[0].Alt)
	}
}

func TestAppendOrphan(t *testing.T) {
	assets := models.AssetMap{}
	images := []models.PageImage{
		{URL: "https://example.com/images/sunset-beach.png", Alt: ""},
	}

	markdown, updated := Append("Body text.", assets, images)

	if updated["https://example.com/images/sunset-beach.png"] != "assets/sunset-beach.png" {
		t.Errorf("asset map = %v", updated)
	}
	want := "Body text.\n\n---\n\n![](assets/sunset-beach.png)"
	if markdown != want {
		t.Errorf("markdown = %q, want %q", markdown, want)
	}
	if len(assets) != 0 {
		t.Errorf("caller's map mutated: %v", assets)
	}
}

func TestAppendSkipsKnownImages(t *testing.T) {
	assets := models.AssetMap{
		"https://example.com/known.png": "assets/known.png",
	}
	images := []models.PageImage{
		{URL: "https://example.com/known.png", Alt: "k"},
	}

	markdown, updated := Append("Body.", assets, images)

	if markdown != "Body." {
		t.Errorf("markdown changed with no orphans: %q", markdown)
	}
	if len(updated) != 1 {
		t.Errorf("asset map = %v", updated)
	}
}

func TestAppendNoOrphansPassThrough(t *testing.T) {
	assets := models.AssetMap{"https://example.com/a.png": "assets/a.png"}

	markdown, updated := Append("Body.", assets, nil)

	if markdown != "Body." {
		t.Errorf("markdown = %q", markdown)
	}
	// Same map instance, not a copy.
	updated["probe"] = "x"
	if _, ok := assets["probe"]; !ok {
		t.Error("expected pass-through of the original map")
	}
}

func TestAppendCollisionAgainstExisting(t *testing.T) {
	assets := models.AssetMap{
		"https://example.com/photo.jpg": "assets/photo.jpg",
	}
	images := []models.PageImage{
		{URL: "https://cdn.example.com/photo.jpg", Alt: "dup"},
	}

	_, updated := Append("Body.", assets, images)

	if updated["https://cdn.example.com/photo.jpg"] != "assets/photo-2.jpg" {
		t.Errorf("collision not suffixed: %v", updated)
	}
}
