// Package assetpath assigns deterministic local paths to remote asset URLs.
//
// Paths are decided before any asset is fetched, which keeps the Markdown
// conversion synchronous; failed downloads are repaired afterwards by the
// patcher. One Allocator is scoped to a single conversion run.
package assetpath

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/dtnitsch/textpack-archiver/models"
	"github.com/dtnitsch/textpack-archiver/pkg/imageurl"
)

var fallbackName = regexp.MustCompile(`^assets/image-(\d{3})\.`)

// Allocator maps remote URLs to collision-free local paths under assets/.
// It is not safe for concurrent use; the pipeline only allocates from the
// single-threaded conversion stages.
type Allocator struct {
	assets  models.AssetMap
	used    map[string]struct{}
	counter int
}

// New returns an empty Allocator.
func New() *Allocator {
	return &Allocator{
		assets: make(models.AssetMap),
		used:   make(map[string]struct{}),
	}
}

// NewSeeded returns an Allocator pre-populated with existing allocations.
// The seed map is copied, never mutated. New allocations are collision-aware
// against every seeded path, and the numeric fallback counter resumes after
// the highest image-NNN name already allocated so the sequence stays shared
// across one run.
func NewSeeded(seed models.AssetMap) *Allocator {
	a := New()
	a.assets = seed.Clone()
	for _, path := range a.assets {
		a.used[path] = struct{}{}
		if m := fallbackName.FindStringSubmatch(path); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > a.counter {
				a.counter = n
			}
		}
	}
	return a
}

// Allocate returns the local path for url, performing allocation on first
// use and returning the cached path on every subsequent call. Malformed
// URLs degrade to the counter fallback; Allocate never fails.
func (a *Allocator) Allocate(url string) string {
	if path, ok := a.assets[url]; ok {
		return path
	}

	ext := imageurl.ExtractExtension(url)
	base := imageurl.ExtractBasename(url)
	if base == "" {
		a.counter++
		base = fmt.Sprintf("image-%03d", a.counter)
	}

	candidate := "assets/" + base + ext
	if _, taken := a.used[candidate]; taken {
		for suffix := 2; ; suffix++ {
			candidate = fmt.Sprintf("assets/%s-%d%s", base, suffix, ext)
			if _, taken := a.used[candidate]; !taken {
				break
			}
		}
	}

	a.used[candidate] = struct{}{}
	a.assets[url] = candidate
	return candidate
}

// Assets returns the live URL-to-path map accumulated so far.
func (a *Allocator) Assets() models.AssetMap {
	return a.assets
}

// Discard removes a URL's allocation, freeing its path for reuse. Used to
// drop speculative allocations whose path never made it into the output.
func (a *Allocator) Discard(url string) {
	if path, ok := a.assets[url]; ok {
		delete(a.used, path)
		delete(a.assets, url)
	}
}
