package models

// AssetMap maps a remote asset URL to its allocated local path inside the
// archive (e.g. "assets/sunset-beach.png"). One map is scoped to a single
// conversion run; once a URL is allocated its path never changes within
// that run.
type AssetMap map[string]string

// Clone returns a shallow copy of the map.
func (m AssetMap) Clone() AssetMap {
	out := make(AssetMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// AssetRecord is the fetch outcome for one unique asset URL.
// Failed records carry no payload and no mime type.
type AssetRecord struct {
	OriginalURL string
	LocalPath   string
	Data        []byte
	MimeType    string
	Failed      bool
}
