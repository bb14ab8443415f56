package manifest

// SummaryManifest is the run-level overview written after a batch of
// archive attempts: totals, aggregate keywords, and one entry per URL.
type SummaryManifest struct {
	GeneratedAt       string       `json:"generated_at"`
	TotalURLs         int          `json:"total_urls"`
	Successful        int          `json:"successful"`
	Failed            int          `json:"failed"`
	AggregateKeywords []string     `json:"aggregate_keywords"`
	Results           []URLSummary `json:"results"`
}

// URLSummary describes one archive attempt.
type URLSummary struct {
	URL          string   `json:"url"`
	FilePath     string   `json:"file_path,omitempty"`
	Status       string   `json:"status"` // "success" or "error"
	ErrorType    string   `json:"error_type,omitempty"`
	ErrorMessage string   `json:"error_message,omitempty"`
	SizeBytes    int64    `json:"size_bytes,omitempty"`
	WordCount    int      `json:"word_count,omitempty"`
	AssetsTotal  int      `json:"assets_total,omitempty"`
	AssetsFailed int      `json:"assets_failed,omitempty"`
	TopKeywords  []string `json:"top_keywords,omitempty"`
}
