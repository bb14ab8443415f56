package archive

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dtnitsch/textpack-archiver/models"
)

func TestRunCollectsAllResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/post", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, articleHTML())
	})
	mux.HandleFunc("/img/photo.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpegbytes"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	pipeline := testPipeline(t)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	config := &models.ArchiveConfig{
		URLs: []string{
			server.URL + "/post",
			server.URL + "/missing",
		},
		WorkerCount: 4,
	}

	results, aggregate, runErr := run(context.Background(), logger, config, pipeline)

	if runErr == nil {
		t.Error("expected run error when one URL fails")
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}

	var succeeded, failed int
	for _, result := range results {
		if result.Error != nil {
			failed++
		} else {
			succeeded++
		}
	}
	if succeeded != 1 || failed != 1 {
		t.Errorf("succeeded/failed = %d/%d, want 1/1", succeeded, failed)
	}

	if len(aggregate) == 0 {
		t.Error("aggregate word counts are empty")
	}
}
