package helpers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
)

func esTestServer(t *testing.T, existing bool, createdBody *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		switch r.Method {
		case http.MethodHead:
			if existing {
				w.WriteHeader(http.StatusOK)
			} else {
				w.WriteHeader(http.StatusNotFound)
			}
		case http.MethodPut:
			b, _ := io.ReadAll(r.Body)
			*createdBody = string(b)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"acknowledged":true}`))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
}

func TestEnsureESIndex_CreatesWhenMissing(t *testing.T) {
	t.Parallel()

	var created string
	srv := esTestServer(t, false, &created)
	defer srv.Close()

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	mapping := `{"mappings":{"properties":{"name":{"type":"text"}}}}`
	if err := EnsureESIndex(context.Background(), es, "products", mapping); err != nil {
		t.Fatalf("EnsureESIndex error: %v", err)
	}
	if !strings.Contains(created, `"name"`) {
		t.Fatalf("index created without the mapping body: %q", created)
	}
}

func TestEnsureESIndex_ExistingIndexUntouched(t *testing.T) {
	t.Parallel()

	var created string
	srv := esTestServer(t, true, &created)
	defer srv.Close()

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	if err := EnsureESIndex(context.Background(), es, "products", `{}`); err != nil {
		t.Fatalf("EnsureESIndex error: %v", err)
	}
	if created != "" {
		t.Fatalf("existing index was recreated: %q", created)
	}
}
