package fetch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

const stationPage = `<html><body>
<div class="station">
  <span class="status" data-free="2">2 of 4 free</span>
  <span class="status" data-free="0">0 of 1 free</span>
</div>
</body></html>`

func setupPageTools(t *testing.T, f *PageFetcher) Tools {
	t.Helper()

	tools, err := f.Setup(context.Background())
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	t.Cleanup(func() { tools.Close() })
	return tools
}

func decodeStrings(t *testing.T, payload json.RawMessage) []string {
	t.Helper()

	var out []string
	if err := json.Unmarshal(payload, &out); err != nil {
		t.Fatalf("payload is not a string array: %v", err)
	}
	return out
}

func TestNewPageFetcher_RequiresSelector(t *testing.T) {
	if _, err := NewPageFetcher(PageConfig{}); err == nil {
		t.Fatal("expected error for empty selector")
	}

	if _, err := NewPageFetcher(PageConfig{Selector: ".status"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPageFetcher_ExtractsText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(stationPage))
	}))
	defer server.Close()

	f, err := NewPageFetcher(PageConfig{Selector: ".status"})
	if err != nil {
		t.Fatalf("NewPageFetcher failed: %v", err)
	}
	tools := setupPageTools(t, f)

	payload, err := f.FetchOne(context.Background(), server.URL, tools)
	if err != nil {
		t.Fatalf("FetchOne failed: %v", err)
	}

	got := decodeStrings(t, payload)
	want := []string{"2 of 4 free", "0 of 1 free"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extracted = %v, want %v", got, want)
	}
}

func TestPageFetcher_ExtractsAttribute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(stationPage))
	}))
	defer server.Close()

	f, err := NewPageFetcher(PageConfig{Selector: ".status", Attribute: "data-free"})
	if err != nil {
		t.Fatalf("NewPageFetcher failed: %v", err)
	}
	tools := setupPageTools(t, f)

	payload, err := f.FetchOne(context.Background(), server.URL, tools)
	if err != nil {
		t.Fatalf("FetchOne failed: %v", err)
	}

	got := decodeStrings(t, payload)
	want := []string{"2", "0"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extracted = %v, want %v", got, want)
	}
}

func TestPageFetcher_NoMatchesYieldsEmptyArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>nothing here</p></body></html>"))
	}))
	defer server.Close()

	f, err := NewPageFetcher(PageConfig{Selector: ".status"})
	if err != nil {
		t.Fatalf("NewPageFetcher failed: %v", err)
	}
	tools := setupPageTools(t, f)

	payload, err := f.FetchOne(context.Background(), server.URL, tools)
	if err != nil {
		t.Fatalf("FetchOne failed: %v", err)
	}
	if string(payload) != "[]" {
		t.Errorf("payload = %s, want []", payload)
	}
}

func TestPageFetcher_TransportErrorIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	f, err := NewPageFetcher(PageConfig{Selector: ".status"})
	if err != nil {
		t.Fatalf("NewPageFetcher failed: %v", err)
	}
	tools := setupPageTools(t, f)

	_, err = f.FetchOne(context.Background(), url, tools)
	if err == nil {
		t.Fatal("expected transport error, got nil")
	}
	if !IsTransient(err) {
		t.Errorf("expected transient error, got %v", err)
	}
}
