package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestExtractForwardsPages(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/extract" {
			t.Errorf("expected /search/extract, got %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[{"price":"12.99"}],"errors":[],"time_took":1.5}`))
	}))
	defer server.Close()

	pages := []Page{
		{URL: "https://example.com/a", Details: []string{"product price"}, Quality: "high"},
		{URL: "https://example.com/b", Details: []string{"author", "title"}},
	}

	c := New("id", "secret", WithBaseURL(server.URL))
	result, err := c.Extract(context.Background(), pages, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent, ok := gotBody["pages"].([]any)
	if !ok || len(sent) != 2 {
		t.Fatalf("expected 2 pages forwarded, got %#v", gotBody["pages"])
	}
	first, _ := sent[0].(map[string]any)
	if first["url"] != "https://example.com/a" || first["quality"] != "high" {
		t.Errorf("expected page forwarded unmodified, got %#v", first)
	}

	if !result.Success || result.TimeTook != 1.5 {
		t.Errorf("expected {success:true time_took:1.5}, got %+v", result)
	}
	if len(result.Data) != 1 || result.Data[0]["price"] != "12.99" {
		t.Errorf("expected loose data entries, got %+v", result.Data)
	}
}

func TestExtractValidation(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	c := New("id", "secret", WithBaseURL(server.URL))

	testCases := []struct {
		name    string
		pages   []Page
		wantMsg string
	}{
		{"Nil", nil, "pages must not be empty"},
		{"Empty", []Page{}, "pages must not be empty"},
		{"MissingURL", []Page{
			{URL: "https://example.com", Details: []string{"x"}},
			{Details: []string{"x"}},
		}, "pages[1]: missing url"},
		{"MissingDetails", []Page{
			{URL: "https://example.com"},
		}, "pages[0]: missing details"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Extract(context.Background(), tc.pages, nil)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("expected message containing %q, got %q", tc.wantMsg, err.Error())
			}
		})
	}

	if calls.Load() != 0 {
		t.Errorf("expected no network calls, got %d", calls.Load())
	}
}
