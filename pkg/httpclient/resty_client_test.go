package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestRestyClientPostSendsJSONThroughTransport(t *testing.T) {
	var gotBody map[string]any
	var gotKey, gotType string
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		gotKey = r.Header.Get("X-Api-Key")
		gotType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		return &http.Response{
			StatusCode: http.StatusCreated,
			Header:     http.Header{"Content-Type": {"application/json"}},
			Body:       io.NopCloser(strings.NewReader(`{"ok":true}`)),
			Request:    r,
		}, nil
	})

	client := NewRestyClientWithTransport(time.Second, rt)
	resp, err := client.Post(context.Background(), "http://in-process/v1/stars",
		map[string]string{"X-Api-Key": "k1"}, map[string]any{"name": "Vega"})
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if resp.StatusCode() != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode())
	}
	if string(resp.Body()) != `{"ok":true}` {
		t.Fatalf("body = %s", resp.Body())
	}
	if gotKey != "k1" {
		t.Fatalf("X-Api-Key = %q", gotKey)
	}
	if !strings.HasPrefix(gotType, "application/json") {
		t.Fatalf("Content-Type = %q", gotType)
	}
	if gotBody["name"] != "Vega" {
		t.Fatalf("body name = %v", gotBody["name"])
	}
}

func TestRestyClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Test") != "1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	}))
	defer srv.Close()

	resp, err := NewRestyClient(2*time.Second).Get(context.Background(), srv.URL, map[string]string{"X-Test": "1"})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusOK || string(resp.Body()) != "pong" {
		t.Fatalf("unexpected response %d %q", resp.StatusCode(), resp.Body())
	}
}
