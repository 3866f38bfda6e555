package aur

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	c, err := NewClient(Config{BaseURL: serverURL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return c
}

func envelope(results string) string {
	return fmt.Sprintf(`{"type":"search","results":%s}`, results)
}

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient(Config{})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if c.base != DefaultBaseURL {
		t.Errorf("base = %q, want %q", c.base, DefaultBaseURL)
	}
	if c.http == nil || c.logger == nil {
		t.Error("expected defaults to be filled in")
	}
}

func TestNewClient_BadBaseURL(t *testing.T) {
	for _, base := range []string{"://missing-scheme", "ftp://example.org/rpc"} {
		if _, err := NewClient(Config{BaseURL: base}); err == nil {
			t.Errorf("NewClient(%q): expected error", base)
		}
	}
}

func TestClient_Search(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, envelope(`[`+pkgJSON+`]`))
	}))
	defer server.Close()

	pkgs, err := testClient(t, server.URL).Search(context.Background(), "yay")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if gotQuery != "type=search&arg=yay" {
		t.Errorf("query = %q, want %q", gotQuery, "type=search&arg=yay")
	}
	if len(pkgs) != 1 || pkgs[0].Name != "yay" {
		t.Errorf("unexpected result: %+v", pkgs)
	}
}

func TestClient_Search_NonArrayResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, envelope(pkgJSON))
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).Search(context.Background(), "yay")
	if !IsKind(err, KindInvalidResponse) {
		t.Errorf("expected invalid response, got %v", err)
	}
}

func TestClient_MSearch(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, envelope(`[]`))
	}))
	defer server.Close()

	pkgs, err := testClient(t, server.URL).MSearch(context.Background(), "jguer")
	if err != nil {
		t.Fatalf("MSearch failed: %v", err)
	}
	if gotQuery != "type=msearch&arg=jguer" {
		t.Errorf("query = %q, want %q", gotQuery, "type=msearch&arg=jguer")
	}
	if len(pkgs) != 0 {
		t.Errorf("got %d packages, want 0", len(pkgs))
	}
}

func TestClient_Info_Absent(t *testing.T) {
	// The service signals "not found" with an empty results array.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"type":"info","results":[]}`)
	}))
	defer server.Close()

	p, err := testClient(t, server.URL).Info(context.Background(), "no-such-package")
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil package, got %+v", p)
	}
}

func TestClient_Info_Present(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"type":"info","results":`+pkgJSON+`}`)
	}))
	defer server.Close()

	p, err := testClient(t, server.URL).Info(context.Background(), "yay")
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if p == nil || p.Name != "yay" {
		t.Errorf("unexpected result: %+v", p)
	}
}

func TestClient_MultiInfo(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"type":"multiinfo","results":[`+pkgJSON+`]}`)
	}))
	defer server.Close()

	pkgs, err := testClient(t, server.URL).MultiInfo(context.Background(), []string{"yay", "paru"})
	if err != nil {
		t.Fatalf("MultiInfo failed: %v", err)
	}
	if want := "type=multiinfo&arg[]=yay&arg[]=paru"; gotQuery != want {
		t.Errorf("query = %q, want %q", gotQuery, want)
	}
	if len(pkgs) != 1 {
		t.Errorf("got %d packages, want 1", len(pkgs))
	}
}

func TestClient_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"type":"error","results":"Incorrect request type specified."}`)
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).Search(context.Background(), "yay")
	if !IsKind(err, KindService) {
		t.Errorf("expected service error, got %v", err)
	}
}

func TestClient_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, "rate limited")
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).Search(context.Background(), "yay")
	var e *Error
	if !IsKind(err, KindHTTP) || !errors.As(err, &e) {
		t.Fatalf("expected http error, got %v", err)
	}
	if e.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", e.StatusCode, http.StatusTooManyRequests)
	}
	if e.Message != "rate limited" {
		t.Errorf("message = %q, want %q", e.Message, "rate limited")
	}
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	_, err := testClient(t, server.URL).Search(context.Background(), "yay")
	if !IsKind(err, KindIO) {
		t.Errorf("expected io error, got %v", err)
	}
}

func TestClient_RequestHeaders(t *testing.T) {
	var ua, reqID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		reqID = r.Header.Get("X-Request-ID")
		fmt.Fprint(w, envelope(`[]`))
	}))
	defer server.Close()

	c, err := NewClient(Config{BaseURL: server.URL, UserAgent: "test-agent/1.0"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if _, err := c.Search(context.Background(), "yay"); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if ua != "test-agent/1.0" {
		t.Errorf("User-Agent = %q, want %q", ua, "test-agent/1.0")
	}
	if reqID == "" {
		t.Error("X-Request-ID header not set")
	}
}
