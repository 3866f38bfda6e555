package aur

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode:    status,
		ContentLength: int64(len(body)),
		Body:          io.NopCloser(strings.NewReader(body)),
	}
}

func TestInterpret_ServiceError(t *testing.T) {
	_, err := interpret(response(200, `{"type":"error","results":"boom"}`))
	if !IsKind(err, KindService) {
		t.Fatalf("expected service error, got %v", err)
	}
	var e *Error
	if !errors.As(err, &e) || e.Message != "boom" {
		t.Errorf("message = %q, want %q", e.Message, "boom")
	}
}

func TestInterpret_ServiceErrorNonStringMessage(t *testing.T) {
	// A non-string results value is rendered as canonical JSON.
	_, err := interpret(response(200, `{"type":"error","results":["a",1]}`))
	if !IsKind(err, KindService) {
		t.Fatalf("expected service error, got %v", err)
	}
	var e *Error
	if !errors.As(err, &e) || e.Message != `["a",1]` {
		t.Errorf("message = %q, want %q", e.Message, `["a",1]`)
	}
}

func TestInterpret_InvalidEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing results", `{"type":"search"}`},
		{"missing type", `{"results":[]}`},
		{"missing both", `{}`},
		{"top-level array", `[]`},
		{"top-level string", `"hello"`},
		{"type not a string", `{"type":42,"results":[]}`},
		{"type null", `{"type":null,"results":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := interpret(response(200, tt.body))
			if !IsKind(err, KindInvalidResponse) {
				t.Errorf("expected invalid response, got %v", err)
			}
		})
	}
}

func TestInterpret_UnknownTypeIsSuccess(t *testing.T) {
	// The interpreter only special-cases the literal "error"; any other type
	// string passes through, including ones no operation would produce.
	results, err := interpret(response(200, `{"type":"somethingelse","results":[1,2]}`))
	if err != nil {
		t.Fatalf("interpret failed: %v", err)
	}
	arr, ok := results.([]any)
	if !ok || len(arr) != 2 {
		t.Errorf("results = %#v, want a 2-element array", results)
	}
}

func TestInterpret_HTTPError(t *testing.T) {
	_, err := interpret(response(429, "rate limited"))
	if !IsKind(err, KindHTTP) {
		t.Fatalf("expected http error, got %v", err)
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("not an *Error")
	}
	if e.StatusCode != 429 {
		t.Errorf("status = %d, want 429", e.StatusCode)
	}
	if e.Message != "rate limited" {
		t.Errorf("message = %q, want %q", e.Message, "rate limited")
	}
}

func TestInterpret_HTTPErrorBodyNotUTF8(t *testing.T) {
	_, err := interpret(response(500, "\xff\xfe"))
	if !IsKind(err, KindEncoding) {
		t.Errorf("expected encoding error, got %v", err)
	}
}

func TestInterpret_ParseError(t *testing.T) {
	_, err := interpret(response(200, "{\n  \"type\": }"))
	if !IsKind(err, KindParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("not an *Error")
	}
	if e.Line != 2 {
		t.Errorf("line = %d, want 2", e.Line)
	}
	if e.Col == 0 {
		t.Error("column not set")
	}
}

func TestInterpret_TrailingData(t *testing.T) {
	_, err := interpret(response(200, `{"type":"info","results":[]}garbage`))
	if !IsKind(err, KindParse) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestInterpret_TruncatedBody(t *testing.T) {
	_, err := interpret(response(200, `{"type":"info","results`))
	if !IsKind(err, KindParse) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestLineCol(t *testing.T) {
	data := []byte("ab\ncde\nf")
	tests := []struct {
		offset    int64
		line, col int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{6, 2, 4},
		{8, 3, 2},
		{99, 3, 2}, // clamped to end of input
	}
	for _, tt := range tests {
		line, col := lineCol(data, tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("lineCol(%d) = (%d, %d), want (%d, %d)", tt.offset, line, col, tt.line, tt.col)
		}
	}
}
