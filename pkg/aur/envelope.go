package aur

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"unicode/utf8"
)

// interpret turns one HTTP response into the raw "results" value from the
// RPC envelope, or a typed error. The envelope is {type, results}; a type of
// "error" is the service reporting a logical failure, any other type string
// is success. The results value is returned unexamined because its shape
// depends on the operation; unknown type strings are deliberately accepted.
func interpret(resp *http.Response) (any, error) {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, err := drainBody(resp)
		if err != nil {
			return nil, err
		}
		return nil, httpError(resp.StatusCode, msg)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ioError(err)
	}
	v, err := decodeValue(body)
	if err != nil {
		return nil, err
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, invalidResponse("envelope is not a JSON object")
	}
	typ, hasType := obj["type"]
	results, hasResults := obj["results"]
	if !hasType || !hasResults {
		return nil, invalidResponse("envelope missing type or results")
	}
	s, ok := typ.(string)
	if !ok {
		return nil, invalidResponse("envelope type is not a string")
	}
	if s == "error" {
		return nil, serviceError(renderMessage(results))
	}
	return results, nil
}

// drainBody reads the full body of a failed response as text, pre-sizing the
// buffer when the content length is known.
func drainBody(resp *http.Response) (string, error) {
	var buf bytes.Buffer
	if resp.ContentLength > 0 {
		buf.Grow(int(resp.ContentLength))
	}
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return "", ioError(err)
	}
	if !utf8.Valid(buf.Bytes()) {
		return "", encodingError("response body is not valid UTF-8")
	}
	return buf.String(), nil
}

// decodeValue parses data into a generic JSON value. Numbers decode as
// json.Number so the record mapper can distinguish integers from floats.
// Trailing non-whitespace after the top-level value is a syntax error.
func decodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, decodeError(err, data)
	}
	if err := dec.Decode(new(any)); !errors.Is(err, io.EOF) {
		line, col := lineCol(data, dec.InputOffset())
		return nil, &Error{Kind: KindParse, Message: "unexpected data after JSON value", Line: line, Col: col}
	}
	return v, nil
}

func decodeError(err error, data []byte) *Error {
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return parseError(syn, data)
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		line, col := lineCol(data, int64(len(data)))
		return &Error{Kind: KindParse, Message: "unexpected end of JSON input", Line: line, Col: col}
	}
	return ioError(err)
}

// renderMessage produces the text of a service-reported error: the results
// value itself when it is a string, otherwise its canonical JSON rendering.
func renderMessage(results any) string {
	if s, ok := results.(string); ok {
		return s
	}
	b, err := json.Marshal(results)
	if err != nil {
		return "unrepresentable error message"
	}
	return string(b)
}
