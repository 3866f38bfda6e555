package aur

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

// Kind classifies a failure. The set is closed: every error produced by this
// package carries exactly one of these values.
type Kind string

const (
	// KindIO is an underlying transport or stream I/O failure.
	KindIO Kind = "IO"

	// KindTLS is a secure-connection failure (handshake, certificate).
	KindTLS Kind = "TLS"

	// KindEncoding means response bytes were not valid text where text was
	// required.
	KindEncoding Kind = "ENCODING"

	// KindHTTP is a non-success HTTP status. The error carries the status
	// code and the drained response body.
	KindHTTP Kind = "HTTP"

	// KindService means the AUR itself reported a logical error via the
	// {"type":"error"} envelope. The error carries the service's message.
	KindService Kind = "SERVICE_ERROR"

	// KindInvalidResponse means the envelope or a package record did not
	// match the expected shape or field types.
	KindInvalidResponse Kind = "INVALID_RESPONSE"

	// KindParse means the response body was not syntactically valid JSON.
	// The error carries the parser message and the line and column of the
	// failure.
	KindParse Kind = "PARSE"
)

// Error is the structured error type returned by all operations.
// StatusCode is set only for KindHTTP; Line and Col only for KindParse.
type Error struct {
	Kind       Kind
	Message    string
	Cause      error // underlying error (optional)
	StatusCode int   // HTTP status for KindHTTP
	Line       int   // 1-based line of a JSON syntax error for KindParse
	Col        int   // 1-based column of a JSON syntax error for KindParse
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTP:
		return fmt.Sprintf("%s: status %d: %s", e.Kind, e.StatusCode, e.Message)
	case KindParse:
		return fmt.Sprintf("%s: %s (line %d, column %d)", e.Kind, e.Message, e.Line, e.Col)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsKind reports whether err is an *Error with the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// ErrKind extracts the kind from an error.
// Returns empty string if the error is not an *Error.
func ErrKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func invalidResponse(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidResponse, Message: fmt.Sprintf(format, args...)}
}

func serviceError(message string) *Error {
	return &Error{Kind: KindService, Message: message}
}

func httpError(status int, body string) *Error {
	return &Error{Kind: KindHTTP, StatusCode: status, Message: body}
}

func encodingError(message string) *Error {
	return &Error{Kind: KindEncoding, Message: message}
}

func ioError(cause error) *Error {
	return &Error{Kind: KindIO, Message: "request failed", Cause: cause}
}

// transportError translates an error returned by the HTTP collaborator into
// the taxonomy. TLS handshake and certificate failures map to KindTLS,
// everything else to KindIO. This is the only place net/http error types are
// inspected; they never cross the public surface.
func transportError(err error) *Error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		err = uerr.Err
	}
	if isTLSError(err) {
		return &Error{Kind: KindTLS, Message: "secure connection failed", Cause: err}
	}
	return ioError(err)
}

func isTLSError(err error) bool {
	var (
		record tls.RecordHeaderError
		verify *tls.CertificateVerificationError
		author x509.UnknownAuthorityError
		cert   x509.CertificateInvalidError
		host   x509.HostnameError
	)
	return errors.As(err, &record) ||
		errors.As(err, &verify) ||
		errors.As(err, &author) ||
		errors.As(err, &cert) ||
		errors.As(err, &host)
}

// parseError translates a JSON syntax failure into the taxonomy, resolving
// the parser's byte offset into a line and column within data.
func parseError(err *json.SyntaxError, data []byte) *Error {
	line, col := lineCol(data, err.Offset)
	return &Error{Kind: KindParse, Message: err.Error(), Line: line, Col: col}
}

// lineCol converts a byte offset into 1-based line and column numbers.
func lineCol(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col = 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
