package aur

import (
	"net/url"
	"strings"
)

// RPC operation names recognized by the service.
const (
	opSearch    = "search"
	opMSearch   = "msearch"
	opInfo      = "info"
	opMultiInfo = "multiinfo"
)

// rpcURL builds the request URL for a single-argument operation. The query
// string is exactly "type=<op>&arg=<value>" with the value percent-encoded.
// Parameter order is part of the wire contract, so the query is assembled by
// hand; url.Values sorts keys and cannot be used here.
func rpcURL(base, op, arg string) string {
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("?type=")
	b.WriteString(url.QueryEscape(op))
	b.WriteString("&arg=")
	b.WriteString(url.QueryEscape(arg))
	return b.String()
}

// rpcMultiURL builds the request URL for multiinfo: "type=multiinfo" followed
// by one "arg[]=<value>" pair per element, in input order, each value
// percent-encoded independently. An empty args slice yields a URL with zero
// arg[] pairs; the service decides what that means.
func rpcMultiURL(base, op string, args []string) string {
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("?type=")
	b.WriteString(url.QueryEscape(op))
	for _, arg := range args {
		b.WriteString("&arg[]=")
		b.WriteString(url.QueryEscape(arg))
	}
	return b.String()
}
