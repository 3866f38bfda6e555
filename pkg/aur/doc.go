// Package aur is a client for the AUR (Arch User Repository) RPC service.
//
// # Overview
//
// The client exposes the four read-only operations of the RPC v1 protocol:
//
//   - [Client.Search]: search packages by name pattern
//   - [Client.MSearch]: search packages by maintainer
//   - [Client.Info]: look up a single package by name
//   - [Client.MultiInfo]: look up several packages in one call
//
// Every call is one blocking HTTP GET against the RPC endpoint. Responses
// arrive in a {type, results} JSON envelope; the client unwraps the envelope,
// validates every field of each package object, and returns typed [Package]
// records. Nothing is cached or retried: each operation is a single
// independent round trip, and callers decide how to react to failures.
//
// # Usage
//
//	client, err := aur.NewClient(aur.Config{})
//	pkgs, err := client.Search(ctx, "firefox")
//
// # Errors
//
// All failures surface as an [*Error] carrying one of the closed set of
// [Kind] values. Transport and parser failures are translated at the
// boundary, so callers never see net/http or encoding/json error types.
// See [Kind] for the taxonomy.
package aur
