// Package foreman provides a minimal client for the Foreman API v2.
//
// It exposes the five generic resource operations the reconciler needs
// (search, get, create, update, delete) over the collections it touches:
// domains, organizations, locations, and smart proxies. Connection handling,
// authentication, and error decoding live here; the package performs no
// retries and no pagination, and it never interprets remote error codes
// beyond relaying the message.
//
// # Client Interface
//
// The Client interface abstracts the HTTP transport, making it easy to mock
// API interactions for unit testing (see core/foreman/mocks).
//
// # Conventions
//
//   - Search uses Foreman search syntax (name="value") and returns the first
//     match, or nil when nothing matches.
//   - Write payloads are wrapped in the singular root element Foreman
//     expects, e.g. {"domain": {...}}.
//   - Non-2xx responses become *APIError carrying the remote message.
//
// # Usage
//
//	client, err := foreman.NewClient(cfg, log)
//	record, err := client.Search(ctx, foreman.Domains, map[string]string{"name": "example.com"})
package foreman
