// Package pipedrive implements the CRM person store against the Pipedrive
// REST API (v1).
//
// # Endpoints
//
//   - GET  {base}/v1/persons/search?term={name}
//   - POST {base}/v1/persons
//   - PUT  {base}/v1/persons/{id}
//
// The base URL is https://{domain}.pipedrive.com, or https://{domain} when
// the configured company domain already is a pipedrive.com host. Every request
// carries the API token in the x-api-token header.
//
// # Error Handling
//
// All failures are returned as [*APIError], classified by [Classify] in this
// order: network connectivity, timeout, HTTP status, unexpected. Nothing is
// retried. The only tolerated failure is a search response without
// data.items, which is logged and reported as "no match".
//
// # Rate Limiting
//
// Requests are paced by a token bucket. When a response reports that the
// remaining quota is exhausted, the next request waits for the advertised
// reset. Failed requests are never re-sent.
package pipedrive
