// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and the JSON error vocabulary
// for the REST API. Token verification, principal resolution, tracing,
// and logging concerns are all handled at this layer before requests are
// forwarded to the service layer.
package http
