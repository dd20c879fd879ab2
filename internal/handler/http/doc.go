// Package http implements the HTTP transport layer of the backend.
//
// It exposes route wiring, request handlers, and middleware for the REST
// API: the identity directory under /api/auth, the resident and item
// collections, and the reporting endpoint. Request tracing, access logging,
// response compression and bearer authentication are handled here before
// requests are delegated to the service layer.
package http
