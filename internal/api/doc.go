// Package api provides the HTTP handlers for the vocabulary trainer. The
// API is the UI boundary: handlers translate JSON requests into typed
// service calls and map service errors onto HTTP status codes without
// leaking internal error text.
package api
