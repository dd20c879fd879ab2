// Package server runs the backend's transports: the chi HTTP API and the
// optional gRPC health listener. It starts every configured transport,
// waits for SIGTERM, SIGINT or SIGQUIT and shuts them down gracefully.
package server
