// Package server composes the game gRPC entrypoint.
//
// It opens the SQLite store, builds the RNG and wires the game service,
// health checks and interceptors into a runnable server instance.
package server
