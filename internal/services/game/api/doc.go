// Package api contains the game service transports.
//
// Subpackages:
//   - grpc/game: the GameService handlers and the use cases behind them
//   - grpc/metadata: request metadata helpers and interceptors
//   - grpc/interceptors: error translation and audit logging
//
// MCP tools and the CLI call these gRPC services through their clients.
package api
