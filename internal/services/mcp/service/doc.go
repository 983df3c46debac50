// Package service wires the MCP transport to the game tool handlers.
//
// It dials the game gRPC server, registers the tools from the domain package
// and serves them over stdio.
package service
