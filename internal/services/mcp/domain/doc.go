// Package domain defines the MCP tools exposed over the game API: their
// schemas, their handlers and the mapping from gRPC responses to tool output.
package domain
