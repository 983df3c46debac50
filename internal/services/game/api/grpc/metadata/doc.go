// Package metadata handles the gRPC headers shared by game API callers.
//
// # Header Constants
//
//   - RequestIDHeader: correlates logs across CLI, MCP and scenario calls.
//   - InvocationIDHeader: tracks MCP tool invocations.
//   - AcceptLanguageHeader: selects the locale for error messages.
package metadata
