// Package game implements monsterdex.game.v1.GameService.
//
// Messages are plain Go structs carried by the JSON codec registered in
// internal/platform/grpc, so the service is declared with a hand-written
// grpc.ServiceDesc instead of generated stubs. Handlers validate requests and
// delegate to the application types in the *_application.go files, which own
// locking, persistence and achievement evaluation.
package game
