// Package grpc contains the gRPC transport for the game service.
package grpc
