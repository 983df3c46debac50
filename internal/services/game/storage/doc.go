// Package storage defines persistence interfaces for the game service.
//
// It covers reference content (types, species, achievements), players, owned
// monsters, battle history and achievement unlocks. Implementations live in
// subpackages: sqlite for durable storage and memory for tests and
// throwaway scenario runs.
//
// Common error types:
//   - ErrNotFound: requested record is missing
//   - ErrPlayerNameTaken: a player with the same name already exists
package storage
