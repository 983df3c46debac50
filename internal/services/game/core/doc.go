// Package core holds service-level helpers shared by the game API and its
// storage backends that are not game rules themselves.
//
//   - filter: AIP-160 battle history filters, translated to SQL or to an
//     in-memory predicate
package core
