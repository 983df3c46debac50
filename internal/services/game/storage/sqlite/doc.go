// Package sqlite implements the game repository on SQLite.
//
// The schema lives in embedded migrations applied at open. Every write the
// battle and catch flows make goes through RunInTx so a failure leaves the
// database untouched.
package sqlite
