// Package session implements the match lifecycle and its supporting
// registries.
//
// A Session is one match between two seated participants: the seats, the
// board, whose turn it is, and a status that moves through
// waiting → playing → finished → playing (auto-reset), or to destroyed when
// an occupant departs. Every mutation goes through the same ordered
// validation in ApplyMove, so a rejected move never leaves the session
// partially changed.
//
// Concurrency:
//
// Each Session owns a mutex, so two moves for the same session can never
// interleave; moves are applied in the order their validation completes.
// The Registry and the Directory each guard their maps with a separate
// short-held lock, and no code path holds more than one of these locks at
// a time. The auto-reset timer is a cancellable handle owned by the
// Session: Destroy cancels it, and a timer that fires after destruction is
// a no-op.
//
// Usage:
//
//	reg := session.NewRegistry()
//	sess := reg.Create("match3x3")
//	sess.AddSeat(connA, "alice") // seat X, moves first
//	sess.AddSeat(connB, "bob")   // seat O
//
//	res, err := sess.ApplyMove(connA, 4)
package session
