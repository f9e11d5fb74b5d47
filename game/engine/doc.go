// Package engine implements the board rules for the 3x3 match game.
//
// The package is deliberately tiny and stateless: a Board is a value, and
// Evaluate inspects a snapshot for a winning line or exhaustion without
// mutating anything. Turn order, seating, and lifecycle live one layer up
// in the session package.
//
// Usage:
//
//	var b engine.Board
//	b[4] = engine.MarkX
//	res := engine.Evaluate(b)
//	if res.Winner != engine.Empty {
//		// someone completed a line
//	}
package engine
