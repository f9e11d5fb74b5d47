package engine

// Mark is a player's symbol on the board. The zero value is an empty cell.
type Mark string

const (
	Empty Mark = ""
	MarkX Mark = "X"
	MarkO Mark = "O"
)

// Opponent returns the other playable mark.
func (m Mark) Opponent() Mark {
	if m == MarkX {
		return MarkO
	}
	return MarkX
}

// Cells is the number of cells on the 3x3 board.
const Cells = 9

// Board is a 3x3 grid in row-major order: cell 0 is the top-left corner,
// cell 8 the bottom-right.
type Board [Cells]Mark

// Result is the outcome of evaluating a board snapshot.
type Result struct {
	Winner Mark `json:"winner,omitempty"`
	IsFull bool `json:"is_full"`
}

// Terminal reports whether the board can accept no further moves.
func (r Result) Terminal() bool {
	return r.Winner != Empty || r.IsFull
}

// triples are the eight winning lines: three rows, three columns, two diagonals.
var triples = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Evaluate checks a board snapshot for a winner and for exhaustion.
// A winner exists iff some triple's three cells hold the same non-empty
// mark. Evaluate is pure and deterministic: eight fixed comparisons plus
// one fullness scan.
func Evaluate(b Board) Result {
	var res Result
	for _, t := range triples {
		if m := b[t[0]]; m != Empty && m == b[t[1]] && m == b[t[2]] {
			res.Winner = m
			break
		}
	}
	res.IsFull = true
	for _, c := range b {
		if c == Empty {
			res.IsFull = false
			break
		}
	}
	return res
}
