package game

import (
	"errors"
	"strings"
)

var (
	errRowNotFull = errors.New("game: advance on a row that is not full")
	errLastRow    = errors.New("game: advance past the last row")
)

// Grid is the rows × cols letter matrix and its entry cursor.
// Only the current row left of the cursor ever holds letters that have not
// been submitted; everything after the cursor is empty.
type Grid struct {
	rows, cols int
	cells      [][]rune // 0 means empty
	row, col   int
}

// NewGrid allocates an empty grid. Callers validate rows and cols.
func NewGrid(rows, cols int) *Grid {
	cells := make([][]rune, rows)
	for i := range cells {
		cells[i] = make([]rune, cols)
	}
	return &Grid{rows: rows, cols: cols, cells: cells}
}

// InsertLetter writes r at the cursor and moves right.
// Returns false (and does nothing) when the row is full.
func (g *Grid) InsertLetter(r rune) bool {
	if g.col == g.cols {
		return false
	}
	g.cells[g.row][g.col] = r
	g.col++
	return true
}

// DeleteLetter clears the cell left of the cursor.
// Returns false (and does nothing) when the row is empty.
func (g *Grid) DeleteLetter() bool {
	if g.col == 0 {
		return false
	}
	g.col--
	g.cells[g.row][g.col] = 0
	return true
}

// CurrentRowText returns the letters entered on the current row.
func (g *Grid) CurrentRowText() string {
	var b strings.Builder
	for _, r := range g.cells[g.row][:g.col] {
		b.WriteRune(r)
	}
	return b.String()
}

// IsRowFull reports whether the cursor reached the last column.
func (g *Grid) IsRowFull() bool { return g.col == g.cols }

// AdvanceRow moves the cursor to the start of the next row.
// It fails when the row is not full or when the current row is the last one;
// the session resolves the outcome before ever asking for that.
func (g *Grid) AdvanceRow() error {
	if !g.IsRowFull() {
		return errRowNotFull
	}
	if g.row >= g.rows-1 {
		return errLastRow
	}
	g.row++
	g.col = 0
	return nil
}

func (g *Grid) Row() int  { return g.row }
func (g *Grid) Col() int  { return g.col }
func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// Cells returns a copy of the matrix as strings ("" for empty cells).
func (g *Grid) Cells() [][]string {
	out := make([][]string, g.rows)
	for i, row := range g.cells {
		out[i] = make([]string, g.cols)
		for j, r := range row {
			if r != 0 {
				out[i][j] = string(r)
			}
		}
	}
	return out
}
