package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridInsertDeleteRoundTrip(t *testing.T) {
	g := NewGrid(2, 3)
	require.True(t, g.InsertLetter('a'))
	col := g.Col()

	require.True(t, g.InsertLetter('b'))
	require.True(t, g.DeleteLetter())

	assert.Equal(t, col, g.Col())
	assert.Equal(t, []string{"a", "", ""}, g.Cells()[0])
	assert.Equal(t, "a", g.CurrentRowText())
}

func TestGridBounds(t *testing.T) {
	g := NewGrid(2, 2)
	assert.False(t, g.DeleteLetter(), "empty row")

	g.InsertLetter('x')
	g.InsertLetter('y')
	assert.True(t, g.IsRowFull())
	assert.False(t, g.InsertLetter('z'), "full row")
	assert.Equal(t, "xy", g.CurrentRowText())
}

func TestGridAdvanceRow(t *testing.T) {
	g := NewGrid(2, 2)
	assert.ErrorIs(t, g.AdvanceRow(), errRowNotFull)

	g.InsertLetter('a')
	g.InsertLetter('b')
	require.NoError(t, g.AdvanceRow())
	assert.Equal(t, 1, g.Row())
	assert.Equal(t, 0, g.Col())
	assert.Equal(t, "", g.CurrentRowText())

	g.InsertLetter('c')
	g.InsertLetter('d')
	assert.ErrorIs(t, g.AdvanceRow(), errLastRow)
	assert.Equal(t, 1, g.Row(), "unchanged after a refused advance")
	assert.Equal(t, 2, g.Col())

	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, g.Cells())
}

func TestGridCellsIsACopy(t *testing.T) {
	g := NewGrid(1, 2)
	g.InsertLetter('a')
	cells := g.Cells()
	cells[0][0] = "z"
	assert.Equal(t, "a", g.CurrentRowText())
}
