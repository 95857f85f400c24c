package netlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedLine(t *testing.T, a *Assembler, pos *Position, line string) {
	t.Helper()
	toks, err := Tokenize(line, pos)
	require.NoError(t, err)
	pos.Line++
	a.Feed(toks)
}

func TestAssemblerAcrossLines(t *testing.T) {
	var a Assembler
	pos := Position{Line: 1}

	feedLine(t, &a, &pos, "type NAND")
	_, ok := a.Next()
	assert.False(t, ok, "statement is not complete yet")

	first, ok := a.Pending()
	require.True(t, ok)
	assert.Equal(t, "type", first.Text)
	assert.Equal(t, 1, first.Pos.Line)

	feedLine(t, &a, &pos, "  a b y:out; cell u1")
	stmt, ok := a.Next()
	require.True(t, ok)
	assert.Len(t, stmt, 8)
	assert.Equal(t, TokenEOT, stmt[len(stmt)-1].Kind)
	assert.Equal(t, 2, stmt[len(stmt)-1].Pos.Line)

	_, ok = a.Next()
	assert.False(t, ok)
	assert.Error(t, a.Finish())

	feedLine(t, &a, &pos, ":NAND;;")
	stmt, ok = a.Next()
	require.True(t, ok)
	assert.Equal(t, "cell", stmt[0].Text)
	stmt, ok = a.Next()
	require.True(t, ok)
	assert.Len(t, stmt, 1, "empty statement is just its terminator")

	_, ok = a.Pending()
	assert.False(t, ok)
	assert.NoError(t, a.Finish())
}

func TestAssemblerFinishPosition(t *testing.T) {
	var a Assembler
	pos := Position{Filename: "x.nl", Line: 1}
	feedLine(t, &a, &pos, "")
	feedLine(t, &a, &pos, "   wire w")

	err := a.Finish()
	require.Error(t, err)
	assert.Equal(t, "x.nl:2:4: end of file expected", err.Error())
}
