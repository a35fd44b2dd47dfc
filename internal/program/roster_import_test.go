package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRosterImport_CommaSeparated(t *testing.T) {
	players := ParseRosterImport("John Smith,QB,12,7\nMike Jones,WR,11,81")

	require.Len(t, players, 2)
	assert.Equal(t, "John Smith", players[0].Name)
	assert.Equal(t, "QB", players[0].Position)
	assert.Equal(t, "12", players[0].Grade)
	assert.Equal(t, "7", players[0].JerseyNumber)
	assert.Equal(t, "Mike Jones", players[1].Name)
	assert.NotEmpty(t, players[0].ID)
	assert.NotEqual(t, players[0].ID, players[1].ID)
}

func TestParseRosterImport_TabSeparated(t *testing.T) {
	players := ParseRosterImport("John Smith\tQB\t12\t7")

	require.Len(t, players, 1)
	assert.Equal(t, "John Smith", players[0].Name)
	assert.Equal(t, "QB", players[0].Position)
}

func TestParseRosterImport_TabWinsOverComma(t *testing.T) {
	// A line with tabs splits on tabs, so commas stay inside fields.
	players := ParseRosterImport("Smith, John\tQB\t12\t7")

	require.Len(t, players, 1)
	assert.Equal(t, "Smith, John", players[0].Name)
}

func TestParseRosterImport_SkipsHeaderRow(t *testing.T) {
	players := ParseRosterImport("Name,Position,Grade,Jersey\nJohn Smith,QB,12,7")

	require.Len(t, players, 1)
	assert.Equal(t, "John Smith", players[0].Name)
}

func TestParseRosterImport_PlayerHeaderVariant(t *testing.T) {
	players := ParseRosterImport("PLAYER,POS,GR,#\nJohn Smith,QB,12,7")

	require.Len(t, players, 1)
	assert.Equal(t, "John Smith", players[0].Name)
}

func TestParseRosterImport_FirstLineKeptWhenNotHeader(t *testing.T) {
	players := ParseRosterImport("John Smith,QB,12,7")

	require.Len(t, players, 1)
	assert.Equal(t, "John Smith", players[0].Name)
}

func TestParseRosterImport_DropsEmptyNames(t *testing.T) {
	players := ParseRosterImport("John Smith,QB\n,WR,11,81\n   ,TE")

	require.Len(t, players, 1)
	assert.Equal(t, "John Smith", players[0].Name)
}

func TestParseRosterImport_SkipsBlankLines(t *testing.T) {
	players := ParseRosterImport("John Smith,QB\n\n\nMike Jones,WR")

	assert.Len(t, players, 2)
}

func TestParseRosterImport_WindowsLineEndings(t *testing.T) {
	players := ParseRosterImport("name,pos\r\nJohn Smith,QB,12,7\r\nMike Jones,WR,11,81\r\n")

	require.Len(t, players, 2)
	assert.Equal(t, "John Smith", players[0].Name)
	assert.Equal(t, "Mike Jones", players[1].Name)
}

func TestParseRosterImport_ShortRows(t *testing.T) {
	players := ParseRosterImport("John Smith")

	require.Len(t, players, 1)
	assert.Equal(t, "John Smith", players[0].Name)
	assert.Empty(t, players[0].Position)
	assert.Empty(t, players[0].Grade)
	assert.Empty(t, players[0].JerseyNumber)
}

func TestParseRosterImport_TrimsFields(t *testing.T) {
	players := ParseRosterImport("  John Smith , QB , 12 , 7 ")

	require.Len(t, players, 1)
	assert.Equal(t, "John Smith", players[0].Name)
	assert.Equal(t, "QB", players[0].Position)
	assert.Equal(t, "12", players[0].Grade)
	assert.Equal(t, "7", players[0].JerseyNumber)
}

func TestParseRosterImport_Empty(t *testing.T) {
	assert.Empty(t, ParseRosterImport(""))
	assert.Empty(t, ParseRosterImport("\n\n"))
}
