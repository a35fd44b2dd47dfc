package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerList_ScanDropsInvalidEntries(t *testing.T) {
	raw := `[
		{"id":"a1","name":"John Smith","position":"QB"},
		{"id":"","name":"No Id"},
		{"id":"b2","name":""},
		{"id":"c3","name":"Mike Jones"}
	]`

	var pl PlayerList
	require.NoError(t, pl.Scan([]byte(raw)))

	require.Len(t, pl, 2)
	assert.Equal(t, "John Smith", pl[0].Name)
	assert.Equal(t, "Mike Jones", pl[1].Name)
}

func TestPlayerList_ScanNilAndEmpty(t *testing.T) {
	var pl PlayerList
	require.NoError(t, pl.Scan(nil))
	assert.Empty(t, pl)

	require.NoError(t, pl.Scan([]byte{}))
	assert.Empty(t, pl)
}

func TestPlayerList_ScanStringSource(t *testing.T) {
	var pl PlayerList
	require.NoError(t, pl.Scan(`[{"id":"a1","name":"John Smith"}]`))
	require.Len(t, pl, 1)
}

func TestPlayerList_ScanMalformedJSON(t *testing.T) {
	var pl PlayerList
	assert.Error(t, pl.Scan([]byte("{not json")))
}

func TestPlayerList_ValueOnNil(t *testing.T) {
	var pl PlayerList
	v, err := pl.Value()
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(v.([]byte)))
}

func TestPlayer_Valid(t *testing.T) {
	assert.True(t, Player{ID: "a1", Name: "John Smith"}.Valid())
	assert.False(t, Player{Name: "John Smith"}.Valid())
	assert.False(t, Player{ID: "a1"}.Valid())
}

func TestRecordList_RoundTrip(t *testing.T) {
	rl := RecordList{{ID: "r1", Name: "Most points", Description: "58 in one game"}}
	v, err := rl.Value()
	require.NoError(t, err)

	var out RecordList
	require.NoError(t, out.Scan(v))
	require.Len(t, out, 1)
	assert.Equal(t, "Most points", out[0].Name)
}
