package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSlice_ScanPlainArray(t *testing.T) {
	var s StringSlice
	require.NoError(t, s.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, StringSlice{"a", "b"}, s)
}

func TestStringSlice_ScanDoubleEncoded(t *testing.T) {
	// Legacy rows stored the array as a JSON string.
	var s StringSlice
	require.NoError(t, s.Scan([]byte(`"[\"a\",\"b\"]"`)))
	assert.Equal(t, StringSlice{"a", "b"}, s)
}

func TestStringSlice_ScanNil(t *testing.T) {
	var s StringSlice
	require.NoError(t, s.Scan(nil))
	assert.Empty(t, s)
}

func TestStringSlice_ScanStringSource(t *testing.T) {
	var s StringSlice
	require.NoError(t, s.Scan(`["x"]`))
	assert.Equal(t, StringSlice{"x"}, s)
}

func TestStringSlice_ScanMalformed(t *testing.T) {
	var s StringSlice
	assert.Error(t, s.Scan([]byte(`{broken`)))
}

func TestStringSlice_ValueOnNil(t *testing.T) {
	var s StringSlice
	v, err := s.Value()
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(v.([]byte)))
}

func TestContactInfo_RoundTrip(t *testing.T) {
	ci := ContactInfo{Email: "ad@example.org", Phone: "555-0100", Address: "1 Main St"}
	v, err := ci.Value()
	require.NoError(t, err)

	var out ContactInfo
	require.NoError(t, out.Scan(v))
	assert.Equal(t, ci, out)
}
