package school

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSlug(t *testing.T) {
	assert.Equal(t, "lincoln-high", NormalizeSlug("  Lincoln-High  "))
	assert.Equal(t, "west", NormalizeSlug("WEST"))
}

func TestValidateSlug_Valid(t *testing.T) {
	for _, slug := range []string{"ab", "lincoln-high", "west2", "a1-b2-c3"} {
		assert.NoError(t, ValidateSlug(slug), slug)
	}
}

func TestValidateSlug_Invalid(t *testing.T) {
	cases := []string{
		"",
		"a",
		"-lincoln",
		"lincoln-",
		"lincoln high",
		"Lincoln",
		"under_score",
		strings.Repeat("a", 64),
	}
	for _, slug := range cases {
		assert.Error(t, ValidateSlug(slug), slug)
	}
}

func TestValidateSlug_MaxLengthBoundary(t *testing.T) {
	assert.NoError(t, ValidateSlug(strings.Repeat("a", 63)))
}
