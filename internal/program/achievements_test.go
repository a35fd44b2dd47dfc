package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAchievements_Empty(t *testing.T) {
	got, ok := NormalizeAchievements("")
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestNormalizeAchievements_JSONArray(t *testing.T) {
	got, ok := NormalizeAchievements(`["State Champions","Region Champions"]`)
	assert.True(t, ok)
	assert.Equal(t, []string{"State Champions", "Region Champions"}, got)
}

func TestNormalizeAchievements_MalformedJSON(t *testing.T) {
	got, ok := NormalizeAchievements(`["State Champions",`)
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestNormalizeAchievements_NewlineText(t *testing.T) {
	got, ok := NormalizeAchievements("State Champions\nRegion Champions\n")
	assert.True(t, ok)
	assert.Equal(t, []string{"State Champions", "Region Champions"}, got)
}

func TestNormalizeAchievements_TrimsAndDropsEmpties(t *testing.T) {
	got, ok := NormalizeAchievements("  State Champions  \n\n   \nRegion Champions")
	assert.True(t, ok)
	assert.Equal(t, []string{"State Champions", "Region Champions"}, got)
}

func TestNormalizeAchievements_JSONArrayWithEmptyEntries(t *testing.T) {
	got, ok := NormalizeAchievements(`["State Champions",""," "]`)
	assert.True(t, ok)
	assert.Equal(t, []string{"State Champions"}, got)
}
