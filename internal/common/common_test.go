package common

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContextWithParam(name, value string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: name, Value: value}}
	return c
}

func TestParseEntityID_Valid(t *testing.T) {
	c := testContextWithParam("school_id", "42")
	id, err := ParseEntityID(c, "school_id")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestParseEntityID_PlaceholderValues(t *testing.T) {
	for _, raw := range []string{"", "null", "NULL", "undefined", "Undefined", "  "} {
		c := testContextWithParam("school_id", raw)
		_, err := ParseEntityID(c, "school_id")
		assert.Error(t, err, "value %q", raw)
	}
}

func TestParseEntityID_NonNumeric(t *testing.T) {
	for _, raw := range []string{"abc", "12abc", "-5", "1.5"} {
		c := testContextWithParam("school_id", raw)
		_, err := ParseEntityID(c, "school_id")
		assert.Error(t, err, "value %q", raw)
	}
}

func TestGetAdminFromContext(t *testing.T) {
	c := testContextWithParam("x", "y")

	_, err := GetAdminFromContext(c)
	assert.Error(t, err)

	want := &AdminIdentity{ID: "user_1", Role: RoleSuperAdmin}
	c.Set(ContextAdminKey, want)

	got, err := GetAdminFromContext(c)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetAdminFromContext_WrongType(t *testing.T) {
	c := testContextWithParam("x", "y")
	c.Set(ContextAdminKey, "not an identity")

	_, err := GetAdminFromContext(c)
	assert.Error(t, err)
}
