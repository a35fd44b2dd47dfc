package common

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// Context keys
	ContextAdminKey = "currentAdmin" // Key to store the authenticated admin identity
)

// AdminIdentity is the authenticated caller placed on the request context by
// the auth middleware. SchoolID is nil for super admins.
type AdminIdentity struct {
	ID       string // external auth subject id
	SchoolID *uint
	Role     string
	Email    string
}

const (
	RoleSchoolAdmin = "school_admin"
	RoleSuperAdmin  = "super_admin"
)

// GetAdminFromContext retrieves the authenticated admin from the Gin context.
func GetAdminFromContext(c *gin.Context) (*AdminIdentity, error) {
	v, exists := c.Get(ContextAdminKey)
	if !exists {
		return nil, errors.New("admin identity not found in context")
	}
	ident, ok := v.(*AdminIdentity)
	if !ok {
		return nil, fmt.Errorf("admin identity in context has unexpected type %T", v)
	}
	return ident, nil
}

// ParseEntityID parses a numeric path parameter. Corrupted client state has
// historically produced literal "null"/"undefined" id strings; those are
// rejected here before any query runs.
func ParseEntityID(c *gin.Context, param string) (uint, error) {
	raw := strings.TrimSpace(c.Param(param))
	if raw == "" || strings.EqualFold(raw, "null") || strings.EqualFold(raw, "undefined") {
		return 0, fmt.Errorf("invalid %s: received placeholder value %q", param, raw)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not a numeric id", param, raw)
	}
	return uint(id), nil
}
