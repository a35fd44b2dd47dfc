package admin

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jdmarsh-dev/fieldhouse/config"
	"github.com/jdmarsh-dev/fieldhouse/internal/common"
	mw "github.com/jdmarsh-dev/fieldhouse/internal/middleware"
	"github.com/jdmarsh-dev/fieldhouse/pkg/rmiddleware"
)

// RegisterAdminRoutes wires admin account and invitation endpoints.
func RegisterAdminRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewAdminRepository(db)
	controller := NewAdminController(repo, cfg)

	// Acceptance authenticates with Clerk inside the handler; the caller has
	// no admin account yet so the standard middleware would reject it.
	router.POST("/admins/invites/accept", controller.AcceptInvite)

	authed := router.Group("/")
	authed.Use(mw.AuthMiddleware(db))
	authed.Use(rmiddleware.RoleMiddleware(common.RoleSchoolAdmin, common.RoleSuperAdmin))
	{
		authed.GET("/admins/me", controller.GetCurrentAdmin)
		authed.GET("/admins/platform", rmiddleware.SuperAdminMiddleware(), controller.ListSuperAdmins)
		authed.POST("/admins/invites", controller.CreateInvite)
		authed.DELETE("/admins/invites/:invite_id", controller.RevokeInvite)
		authed.PATCH("/admins/:admin_id/active", controller.SetAdminActive)

		scoped := authed.Group("/schools/:school_id")
		scoped.Use(rmiddleware.SchoolScopeMiddleware("school_id"))
		{
			scoped.GET("/admins", controller.ListSchoolAdmins)
		}
	}
}
