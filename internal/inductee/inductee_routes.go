package inductee

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jdmarsh-dev/fieldhouse/config"
	"github.com/jdmarsh-dev/fieldhouse/internal/common"
	mw "github.com/jdmarsh-dev/fieldhouse/internal/middleware"
	"github.com/jdmarsh-dev/fieldhouse/pkg/rmiddleware"
)

// RegisterInducteeRoutes wires hall-of-fame endpoints.
func RegisterInducteeRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewInducteeRepository(db)
	controller := NewInducteeController(repo, cfg)

	router.GET("/public/schools/:slug/hall-of-fame", controller.ListPublicInductees)

	authed := router.Group("/")
	authed.Use(mw.AuthMiddleware(db))
	authed.Use(rmiddleware.RoleMiddleware(common.RoleSchoolAdmin, common.RoleSuperAdmin))
	{
		authed.GET("/schools/:school_id/inductees", controller.ListInductees)
		authed.POST("/schools/:school_id/inductees", controller.CreateInductee)
		authed.PUT("/inductees/:inductee_id", controller.UpdateInductee)
		authed.DELETE("/inductees/:inductee_id", controller.DeleteInductee)
	}
}
