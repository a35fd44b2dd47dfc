package media

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jdmarsh-dev/fieldhouse/config"
	"github.com/jdmarsh-dev/fieldhouse/internal/common"
	mw "github.com/jdmarsh-dev/fieldhouse/internal/middleware"
	"github.com/jdmarsh-dev/fieldhouse/pkg/rmiddleware"
)

// RegisterMediaRoutes wires upload and screensaver endpoints.
func RegisterMediaRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewMediaRepository(db)
	storage := NewLocalStorage(cfg.App.UploadDir, cfg.App.PublicURL)
	controller := NewMediaController(repo, storage, cfg)

	router.GET("/public/schools/:slug/screensaver", controller.ListPublicScreensaver)

	authed := router.Group("/")
	authed.Use(mw.AuthMiddleware(db))
	authed.Use(rmiddleware.RoleMiddleware(common.RoleSchoolAdmin, common.RoleSuperAdmin))
	{
		authed.POST("/schools/:school_id/media", controller.UploadMedia)
		authed.GET("/schools/:school_id/screensaver", controller.ListScreensaverImages)
		authed.POST("/schools/:school_id/screensaver", controller.AddScreensaverImage)
		authed.PUT("/screensaver/:image_id", controller.UpdateScreensaverImage)
		authed.DELETE("/screensaver/:image_id", controller.DeleteScreensaverImage)
	}
}
