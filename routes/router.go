package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/jdmarsh-dev/fieldhouse/config"
	"github.com/jdmarsh-dev/fieldhouse/internal/admin"
	"github.com/jdmarsh-dev/fieldhouse/internal/event"
	"github.com/jdmarsh-dev/fieldhouse/internal/inductee"
	"github.com/jdmarsh-dev/fieldhouse/internal/media"
	"github.com/jdmarsh-dev/fieldhouse/internal/program"
	"github.com/jdmarsh-dev/fieldhouse/internal/school"
)

// SetupRoutes builds the HTTP router with every feature package mounted.
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsConfig))

	// Uploaded media is served straight from disk.
	r.Static("/uploads", cfg.App.UploadDir)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	root := &r.RouterGroup
	school.RegisterSchoolRoutes(root, db, cfg)
	program.RegisterProgramRoutes(root, db, cfg)
	event.RegisterEventRoutes(root, db, cfg)
	inductee.RegisterInducteeRoutes(root, db, cfg)
	admin.RegisterAdminRoutes(root, db, cfg)
	media.RegisterMediaRoutes(root, db, cfg)

	return r
}
