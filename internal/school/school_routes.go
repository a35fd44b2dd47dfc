package school

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jdmarsh-dev/fieldhouse/config"
	mw "github.com/jdmarsh-dev/fieldhouse/internal/middleware"
	"github.com/jdmarsh-dev/fieldhouse/pkg/rmiddleware"
)

func RegisterSchoolRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {

	schoolRepo := NewSchoolRepository(db)
	schoolController := NewSchoolController(schoolRepo, appConfig)

	// Public tenant resolution (subdomain -> school)
	publicSchools := router.Group("/public/schools")
	{
		publicSchools.GET("/:slug", schoolController.GetSchoolBySlug)
	}

	authenticated := router.Group("/")
	authenticated.Use(mw.AuthMiddleware(db))
	{
		// Provisioning and platform operations - super admin only
		superAdmin := authenticated.Group("/schools")
		superAdmin.Use(rmiddleware.SuperAdminMiddleware())
		{
			superAdmin.POST("", schoolController.CreateSchool)
			superAdmin.GET("", schoolController.GetAllSchools)
			superAdmin.GET("/slug-check", schoolController.CheckSlug)
			superAdmin.PATCH("/:school_id/active", schoolController.SetActive)
			superAdmin.DELETE("/:school_id", schoolController.PurgeSchool)
		}

		// Tenant-scoped reads and branding/info mutations
		tenant := authenticated.Group("/schools/:school_id")
		tenant.Use(rmiddleware.SchoolScopeMiddleware("school_id"))
		{
			tenant.GET("", schoolController.GetSchool)
			tenant.PUT("/branding", schoolController.UpdateBranding)
			tenant.PUT("/info", schoolController.UpdateInfo)
		}
	}
}
