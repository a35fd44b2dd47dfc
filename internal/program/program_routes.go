package program

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jdmarsh-dev/fieldhouse/config"
	mw "github.com/jdmarsh-dev/fieldhouse/internal/middleware"
)

func RegisterProgramRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {

	programRepo := NewProgramRepository(db)
	programController := NewProgramController(programRepo, appConfig)

	// Public program display for tenant-facing pages
	public := router.Group("/public")
	{
		public.GET("/programs/:program_id", programController.GetPublicProgramDetail)
	}

	authenticated := router.Group("/")
	authenticated.Use(mw.AuthMiddleware(db))
	{
		// Program directory and creation live under the owning school;
		// tenant scoping is enforced per program inside the handlers.
		schoolPrograms := authenticated.Group("/schools/:school_id/programs")
		{
			schoolPrograms.GET("", programController.GetProgramDirectory)
			schoolPrograms.POST("", programController.CreateProgram)
		}

		programs := authenticated.Group("/programs")
		{
			programs.GET("/:program_id", programController.GetProgram)
			programs.PUT("/:program_id", programController.UpdateProgram)
			programs.DELETE("/:program_id", programController.DeleteProgram)

			programs.GET("/:program_id/seasons", programController.ListSeasons)
			programs.POST("/:program_id/seasons", programController.UpsertSeason)
			programs.POST("/:program_id/seasons/bootstrap", programController.BootstrapSeason)
		}

		seasons := authenticated.Group("/seasons")
		{
			seasons.DELETE("/:season_id", programController.DeleteSeason)

			seasons.POST("/:season_id/roster", programController.AddPlayer)
			seasons.PUT("/:season_id/roster", programController.ReplaceRoster)
			seasons.PUT("/:season_id/roster/:player_id", programController.UpdatePlayer)
			seasons.DELETE("/:season_id/roster/:player_id", programController.RemovePlayer)
			seasons.POST("/:season_id/roster/import", programController.BulkImportRoster)
		}
	}
}
