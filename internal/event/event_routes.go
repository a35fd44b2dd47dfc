package event

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jdmarsh-dev/fieldhouse/config"
	mw "github.com/jdmarsh-dev/fieldhouse/internal/middleware"
)

func RegisterEventRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {

	eventRepo := NewEventRepository(db)
	eventController := NewEventController(eventRepo, appConfig)

	public := router.Group("/public")
	{
		public.GET("/schools/:slug/events", eventController.ListPublicEvents)
	}

	authenticated := router.Group("/")
	authenticated.Use(mw.AuthMiddleware(db))
	{
		schoolEvents := authenticated.Group("/schools/:school_id/events")
		{
			schoolEvents.GET("", eventController.ListEvents)
			schoolEvents.POST("", eventController.CreateEvent)
		}

		events := authenticated.Group("/events")
		{
			events.PUT("/:event_id", eventController.UpdateEvent)
			events.DELETE("/:event_id", eventController.DeleteEvent)
		}
	}
}
