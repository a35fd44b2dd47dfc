package main

import (
	"os"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jdmarsh-dev/fieldhouse/config"
	_ "github.com/jdmarsh-dev/fieldhouse/docs"
	"github.com/jdmarsh-dev/fieldhouse/internal/admin"
	"github.com/jdmarsh-dev/fieldhouse/internal/event"
	"github.com/jdmarsh-dev/fieldhouse/internal/inductee"
	"github.com/jdmarsh-dev/fieldhouse/internal/media"
	"github.com/jdmarsh-dev/fieldhouse/internal/program"
	"github.com/jdmarsh-dev/fieldhouse/internal/school"
	"github.com/jdmarsh-dev/fieldhouse/routes"
)

// @title Fieldhouse API
// @version 1.0
// @description Multi-tenant branding and athletics backend for school sites.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if cfg.App.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	clerk.SetKey(cfg.Clerk.SecretKey)

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	err = db.AutoMigrate(
		&school.School{},
		&program.Program{}, &program.Season{},
		&event.Event{},
		&inductee.Inductee{},
		&admin.Admin{}, &admin.AdminInvite{},
		&media.ScreensaverImage{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("auto-migration failed")
	}
	log.Info().Msg("database migrated")

	r := routes.SetupRoutes(db, cfg)

	log.Info().Str("port", cfg.App.Port).Str("env", cfg.App.Env).Msg("starting server")
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
