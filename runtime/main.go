package main

import (
	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/medtrustid-lab/medtrust_api/middleware"
	"github.com/medtrustid-lab/medtrust_api/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.SqlService{},
		&services.RedisService{},
		&services.JWTService{},
		&services.MonitoringService{},

		&services.BlocklistService{},
		&services.AlertService{},
		&services.AnomalyService{},

		&services.AuthService{},
		&services.ConsentService{},
		&services.AccessRequestService{},
		&services.PatientService{},

		&middleware.AuthMiddleware{},
		&middleware.AdmissionMiddleware{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}
