package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/lifeline-backend/internal/http"
	httpH "github.com/yungbote/lifeline-backend/internal/http/handlers"
	httpMW "github.com/yungbote/lifeline-backend/internal/http/middleware"
	"github.com/yungbote/lifeline-backend/internal/observability"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
	"github.com/yungbote/lifeline-backend/internal/realtime"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health    *httpH.HealthHandler
	Auth      *httpH.AuthHandler
	User      *httpH.UserHandler
	Hospital  *httpH.HospitalHandler
	Blood     *httpH.BloodHandler
	Organ     *httpH.OrganHandler
	Reporting *httpH.ReportingHandler
	Realtime  *httpH.RealtimeHandler
}

func wireHandlers(log *logger.Logger, services Services, sseHub *realtime.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(),
		Auth:      httpH.NewAuthHandler(services.Auth),
		User:      httpH.NewUserHandler(services.User),
		Hospital:  httpH.NewHospitalHandler(services.Hospital, services.Doctor),
		Blood:     httpH.NewBloodHandler(services.BloodDonation, services.BloodRequest),
		Organ:     httpH.NewOrganHandler(services.Organ),
		Reporting: httpH.NewReportingHandler(services.Reporting),
		Realtime:  httpH.NewRealtimeHandler(log, sseHub),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireRouter(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:              log,
		Metrics:          metrics,
		ServiceName:      cfg.Otel.ServiceName,
		CORSOrigins:      cfg.CORSOrigins,
		AuthMiddleware:   middleware.Auth,
		AllowAdminSignup: cfg.AllowAdminSignup,
		HealthHandler:    handlers.Health,
		AuthHandler:      handlers.Auth,
		UserHandler:      handlers.User,
		HospitalHandler:  handlers.Hospital,
		BloodHandler:     handlers.Blood,
		OrganHandler:     handlers.Organ,
		ReportingHandler: handlers.Reporting,
		RealtimeHandler:  handlers.Realtime,
	})
}
