package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/lifeline-backend/internal/http/handlers"
	httpMW "github.com/yungbote/lifeline-backend/internal/http/middleware"
	"github.com/yungbote/lifeline-backend/internal/observability"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	CORSOrigins    []string
	AuthMiddleware *httpMW.AuthMiddleware

	// AllowAdminSignup mounts the public admin registration route.
	AllowAdminSignup bool

	HealthHandler    *httpH.HealthHandler
	AuthHandler      *httpH.AuthHandler
	UserHandler      *httpH.UserHandler
	HospitalHandler  *httpH.HospitalHandler
	BloodHandler     *httpH.BloodHandler
	OrganHandler     *httpH.OrganHandler
	ReportingHandler *httpH.ReportingHandler
	RealtimeHandler  *httpH.RealtimeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "lifeline-api"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			if cfg.AllowAdminSignup {
				api.POST("/admin/register", cfg.AuthHandler.RegisterAdmin)
			}
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/refresh", cfg.AuthHandler.Refresh)
		}

		// Reporting
		if cfg.ReportingHandler != nil {
			api.GET("/blood-inventory", cfg.ReportingHandler.BloodInventory)
			api.GET("/dashboard/stats", cfg.ReportingHandler.DashboardStats)
		}

		// Directory
		if cfg.HospitalHandler != nil {
			api.GET("/hospitals", cfg.HospitalHandler.ListHospitals)
			api.GET("/doctors", cfg.HospitalHandler.ListDoctors)
		}
		if cfg.UserHandler != nil {
			api.GET("/donors", cfg.UserHandler.SearchDonors)
		}
		if cfg.OrganHandler != nil {
			api.GET("/organ-inventory", cfg.OrganHandler.Inventory)
		}
	}

	// Without an auth middleware nothing below is mounted.
	if cfg.AuthMiddleware == nil {
		return r
	}

	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
			protected.GET("/me", cfg.AuthHandler.Me)
		}

		// Realtime (SSE)
		if cfg.RealtimeHandler != nil {
			protected.GET("/events/stream", cfg.RealtimeHandler.Stream)
		}

		// Blood
		if cfg.BloodHandler != nil {
			protected.GET("/blood-donations", cfg.BloodHandler.ListDonations)
			protected.POST("/blood-donations", cfg.BloodHandler.CreateDonation)
			protected.GET("/blood-requests", cfg.BloodHandler.ListRequests)
			protected.POST("/blood-requests", cfg.BloodHandler.CreateRequest)
		}

		// Organ
		if cfg.OrganHandler != nil {
			protected.GET("/organ-donations", cfg.OrganHandler.ListDonations)
			protected.POST("/organ-donations", cfg.OrganHandler.CreateDonation)
			protected.GET("/organ-requests", cfg.OrganHandler.ListRequests)
			protected.POST("/organ-requests", cfg.OrganHandler.CreateRequest)
		}
	}

	admin := protected.Group("/")
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	{
		if cfg.UserHandler != nil {
			admin.GET("/users", cfg.UserHandler.ListUsers)
			admin.PUT("/users/:id", cfg.UserHandler.UpdateUser)
			admin.DELETE("/users/:id", cfg.UserHandler.DeleteUser)
		}

		if cfg.HospitalHandler != nil {
			admin.POST("/hospitals", cfg.HospitalHandler.CreateHospital)
			admin.PUT("/hospitals/:id", cfg.HospitalHandler.UpdateHospital)
			admin.DELETE("/hospitals/:id", cfg.HospitalHandler.DeleteHospital)
			admin.POST("/doctors", cfg.HospitalHandler.CreateDoctor)
			admin.DELETE("/doctors/:id", cfg.HospitalHandler.DeleteDoctor)
		}

		if cfg.BloodHandler != nil {
			admin.PUT("/blood-donations/:id", cfg.BloodHandler.UpdateDonation)
			admin.DELETE("/blood-donations/:id", cfg.BloodHandler.DeleteDonation)
			admin.PUT("/blood-requests/:id", cfg.BloodHandler.UpdateRequest)
			admin.DELETE("/blood-requests/:id", cfg.BloodHandler.DeleteRequest)
		}

		if cfg.OrganHandler != nil {
			admin.PUT("/organ-donations/:id", cfg.OrganHandler.UpdateDonation)
			admin.DELETE("/organ-donations/:id", cfg.OrganHandler.DeleteDonation)
			admin.PUT("/organ-requests/:id", cfg.OrganHandler.UpdateRequest)
			admin.DELETE("/organ-requests/:id", cfg.OrganHandler.DeleteRequest)
		}
	}

	return r
}
