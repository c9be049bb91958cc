package app

import (
	"time"

	"github.com/yungbote/lifeline-backend/internal/data/db"
	"github.com/yungbote/lifeline-backend/internal/http/middleware"
	"github.com/yungbote/lifeline-backend/internal/observability"
	"github.com/yungbote/lifeline-backend/internal/platform/envutil"
	"github.com/yungbote/lifeline-backend/internal/platform/logger"
)

type Config struct {
	Port    string
	GinMode string

	DB db.Options

	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	RedisAddr     string
	RedisPassword string
	RedisChannel  string

	SeedDemoData     bool
	AllowAdminSignup bool
	CORSOrigins      []string

	ShutdownTimeout time.Duration

	Otel observability.OtelConfig
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:    envutil.String("PORT", "8080", log),
		GinMode: envutil.String("GIN_MODE", "release", log),

		DB: db.Options{
			Driver:           envutil.String("DB_DRIVER", db.DriverSQLite, log),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost", log),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432", log),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres", log),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", "", nil),
			PostgresName:     envutil.String("POSTGRES_NAME", "lifeline", log),
			PostgresSSLMode:  envutil.String("POSTGRES_SSLMODE", "disable", log),
			SQLitePath:       envutil.String("SQLITE_PATH", "lifeline.db", log),
			MaxOpenConns:     envutil.Int("DB_MAX_OPEN_CONNS", 20, log),
			SlowQuery:        time.Duration(envutil.Int("DB_SLOW_QUERY_MS", 1000, log)) * time.Millisecond,
		},

		JWTSecretKey:    envutil.String("JWT_SECRET_KEY", "defaultsecret", nil),
		AccessTokenTTL:  envutil.Seconds("ACCESS_TOKEN_TTL", time.Hour, log),
		RefreshTokenTTL: envutil.Seconds("REFRESH_TOKEN_TTL", 24*time.Hour, log),

		RedisAddr:     envutil.String("REDIS_ADDR", "", log),
		RedisPassword: envutil.String("REDIS_PASSWORD", "", nil),
		RedisChannel:  envutil.String("REDIS_CHANNEL", "lifeline:changes", log),

		SeedDemoData:     envutil.Bool("SEED_DEMO_DATA", false, log),
		AllowAdminSignup: envutil.Bool("ALLOW_ADMIN_SIGNUP", false, log),
		CORSOrigins:      envutil.List("CORS_ORIGINS", middleware.DefaultCORSOrigins),

		ShutdownTimeout: envutil.Seconds("SHUTDOWN_TIMEOUT", 10*time.Second, log),

		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false, log),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "lifeline-api", log),
			Environment: envutil.String("OTEL_ENVIRONMENT", "development", log),
			Version:     envutil.String("OTEL_SERVICE_VERSION", "", log),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", nil)),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false, log),
			SampleRatio: envutil.Float("OTEL_SAMPLE_RATIO", 1, log),
		},
	}
}
