package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	webAdapter "distro-reports/internal/adapters/web"
	"distro-reports/internal/app"
	"distro-reports/internal/core"
	"distro-reports/internal/db"
	"distro-reports/internal/store"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("database")
	}
	defer pool.Close()

	exec := store.New(pool)
	svc := app.NewAppService(
		core.NewSalesReportService(exec),
		core.NewCustomerReportService(exec),
		core.NewInventoryReportService(exec),
		core.NewUserService(exec),
	)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal().Msg("JWT_SECRET environment variable not set")
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, &logger, allowedOrigins, jwtSecret)

	logger.Info().Str("port", port).Msg("server starting")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		logger.Fatal().Err(err).Msg("server")
	}
}
