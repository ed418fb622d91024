package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/carpool-labs/rideshare/internal/config"
	"github.com/carpool-labs/rideshare/internal/notifier"
	"github.com/carpool-labs/rideshare/internal/server"
	"github.com/carpool-labs/rideshare/internal/storage"
	"github.com/carpool-labs/rideshare/internal/users"
)

func main() {
	config.Load()

	logger := server.NewLogger()
	defer logger.Sync()

	svcConfig := config.UserService()
	rabbitConfig := config.Rabbit()

	logger.Info("Database configuration",
		zap.String("host", svcConfig.Postgres.Host),
		zap.Int("port", svcConfig.Postgres.Port),
		zap.String("database", svcConfig.Postgres.Database))

	db := storage.NewPostgresDB(svcConfig.Postgres.DSN(), svcConfig.Postgres.MaxOpenConnections)

	ctx := context.Background()
	if err := users.CreateTables(ctx, db); err != nil {
		logger.Fatal("Failed to create tables", zap.Error(err))
	}

	publisher := notifier.NewAMQPPublisher(
		rabbitConfig.URL(),
		rabbitConfig.Queue,
		time.Duration(rabbitConfig.PublishTimeout)*time.Second,
		logger,
	)

	store := users.NewPostgresStore(db)
	service := users.NewService(store, publisher, logger)

	router := server.NewRouter(db)
	users.RegisterRoutes(router, service, logger)

	srv := &http.Server{
		Addr:    svcConfig.Http.Addr(),
		Handler: router,
	}

	done := server.SetupSignalHandler(srv, db, logger)

	logger.Info("Starting user server", zap.String("address", srv.Addr))

	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	<-done
	logger.Info("Server shutdown complete")
}
