package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/carpool-labs/rideshare/internal/config"
	"github.com/carpool-labs/rideshare/internal/notifier"
	"github.com/carpool-labs/rideshare/internal/rides"
	"github.com/carpool-labs/rideshare/internal/server"
	"github.com/carpool-labs/rideshare/internal/storage"
)

func main() {
	config.Load()

	logger := server.NewLogger()
	defer logger.Sync()

	svcConfig := config.RideService()
	rabbitConfig := config.Rabbit()

	logger.Info("Database configuration",
		zap.String("host", svcConfig.Postgres.Host),
		zap.Int("port", svcConfig.Postgres.Port),
		zap.String("database", svcConfig.Postgres.Database))

	db := storage.NewPostgresDB(svcConfig.Postgres.DSN(), svcConfig.Postgres.MaxOpenConnections)

	ctx := context.Background()
	if err := rides.CreateTables(ctx, db); err != nil {
		logger.Fatal("Failed to create tables", zap.Error(err))
	}

	publisher := notifier.NewAMQPPublisher(
		rabbitConfig.URL(),
		rabbitConfig.Queue,
		time.Duration(rabbitConfig.PublishTimeout)*time.Second,
		logger,
	)

	store := rides.NewPostgresStore(db)
	service := rides.NewService(store, publisher, logger)

	router := server.NewRouter(db)
	rides.RegisterRoutes(router, service, logger)

	srv := &http.Server{
		Addr:    svcConfig.Http.Addr(),
		Handler: router,
	}

	done := server.SetupSignalHandler(srv, db, logger)

	logger.Info("Starting ride server", zap.String("address", srv.Addr))

	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	<-done
	logger.Info("Server shutdown complete")
}
