package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"repairshop-orders/internal/config"
	"repairshop-orders/internal/db"
	"repairshop-orders/internal/httpserver"
	branchrepo "repairshop-orders/internal/repository/branch"
	catalogrepo "repairshop-orders/internal/repository/catalog"
	customerrepo "repairshop-orders/internal/repository/customer"
	orderrepo "repairshop-orders/internal/repository/order"
)

func main() {
	cfg := config.FromEnv()
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.WithError(err).Fatal("connect to db")
	}
	defer dbpool.Close()

	srv, err := httpserver.New(cfg.HTTPAddr, dbpool, httpserver.Deps{
		Branches:       branchrepo.NewPostgres(dbpool),
		Catalog:        catalogrepo.NewPostgres(dbpool, logger),
		Customers:      customerrepo.NewPostgres(dbpool, logger),
		Orders:         orderrepo.NewPostgres(dbpool, logger),
		Logger:         logger,
		SearchDebounce: cfg.SearchDebounce,
		CORSOrigin:     cfg.CORSOrigin,
	})
	if err != nil {
		logger.WithError(err).Fatal("init server")
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.WithField("signal", sig.String()).Info("shutting down")
	case err := <-serverErr:
		logger.WithError(err).Error("server error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	} else {
		logger.Info("server stopped")
	}
}
