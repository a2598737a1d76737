package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"repairshop-orders/internal/config"
	"repairshop-orders/internal/db"
	"repairshop-orders/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := logrus.New()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.WithError(err).Fatal("connect db")
	}
	defer pool.Close()

	if err := seed.Apply(ctx, pool); err != nil {
		logger.WithError(err).Fatal("apply seed data")
	}

	logger.Info("seed data applied")
}
