package main

import (
	"context"
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"repairshop-orders/internal/config"
	"repairshop-orders/internal/db"
	"repairshop-orders/internal/importer"
	catalogrepo "repairshop-orders/internal/repository/catalog"
)

func main() {
	path := flag.String("file", "", "path to the parts CSV file")
	flag.Parse()

	logger := logrus.New()
	if *path == "" {
		logger.Fatal("usage: importer -file parts.csv")
	}

	cfg := config.FromEnv()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.WithError(err).Fatal("connect db")
	}
	defer pool.Close()

	f, err := os.Open(*path)
	if err != nil {
		logger.WithError(err).Fatal("open csv")
	}
	defer f.Close()

	repo := catalogrepo.NewPostgres(pool, logger)
	imp := importer.NewCSVImporter(f, repo)

	n, err := imp.Run(ctx)
	if err != nil {
		logger.WithError(err).WithField("imported", n).Fatal("import failed")
	}
	logger.WithField("imported", n).Info("parts imported")
}
