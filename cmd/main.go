package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/AznStevy/bme590final/internal/api/http/router"
	httpServer "github.com/AznStevy/bme590final/internal/api/http/server"
	"github.com/AznStevy/bme590final/internal/config"
	"github.com/AznStevy/bme590final/internal/logger"
	"github.com/AznStevy/bme590final/internal/model"
	"github.com/AznStevy/bme590final/internal/processor"
	"github.com/AznStevy/bme590final/internal/repository/postgres"
	"github.com/AznStevy/bme590final/internal/service"
	storage "github.com/AznStevy/bme590final/internal/storage/minio"
	"github.com/AznStevy/bme590final/internal/validation"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	imageRepo := postgres.NewImageRepository(db)
	userRepo := postgres.NewUserRepository(db)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	blobStorage, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize payload storage", "error", err)
	}

	var proc model.Processor
	if cfg.Processor.URL != "" {
		proc = processor.NewClient(cfg.Processor.URL, cfg.Processor.CacheTTL)
	} else {
		proc = processor.NewStatic(cfg.Processor.Capabilities...)
	}

	validator := validation.New(proc)
	imageService := service.NewImage(imageRepo, userRepo, blobStorage, validator, logger)
	userService := service.NewUser(userRepo, logger)

	r := router.New(imageService, userService, logger)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
