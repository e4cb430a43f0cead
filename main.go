package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/partflow/partflow_server/internal"
	"github.com/partflow/partflow_server/internal/health"
	"github.com/partflow/partflow_server/internal/status"
	"github.com/partflow/partflow_server/internal/transfer"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

const version = "1.0.0"

func main() {
	config, err := internal.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
		return
	}

	store, err := transfer.NewDiskStore(config.Transfer.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing upload directory")
		return
	}

	db, err := internal.NewDB(config.Sessions.Database, config.Sessions.Migrations)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing database")
		return
	}
	defer db.Close()

	pool := transfer.NewIOPool(config.Transfer.WorkerPoolSize)
	sessions := transfer.NewSQLiteRepository(db.SQL())
	service := transfer.NewService(store, pool, sessions, transfer.Limits{
		ChunkSize:   config.Transfer.ChunkSize,
		MaxFileSize: config.Transfer.MaxFileSize,
		MaxParts:    config.Transfer.MaxParts,
	})

	transferEndpoints := transfer.NewEndpoints(service)
	healthEndpoints := health.NewEndpoints(version)
	statusEndpoints := status.NewEndpoints(version, service)

	requestHandler := internal.NewRequestHandler(config, transferEndpoints, healthEndpoints, statusEndpoints)

	server := &fasthttp.Server{
		Handler: requestHandler,
		// One part per request plus form overhead.
		MaxRequestBodySize: int(config.Transfer.ChunkSize) + 1024*1024,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().Str("address", config.Server.Address).Msg("Server listening")
		if err := server.ListenAndServe(config.Server.Address); err != nil {
			log.Fatal().Err(err).Msg("Error starting server")
		}
	}()

	<-stop
	log.Info().Msg("Shutting down")
	if err := server.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Error shutting down server")
	}
	pool.Shutdown()
}
