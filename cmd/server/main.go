// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/gurkanbulca/doapi/internal/config"
	"github.com/gurkanbulca/doapi/internal/database"
	"github.com/gurkanbulca/doapi/internal/handler"
	"github.com/gurkanbulca/doapi/internal/logger"
	"github.com/gurkanbulca/doapi/internal/repository"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load .env file
	envErr := godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Enabled: cfg.Log.Enabled,
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
	})
	if envErr != nil {
		log.Debug().Msg("no .env file found")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	ctx = logger.WithContext(ctx, log)
	sessions, closeStore, err := openSessions(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	e := handler.NewRouter(handler.RouterConfig{
		Logger:   log,
		CORS:     cfg.CORS,
		Sessions: sessions,
	})

	errCh := make(chan error, 2)

	// Register health check
	healthServer := health.NewServer()
	var grpcServer *grpc.Server
	if cfg.Server.GRPCPort != "" {
		listener, err := net.Listen("tcp", ":"+cfg.Server.GRPCPort)
		if err != nil {
			return fmt.Errorf("listen on grpc port: %w", err)
		}
		grpcServer = grpc.NewServer()
		grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
		go func() {
			log.Info().Str("port", cfg.Server.GRPCPort).Msg("grpc health server listening")
			if err := grpcServer.Serve(listener); err != nil {
				errCh <- fmt.Errorf("serve grpc: %w", err)
			}
		}()
	}

	go func() {
		log.Info().
			Str("port", cfg.Server.HTTPPort).
			Str("store", cfg.Server.Store).
			Str("environment", cfg.Server.Environment).
			Msg("http server listening")
		if err := e.Start(":" + cfg.Server.HTTPPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("serve http: %w", err)
		}
	}()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	var serveErr error
	select {
	case <-ctx.Done():
		logger.InfoLog(ctx, "shutting down server")
	case serveErr = <-errCh:
	}

	// Probes see NOT_SERVING while in-flight requests drain.
	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	return serveErr
}

// openSessions connects the configured store backend. The returned func
// releases it.
func openSessions(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repository.Sessions, func(), error) {
	if cfg.Server.Store == config.StoreMemory {
		log.Warn().Msg("using in-memory store, data is lost on exit")
		return repository.NewMemorySessions(repository.NewMemoryStore()), func() {}, nil
	}

	desc, err := cfg.DatabaseDescriptor()
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("database", desc.Redacted()).Msg("connecting to database")
	db, err := database.Open(ctx, desc, cfg.Pool())
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}

	if cfg.Server.AutoMigrate {
		log.Info().Msg("running auto migration")
		if err := database.Migrate(ctx, db, desc.Dialect); err != nil {
			closeDB()
			return nil, nil, err
		}
	}
	return repository.NewSQLSessions(db, desc.Dialect), closeDB, nil
}
