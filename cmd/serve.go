package cmd

import (
	"braindumpBackend/app"
	"braindumpBackend/auth"
	"braindumpBackend/events"
	"braindumpBackend/storage"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func runServer(ctx context.Context) error {
	brainDumpConfig, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := connectToDatabase(brainDumpConfig)
	if err != nil {
		return err
	}

	if err := storage.Migrate(db, app.Models()...); err != nil {
		return err
	}

	publishers := make([]events.Publisher, 0)
	if brainDumpConfig.Realtime.RedisAddress != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     brainDumpConfig.Realtime.RedisAddress,
			Password: os.Getenv("BD_REDIS_PASSWORD"),
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("Redis is not reachable, notifications to it will be dropped", "addr", brainDumpConfig.Realtime.RedisAddress, "err", err)
		}
		publishers = append(publishers, events.CreateRedisPublisher(redisClient, brainDumpConfig.Realtime.RedisChannelPrefix))
	}

	authManager := auth.CreateAuthManager(brainDumpConfig)
	brainDumpApp, err := app.CreateApp(brainDumpConfig, db, authManager, publishers...)
	if err != nil {
		return err
	}

	connection := fmt.Sprintf("%s:%d", brainDumpConfig.Server.Host, brainDumpConfig.Server.Port)
	server := &http.Server{
		Addr:    connection,
		Handler: brainDumpApp.Engine,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	log.Info("Brain Dump API is ready to serve calls!", "conn", connection)

	select {
	case err := <-serverErr:
		if err != nil {
			log.Errorf("Failed to start web server on %s: %s", connection, err.Error())
			return err
		}
	case <-ctx.Done():
		log.Info("Shutting down web server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
