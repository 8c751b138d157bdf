package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"qrt-tracker/internal/config"
	"qrt-tracker/internal/database"
	"qrt-tracker/internal/repository/postgres"
	"qrt-tracker/internal/router"
	"qrt-tracker/pkg/logger"
)

func main() {
	configPath := pflag.String("config", "", "path to a YAML config file (default $QRT_CONFIG)")
	migrateOnly := pflag.Bool("migrate-only", false, "apply database migrations and exit")
	pflag.Parse()

	// config + logger
	cfg, err := config.Load(*configPath)
	if err != nil {
		l := logger.New("dev")
		l.Fatal().Err(err).Msg("config load failed")
	}
	l := logger.New(cfg.Env)
	l.Debug().Str("config", cfg.String()).Msg("config loaded")

	// db (migrations run inside Open; failure aborts startup)
	pool, err := database.Open(context.Background(), cfg)
	if err != nil {
		l.Fatal().Err(err).Msg("db init failed")
	}
	defer pool.Close()
	if *migrateOnly {
		l.Info().Msg("migrations applied")
		return
	}

	// http
	r := router.New(l, router.Deps{
		Users:   postgres.NewUserRepo(pool),
		Reasons: postgres.NewReasonRepo(pool),
		QRTs:    postgres.NewQRTRepo(pool),
		DB:      pool,
	}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Info().Msg("shutdown complete")
}
