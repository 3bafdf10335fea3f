package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/pgarat123/livesky/internal/config"
	"github.com/pgarat123/livesky/internal/db"
	"github.com/pgarat123/livesky/internal/httpapi"
	"github.com/pgarat123/livesky/internal/modules/telemetry"
	"github.com/pgarat123/livesky/internal/mqtt"
	"github.com/pgarat123/livesky/internal/observability/metrics"
)

func Run(ctx context.Context, cfg config.Config) error {
	slog.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"dbDriver", cfg.DBDriver,
		"sqlitePath", cfg.SQLitePath,
		"dbMaxOpenConns", cfg.DBMaxOpenConns,
		"dbMaxIdleConns", cfg.DBMaxIdleConns,
		"dbConnMaxLifetime", cfg.DBConnMaxLifetime,
		"mqttBroker", cfg.MQTTBroker,
		"mqttPort", cfg.MQTTPort,
		"mqttTopic", cfg.MQTTTopic,
		"corsAllowOrigin", cfg.CORSAllowOrigin,
	)
	dbConn, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := db.Close(dbConn)
		if closeErr != nil {
			slog.Error("db close", "error", closeErr)
		}
	}()

	if err := db.EnsureSchema(dbConn); err != nil {
		return err
	}
	slog.Info("database ready")

	metrics.Register(dbConn, slog.Default())

	// Set the MQTT handler before Connect so the subscription is live before
	// the broker delivers any queued messages.
	var mqttSubscriber *mqtt.Subscriber
	mux := httpapi.NewMux(dbConn)
	if cfg.MQTTBroker != "" {
		mqttSubscriber = mqtt.NewSubscriber(cfg, slog.Default())
		telemetry.RegisterFeature(mux, dbConn, mqttSubscriber, slog.Default())

		// Short timeout so a down broker doesn't block startup; HTTP ingest
		// still works without MQTT.
		connectCtx, connectCancel := context.WithTimeout(ctx, 5*time.Second)
		err = mqttSubscriber.Connect(connectCtx)
		connectCancel()
		if err != nil {
			slog.Warn("mqtt connection failed (continuing without mqtt)", "error", err)
		}
	} else {
		telemetry.RegisterFeature(mux, dbConn, nil, slog.Default())
	}

	srv := httpapi.NewServer(cfg, mux)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if mqttSubscriber != nil {
		slog.Info("mqtt disconnecting")
		mqttSubscriber.Disconnect()
	}

	slog.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}
