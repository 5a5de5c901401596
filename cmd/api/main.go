package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/cityexplorer/internal/adapters/http"
	natsadapter "github.com/samirrijal/cityexplorer/internal/adapters/nats"
	"github.com/samirrijal/cityexplorer/internal/adapters/postgres"
	"github.com/samirrijal/cityexplorer/internal/adapters/upstream"
	"github.com/samirrijal/cityexplorer/internal/adapters/valkey"
	"github.com/samirrijal/cityexplorer/internal/core/ports"
	"github.com/samirrijal/cityexplorer/internal/core/usecases"
	"github.com/samirrijal/cityexplorer/internal/pkg/config"
	"github.com/samirrijal/cityexplorer/internal/pkg/logging"
	"github.com/samirrijal/cityexplorer/internal/pkg/metrics"
	"github.com/samirrijal/cityexplorer/internal/pkg/telemetry"
)

const serviceName = "city-explorer-api"

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(serviceName, logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	weatherLoc, err := time.LoadLocation(cfg.Cache.WeatherTimezone)
	if err != nil {
		log.Fatalf("cache.weather_timezone: %v", err)
	}

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Valkey is optional; without it every lookup goes upstream.
	var cache ports.CacheService
	valkeyCache, err := valkey.New(cfg.Valkey.Addr, "explorer:")
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
		valkeyCache = nil
	} else {
		defer valkeyCache.Close()
		cache = valkeyCache
	}

	// NATS is optional; without it no location events are published.
	var events ports.EventPublisher
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer pub.Close()
		events = pub
	}

	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
		natsConn = nil
	} else {
		defer natsConn.Close()
	}

	up := cfg.Upstream
	client := upstream.NewClient()
	ttl := cfg.Cache.TTLSeconds

	deps := &http.Dependencies{
		Locations: usecases.NewLocationService(
			postgres.NewLocationRepo(db),
			upstream.NewGoogleGeocoder(client, up.GeocodeURL, up.GoogleAPIKey),
			events,
		),
		Weather:    usecases.NewWeatherService(upstream.NewDarkSky(client, up.WeatherURL, up.DarkSkyAPIKey), cache, ttl, weatherLoc),
		Businesses: usecases.NewBusinessService(upstream.NewYelp(client, up.YelpURL, up.YelpAPIKey), cache, ttl),
		Movies:     usecases.NewMovieService(upstream.NewTMDB(client, up.MoviesURL, up.TMDBAPIKey), cache, ttl),
		Trails:     usecases.NewTrailService(upstream.NewHikingProject(client, up.TrailsURL, up.TrailsAPIKey, up.TrailsMaxDistance), cache, ttl),
		NATS:       natsConn,
		DB:         db,
		Cache:      valkeyCache,
	}

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.UpdateDBPoolMetrics(db.Pool.Stat())
			case <-ctx.Done():
				return
			}
		}
	}()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024,
		AppName:      "City Explorer API",
		ErrorHandler: http.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       3600,
	}))

	http.SetupRoutes(app, deps)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
