package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo-contrib/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/ton-connect/ntpclock/internal"
	"github.com/ton-connect/ntpclock/internal/app"
	"github.com/ton-connect/ntpclock/internal/config"
	"github.com/ton-connect/ntpclock/internal/handler"
	"github.com/ton-connect/ntpclock/internal/ntp"
	"github.com/ton-connect/ntpclock/internal/utils"
	"golang.org/x/exp/slices"
	"golang.org/x/time/rate"
)

func main() {
	log.Info(fmt.Sprintf("ntpclock %s is running", internal.VersionRevision))
	config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var provider ntp.TimeProvider
	if config.Config.NTPEnabled {
		client := ntp.NewClient(config.NTPOptions(os.Stdout))
		defer client.Stop()
		provider = client
		app.InitMetrics("ntp")
	} else {
		provider = ntp.NewLocalTimeProvider(os.Stdout)
		app.InitMetrics("local")
		log.Info("NTP synchronization disabled, using local time")
	}
	provider.Initialize(ctx, config.Config.UTCOffset, config.Config.DSTOffset, config.Config.NTPServers...)

	healthManager := app.NewHealthManager()
	go healthManager.StartHealthMonitoring(ctx, provider, 5*time.Second)

	if config.Config.MetricsPort != 0 {
		mux := http.NewServeMux()
		mux.Handle("/health", http.HandlerFunc(healthManager.HealthHandler))
		mux.Handle("/ready", http.HandlerFunc(healthManager.HealthHandler))
		mux.Handle("/version", http.HandlerFunc(app.VersionHandler))
		mux.Handle("/metrics", promhttp.Handler())
		if config.Config.PprofEnabled {
			mux.HandleFunc("/debug/pprof/", pprof.Index)
		}
		go func() {
			log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", config.Config.MetricsPort), mux))
		}()
	}

	apiDone := make(chan struct{})
	if config.Config.Port != 0 {
		go func() {
			defer close(apiDone)
			runAPI(ctx, provider)
		}()
	} else {
		close(apiDone)
	}

	runReports(ctx, provider, time.Duration(config.Config.ReportInterval)*time.Second)
	if config.Config.Port != 0 {
		<-ctx.Done()
	}
	<-apiDone
	log.Info("ntpclock exiting")
}

// runReports prints the console report every interval. A non-positive
// interval prints once and returns.
func runReports(ctx context.Context, provider ntp.TimeProvider, interval time.Duration) {
	report := func() {
		if _, err := provider.GetCurrentTime(); err != nil {
			log.WithError(err).Debug("time report skipped")
		}
	}

	report()
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report()
		}
	}
}

func runAPI(ctx context.Context, provider ntp.TimeProvider) {
	extractor, err := utils.NewRealIPExtractor(config.Config.TrustedProxyRanges)
	if err != nil {
		log.Warnf("failed to create realIPExtractor: %v, using defaults", err)
		extractor, _ = utils.NewRealIPExtractor([]string{})
	}

	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = utils.SonicJSONSerializer{}
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll:   true,
		DisablePrintStack: false,
	}))
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: handler.GenerateRequestID,
	}))
	e.Use(app.LogrusLoggerMiddleware())
	e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		IdentifierExtractor: extractor.Identifier,
		Store:               middleware.NewRateLimiterMemoryStore(rate.Limit(config.Config.RPSLimit)),
	}))

	handler.NewHandler(provider).Register(e)

	var existedPaths []string
	for _, r := range e.Routes() {
		existedPaths = append(existedPaths, r.Path)
	}
	p := prometheus.NewPrometheus("http", func(c echo.Context) bool {
		return !slices.Contains(existedPaths, c.Path())
	})
	e.Use(p.HandlerFunc)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("API shutdown failed")
		}
	}()

	if err := e.Start(fmt.Sprintf(":%d", config.Config.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
