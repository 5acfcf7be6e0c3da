// Command maintkpi-api serves the maintenance KPI endpoints
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maintkpi/internal/modkit"
	"maintkpi/internal/modkit/httpkit"
	"maintkpi/internal/modkit/repokit"
	"maintkpi/internal/platform/config"
	"maintkpi/internal/platform/logger"
	"maintkpi/internal/platform/metrics"
	phttp "maintkpi/internal/platform/net/http"
	"maintkpi/internal/platform/net/middleware"
	"maintkpi/internal/platform/store"

	"maintkpi/internal/services/api"

	"github.com/go-chi/chi/v5"
)

func main() {
	logger.Init(logger.FromEnv())
	l := logger.Named("main")

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")          // CORE_API_*
	pgCfg := root.Prefix("SERVICE_PGSQL_")      // SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // SERVICE_CLICKHOUSE_*

	source := apiCfg.MayEnum("KPI_SOURCE", modkit.SourcePG, modkit.SourcePG, modkit.SourceCH)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// only the record source is mandatory, the other backend is opened when configured
	cfg := store.Config{AppName: api.ServiceName}
	if source == modkit.SourcePG || pgCfg.MayString("DBURL", "") != "" {
		cfg.PG = store.PGFromEnv(pgCfg)
	}
	if source == modkit.SourceCH || chCfg.MayString("DBURL", "") != "" {
		cfg.CH = store.CHFromEnv(chCfg, "api")
	}

	m := metrics.Default()
	st, err := store.Open(ctx, cfg, store.WithLogger(*logger.Get()), store.WithMetrics(m))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	timeout := apiCfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second)
	srv := phttp.NewServer(apiCfg, func(mux *chi.Mux) { mux.Use(middleware.Defaults(timeout)...) })

	err = api.Mount(srv.Router(), api.Options{
		Deps: modkit.Deps{
			Log:     *logger.Get(),
			Cfg:     apiCfg,
			PG:      st.PG,
			CH:      st.CH,
			Metrics: m,
		},
		Source: source,
		Stack: httpkit.StackOptions{
			Slow: apiCfg.MayDuration("SLOW_REQUEST", 2*time.Second),
			CORS: middleware.CORSOptions{
				AllowedOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil),
				MaxAge:         apiCfg.MayInt("CORS_MAX_AGE", 300),
			},
			Metrics: m,
		},
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		EnableMetrics:  apiCfg.MayBool("METRICS", true),
	})
	if err != nil {
		l.Panic().Err(err).Msg("api.Mount failed")
	}

	l.Info().Str("source", source).Str("addr", srv.Addr()).Msg("maintkpi api starting")
	if err := srv.Run(ctx, apiCfg.MayDuration("SHUTDOWN_GRACE", 10*time.Second)); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
}
