package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	tzselect "github.com/goliatone/go-tzselect"
	"github.com/goliatone/go-tzselect/components/timezones"
	"github.com/goliatone/go-tzselect/components/timezones/widget"
	"github.com/goliatone/go-tzselect/pkg/openapi"
	"github.com/goliatone/go-tzselect/pkg/render"
)

type ServeCmd struct {
	ShutdownTimeout time.Duration `name:"shutdown-timeout" help:"Grace period for in-flight requests." default:"10s"`
	Warm            bool          `help:"Build the catalog before accepting requests." default:"true" negatable:""`
}

func (c *ServeCmd) Run(app *App) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	comp, err := app.component(reg)
	if err != nil {
		return err
	}
	if c.Warm {
		catalog, err := comp.Catalog()
		if err != nil {
			return err
		}
		app.Logger.Info().Int("records", catalog.Len()).Msg("timezone catalog ready")
	}

	router, err := newRouter(app, comp, reg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              app.Config.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.Logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRouter(app *App, comp *timezones.Component, gatherer prometheus.Gatherer) (http.Handler, error) {
	cfg := app.Config

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(app.Logger))
	r.Use(middleware.Recoverer)
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodHead},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	if _, err := comp.RegisterRoutes(r, cfg.BasePath); err != nil {
		return nil, err
	}

	doc, err := openapi.Document(context.Background(), openapi.ParamsFromOptions(cfg.BasePath, comp.Options()))
	if err != nil {
		return nil, err
	}
	r.Handle(joinPath(cfg.BasePath, "/openapi.json"), openapi.Handler(doc))

	assetsPath := joinPath(cfg.BasePath, "/assets/")
	r.Handle(assetsPath+"*", http.StripPrefix(assetsPath, http.FileServerFS(tzselect.AssetsFS())))

	renderer, err := render.New(
		render.WithTheme(cfg.Theme, cfg.ThemeVariant),
		render.WithWidget(widget.Endpoint("tz", cfg.BasePath, func(o *timezones.Options) { *o = comp.Options() }), assetsPath+"tzselect.js"),
		render.WithLogger(app.Logger),
	)
	if err != nil {
		return nil, err
	}
	if _, err := renderer.Stylesheet(); err != nil {
		return nil, err
	}
	r.Handle(joinPath(cfg.BasePath, "/"), renderer.PageHandler(comp, "tz"))

	return r, nil
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}

func joinPath(base, path string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base != "" && !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	return base + path
}
