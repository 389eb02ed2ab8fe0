package api

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"time"

	"github.com/JackalLabs/harvester/api/types"
	"github.com/JackalLabs/harvester/farm"
	"github.com/JackalLabs/harvester/logger"
	eos "github.com/eoscanada/eos-go"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Status exposes what the scheduler has done so far.
type Status interface {
	Accounts() []string
	Reports() []farm.Report
	Skipped() int64
}

// HeadSource returns the current chain head.
type HeadSource interface {
	Info(ctx context.Context) (*eos.InfoResp, bool)
}

// Sources is everything the handlers read from.
type Sources struct {
	Status  Status
	Head    HeadSource
	LogFile string
	DryRun  bool
}

type API struct {
	srv *http.Server
}

// NewAPI builds the server for src. Close may be called before or after Serve.
func NewAPI(port int64, src Sources) *API {
	return &API{
		srv: &http.Server{
			Handler:      Handler(src),
			Addr:         fmt.Sprintf("0.0.0.0:%d", port),
			WriteTimeout: 30 * time.Second,
			ReadTimeout:  30 * time.Second,
			IdleTimeout:  120 * time.Second,
			ErrorLog:     stdlog.New(logger.Writer{Level: zerolog.WarnLevel}, "", 0),
		},
	}
}

func (a *API) Addr() string {
	return a.srv.Addr
}

func (a *API) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return a.srv.Shutdown(ctx)
}

// Handler builds the router with every route, metrics and CORS.
func Handler(src Sources) http.Handler {
	r := mux.NewRouter()

	outline := types.NewOutline()

	outline.RegisterGetRoute(r, "/", IndexHandler(src.Status, src.DryRun))
	outline.RegisterGetRoute(r, "/version", VersionHandler(src.Head))
	outline.RegisterGetRoute(r, "/accounts", AccountsHandler(src.Status))
	outline.RegisterGetRoute(r, "/logs", LogHandler(src.LogFile))
	outline.RegisterGetRoute(r, "/api", outline.OutlineHandler())

	r.Handle("/metrics", promhttp.Handler())
	r.Use(loggingMiddleware)

	return cors.Default().Handler(r)
}

// Serve blocks until Close is called.
func (a *API) Serve() {
	defer log.Info().Msg("API module stopped")

	log.Info().Str("addr", a.srv.Addr).Msg("Harvester API now listening")
	err := a.srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Warn().Err(err).Msg("API server failed")
	}
}
