package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JackalLabs/harvester/api"
	"github.com/JackalLabs/harvester/atomic"
	"github.com/JackalLabs/harvester/chain"
	"github.com/JackalLabs/harvester/config"
	"github.com/JackalLabs/harvester/farm"
	"github.com/JackalLabs/harvester/logger"
	"github.com/JackalLabs/harvester/monitoring"
	"github.com/JackalLabs/harvester/queue"
	"github.com/JackalLabs/harvester/rpc"
	"github.com/JackalLabs/harvester/wallet"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	_ farm.GameReader  = (*chain.Gateway)(nil)
	_ farm.AssetReader = (*atomic.Gateway)(nil)
	_ api.Status       = (*Scheduler)(nil)
	_ api.HeadSource   = (*chain.Client)(nil)
)

// Account is one configured account with its loaded keys.
type Account struct {
	Name    string
	Keyring *wallet.Keyring
}

type App struct {
	cfg       *config.Config
	home      string
	logCloser io.Closer

	dial      chain.Dialer
	chainPool *rpc.Pool
	assetPool *rpc.Pool
	client    *chain.Client
	game      *chain.Gateway
	assets    *atomic.Gateway
	builder   *wallet.Builder
	q         *queue.Queue
	accounts  []Account

	api       *api.API
	monitor   *monitoring.Monitor
	scheduler *Scheduler
	sleep     queue.SleepFunc
}

type Option func(*App)

// WithDialer replaces the nodeos client used for chain endpoints.
func WithDialer(dial chain.Dialer) Option {
	return func(app *App) {
		app.dial = dial
	}
}

// WithSleep replaces the pause taken before each submission.
func WithSleep(sleep queue.SleepFunc) Option {
	return func(app *App) {
		app.sleep = sleep
	}
}

// NewApp loads and validates the configuration found in home and builds the app.
func NewApp(home string, opts ...Option) (*App, error) {
	cfg, err := config.Init(home)
	if err != nil {
		return nil, err
	}

	app, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	app.home = home

	if cfg.LogFile != "" {
		closer, err := logger.Setup(zerolog.GlobalLevel().String(), cfg.LogFile)
		if err != nil {
			return nil, err
		}
		app.logCloser = closer
	}

	return app, nil
}

// New builds the app from an already validated configuration.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	app := &App{
		cfg:   cfg,
		dial:  chain.DialEOS(cfg.Timeout()),
		sleep: queue.Sleep,
	}
	for _, opt := range opts {
		opt(app)
	}

	app.chainPool = rpc.NewPool("wax", cfg.Endpoints.Wax)
	app.assetPool = rpc.NewPool("atomic", cfg.Endpoints.Atomic)

	app.client = chain.NewClient(app.chainPool, app.dial, cfg.Timeout())
	app.game = chain.NewGateway(app.client)
	app.assets = atomic.NewGateway(app.assetPool, cfg.Timeout())

	builder, err := wallet.NewBuilder(app.client)
	if err != nil {
		return nil, err
	}
	app.builder = builder
	app.q = queue.NewQueue(builder, cfg.Delay, cfg.DryRun).WithSleep(app.sleep)

	ctx := context.Background()
	for _, acc := range cfg.Accounts {
		k, err := wallet.NewKeyring(ctx, acc.Keys)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", acc.Name, err)
		}
		app.accounts = append(app.accounts, Account{Name: acc.Name, Keyring: k})
		log.Info().
			Str("account", acc.Name).
			Strs("public_keys", k.PublicKeyStrings()).
			Msg("Loaded account")
	}

	app.monitor = monitoring.NewMonitor(app.client, time.Duration(cfg.MonitorInterval)*time.Second)

	return app, nil
}

func (a *App) Config() *config.Config {
	return a.cfg
}

func (a *App) Accounts() []Account {
	return a.accounts
}

func (a *App) Game() *chain.Gateway {
	return a.game
}

// setup loads the game templates and builds one farmer per account.
func (a *App) setup(ctx context.Context) (*Scheduler, error) {
	settings, err := farm.NewSettings(a.cfg)
	if err != nil {
		return nil, err
	}

	env := farm.Env{
		Game:      a.game,
		Assets:    a.assets,
		Poster:    a.q,
		Templates: a.game.Templates(ctx),
		Settings:  settings,
		Pools:     []farm.Shuffler{a.chainPool, a.assetPool},
	}

	runners := make([]Runner, 0, len(a.accounts))
	for _, acc := range a.accounts {
		runners = append(runners, farm.NewFarmer(acc.Name, acc.Keyring, env))
	}

	a.scheduler = NewScheduler(runners, a.cfg.Interval())
	return a.scheduler, nil
}

// Check runs every account once and returns the cycle.
func (a *App) Check(ctx context.Context) (*Cycle, error) {
	s, err := a.setup(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.q.Listen(ctx)
	defer a.q.Stop()

	return s.RunCycle(ctx)
}

// Start runs the scheduler, the monitor and the API until SIGINT or SIGTERM.
func (a *App) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Debug().Str("home", a.home).Bool("dry_run", a.cfg.DryRun).Msg("harvester config")

	s, err := a.setup(ctx)
	if err != nil {
		return err
	}

	go a.q.Listen(ctx)
	go a.monitor.Start(ctx)
	if a.cfg.APICfg.Enabled {
		a.api = api.NewAPI(a.cfg.APICfg.Port, api.Sources{
			Status:  s,
			Head:    a.client,
			LogFile: a.cfg.LogFile,
			DryRun:  a.cfg.DryRun,
		})
		go a.api.Serve()
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		s.Start(ctx)
	}()

	done := make(chan os.Signal, 1)
	defer signal.Stop(done)

	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	<-done

	fmt.Println("Shutting harvester down safely...")

	cancel()
	a.q.Stop()
	if a.cfg.APICfg.Enabled {
		if err := a.api.Close(); err != nil {
			log.Warn().Err(err).Msg("cannot close API")
		}
	}

	select {
	case <-stopped:
	case <-time.After(30 * time.Second):
		log.Warn().Msg("Cycle did not stop in time")
	}

	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
	return nil
}
