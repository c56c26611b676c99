// Package server implements HTTP API building jetton mint messages.
package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/hashicorp/go-hclog"
	lru "github.com/hashicorp/golang-lru"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tonmint/tonmint/address"
	_ "github.com/tonmint/tonmint/docs"
	"github.com/tonmint/tonmint/internal/artifact"
	"github.com/tonmint/tonmint/internal/config"
	"github.com/tonmint/tonmint/ton/jetton"
	"github.com/tonmint/tonmint/tvm/cell"
)

const bodyLimit = 1 << 20

// Discoverer returns raw wallet code artifact.
type Discoverer interface {
	Discover() ([]byte, error)
}

type Server struct {
	cfg    *config.Config
	logger hclog.Logger
	app    *fiber.App

	minter     *address.Address
	code       *jetton.CodeCache
	discoverer Discoverer

	// owner raw address -> jetton wallet address
	wallets *lru.Cache

	metrics  *Metrics
	gatherer prometheus.Gatherer
}

type Option func(s *Server)

func WithLogger(logger hclog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

func WithDiscoverer(d Discoverer) Option {
	return func(s *Server) {
		s.discoverer = d
	}
}

// WithCodeCache shares wallet code cache with the server, code set there is used as is.
func WithCodeCache(cache *jetton.CodeCache) Option {
	return func(s *Server) {
		s.code = cache
	}
}

// WithRegistry enables metrics, they are registered in reg and served on /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.metrics = GetPrometheusMetrics("tonmint", reg)
		s.gatherer = reg
	}
}

func New(cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is not set")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// validated above
	minter, _ := cfg.Minter()

	wallets, err := lru.New(cfg.AddressCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create address cache: %w", err)
	}

	s := &Server{
		cfg:     cfg,
		minter:  minter,
		code:    &jetton.CodeCache{},
		wallets: wallets,
		metrics: NilMetrics(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = hclog.NewNullLogger()
	}
	s.logger = s.logger.Named("server")

	if s.discoverer == nil {
		s.discoverer = artifact.NewLocator(s.logger,
			artifact.DefaultCandidates(cfg.ArtifactsDir, cfg.WalletCodePath))
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "tonmint",
		ErrorHandler:          errorHandler(s.logger),
		BodyLimit:             bodyLimit,
		ReadTimeout:           cfg.ReadTimeout,
		DisableStartupMessage: true,
	})
	s.registerRoutes()

	return s, nil
}

func (s *Server) registerRoutes() {
	s.app.Get("/ping", s.instrument("ping", s.Ping))

	api := s.app.Group("/api")
	api.Post("/build-mint", s.instrument("build_mint", s.BuildMint))
	api.Post("/build-mint/qr", s.instrument("build_mint_qr", s.BuildMintQR))

	if s.gatherer != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(
			promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}),
		))
	}

	s.app.Get("/swagger/*", swagger.New(swagger.Config{
		Title:           "tonmint - Swagger UI",
		DeepLinking:     true,
		TryItOutEnabled: true,
	}))
}

// App returns underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Preload tries to discover wallet code before the first request,
// a failure is not fatal, discovery is retried on demand.
func (s *Server) Preload() *cell.Cell {
	code, err := s.walletCode()
	if err != nil {
		s.logger.Warn("jetton wallet code is not loaded, will retry on request", "err", err)
		return nil
	}

	s.logger.Info("jetton wallet code loaded", "hash", fmt.Sprintf("%x", code.Hash()))
	return code
}

func (s *Server) Listen() error {
	s.logger.Info("listening", "addr", s.cfg.ListenAddr(),
		"minter_configured", s.minter != nil, "testnet", s.cfg.Testnet)

	return s.app.Listen(s.cfg.ListenAddr())
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) walletCode() (*cell.Cell, error) {
	if code := s.code.Get(); code != nil {
		return code, nil
	}

	code, err := s.code.Load(s.discoverer.Discover)
	if err != nil {
		s.metrics.DiscoveryCounterInc(discoveryNotFound)
		return nil, err
	}

	s.metrics.DiscoveryCounterInc(discoveryFound)
	return code, nil
}

func (s *Server) walletAddress(owner *address.Address, code *cell.Cell) (*address.Address, error) {
	key := owner.StringRaw()
	if v, ok := s.wallets.Get(key); ok {
		return v.(*address.Address), nil
	}

	wallet, err := jetton.CalcWalletAddress(s.minter, owner, code)
	if err != nil {
		return nil, err
	}

	s.wallets.Add(key, wallet)
	return wallet, nil
}

func (s *Server) formatAddr(addr *address.Address) string {
	return addr.Bounce(true).Testnet(s.cfg.Testnet).String()
}
