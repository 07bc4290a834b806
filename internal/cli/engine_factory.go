package cli

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/deduce"
	"github.com/aretw0/deduce/internal/config"
	"github.com/aretw0/deduce/internal/logging"
	"github.com/aretw0/deduce/pkg/adapters/file"
	"github.com/aretw0/deduce/pkg/adapters/memory"
	"github.com/aretw0/deduce/pkg/adapters/redis"
	"github.com/aretw0/deduce/pkg/normalize"
	"github.com/aretw0/deduce/pkg/observability"
	"github.com/aretw0/deduce/pkg/persistence/middleware"
	"github.com/aretw0/deduce/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Options are the persistent CLI flags. Non-zero values override the
// config file.
type Options struct {
	ConfigPath string
	RulesPath  string
	LogLevel   string
	MaxSweeps  int
}

// App bundles everything a command needs.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Engine   *deduce.Engine
	Store    ports.ReportStore
	Metrics  *observability.Metrics
	Registry *prometheus.Registry
}

// NewApp loads configuration and wires the engine with standard CLI conventions.
func NewApp(opts Options) (*App, error) {
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = config.DefaultFile
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if opts.RulesPath != "" {
		cfg.Rules = opts.RulesPath
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.MaxSweeps > 0 {
		cfg.MaxSweeps = opts.MaxSweeps
	}

	logger, err := createLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	normalizer, err := createNormalizer(cfg.Vocabulary)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg.Store)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)
	hooks := observability.ChainHooks(metrics.Hooks(), createDebugHooks(logger))

	engine, err := deduce.New(cfg.Rules,
		deduce.WithLogger(logger),
		deduce.WithLifecycleHooks(hooks),
		deduce.WithMaxSweeps(cfg.MaxSweeps),
		deduce.WithNormalizer(normalizer),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		Engine:   engine,
		Store:    store,
		Metrics:  metrics,
		Registry: registry,
	}, nil
}

func createNormalizer(path string) (*normalize.Normalizer, error) {
	if path == "" {
		return normalize.Default(), nil
	}
	vocab, err := normalize.LoadVocabulary(path)
	if err != nil {
		return nil, err
	}
	return normalize.New(vocab), nil
}

func createStore(cfg config.StoreConfig) (ports.ReportStore, error) {
	var store ports.ReportStore
	switch strings.ToLower(cfg.Backend) {
	case config.BackendMemory:
		store = memory.NewStore()
	case config.BackendFile, "":
		store = file.NewStore(cfg.Path)
	case config.BackendRedis:
		store = redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}

	var mws []middleware.Middleware
	if len(cfg.Redact) > 0 {
		mw, err := middleware.NewRedactMiddleware(cfg.Redact)
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}
	if cfg.EncryptionKey != "" {
		active, err := decodeKey(cfg.EncryptionKey)
		if err != nil {
			return nil, err
		}
		encCfg := middleware.EncryptionConfig{ActiveKey: active}
		for _, k := range cfg.FallbackKeys {
			key, err := decodeKey(k)
			if err != nil {
				return nil, err
			}
			encCfg.FallbackKeys = append(encCfg.FallbackKeys, key)
		}
		mw, err := middleware.NewEncryptionMiddleware(encCfg)
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}
	return middleware.Chain(store, mws...), nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("encryption key is not valid base64: %w", err)
	}
	return key, nil
}

// createLogger configures the application logger on stderr so stdout stays
// reserved for results.
func createLogger(level string) (*slog.Logger, error) {
	if level == "" || level == "off" {
		return logging.NewNop(), nil
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl), nil
}
