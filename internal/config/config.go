package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress     string
	DatabaseURI    string
	GatewayAddress string
	JWTSecret      string

	FreeShippingThreshold float64
	RefundWindow          time.Duration

	PendingOrderTTL time.Duration
	SweepInterval   time.Duration
	SweepBatchSize  int
	WorkerPoolSize  int

	RateLimitRPS   float64
	RateLimitBurst int

	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress            = ":8080"
	defaultJWTSecret             = "change-me-in-production"
	defaultFreeShippingThreshold = 500
	defaultRefundWindow          = 14 * 24 * time.Hour
	defaultPendingOrderTTL       = 45 * time.Minute
	defaultSweepInterval         = 5 * time.Minute
	defaultSweepBatchSize        = 32
	defaultWorkerPoolSize        = 4
	defaultRateLimitRPS          = 50
	defaultRateLimitBurst        = 100
	defaultShutdownTimeout       = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:            getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:           getString(lookup, "DATABASE_URI", ""),
		GatewayAddress:        getString(lookup, "GATEWAY_ADDRESS", ""),
		JWTSecret:             getString(lookup, "JWT_SECRET", defaultJWTSecret),
		FreeShippingThreshold: getFloat(lookup, "FREE_SHIPPING_THRESHOLD", defaultFreeShippingThreshold),
		RefundWindow:          getDuration(lookup, "REFUND_WINDOW", defaultRefundWindow),
		PendingOrderTTL:       getDuration(lookup, "PENDING_ORDER_TTL", defaultPendingOrderTTL),
		SweepInterval:         getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
		SweepBatchSize:        getInt(lookup, "SWEEP_BATCH_SIZE", defaultSweepBatchSize),
		WorkerPoolSize:        getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		RateLimitRPS:          getFloat(lookup, "RATE_LIMIT_RPS", defaultRateLimitRPS),
		RateLimitBurst:        getInt(lookup, "RATE_LIMIT_BURST", defaultRateLimitBurst),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("solemart", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sweepIntervalStr   = cfg.SweepInterval.String()
		pendingTTLStr      = cfg.PendingOrderTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		refundWindowStr    = cfg.RefundWindow.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.GatewayAddress, "g", cfg.GatewayAddress, "Payment gateway service base URL")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.Float64Var(&cfg.FreeShippingThreshold, "free-shipping", cfg.FreeShippingThreshold, "Subtotal qualifying for free shipping")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent sweeper workers")
	fs.IntVar(&cfg.SweepBatchSize, "sweep-batch", cfg.SweepBatchSize, "Maximum pending orders per sweep batch")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between pending order sweeps")
	fs.StringVar(&pendingTTLStr, "pending-ttl", pendingTTLStr, "Age after which an unsettled pending order expires")
	fs.StringVar(&refundWindowStr, "refund-window", refundWindowStr, "Window after delivery during which refunds are accepted")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.PendingOrderTTL, err = time.ParseDuration(pendingTTLStr); err != nil {
		return nil, fmt.Errorf("invalid pending order ttl: %w", err)
	}

	if cfg.RefundWindow, err = time.ParseDuration(refundWindowStr); err != nil {
		return nil, fmt.Errorf("invalid refund window: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.SweepBatchSize <= 0 {
		cfg.SweepBatchSize = defaultSweepBatchSize
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.PendingOrderTTL <= 0 {
		cfg.PendingOrderTTL = defaultPendingOrderTTL
	}

	if cfg.RefundWindow <= 0 {
		cfg.RefundWindow = defaultRefundWindow
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.FreeShippingThreshold < 0 {
		cfg.FreeShippingThreshold = defaultFreeShippingThreshold
	}

	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = defaultRateLimitRPS
	}

	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = defaultRateLimitBurst
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.GatewayAddress == "" {
		return nil, fmt.Errorf("payment gateway address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
