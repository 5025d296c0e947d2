package payment

import (
	"log/slog"
	"time"
)

// Config holds environment configuration for the payment simulator.
type Config struct {
	Latency     time.Duration `env:"PAYMENT_LATENCY" envDefault:"2s"`
	FailureRate float64       `env:"PAYMENT_FAILURE_RATE" envDefault:"0.1"`
	Seed        uint64        `env:"PAYMENT_SEED"` // zero means a random seed
	Timeout     time.Duration `env:"PAYMENT_TIMEOUT" envDefault:"30s"`
}

// NewSimulatorFromConfig builds a Simulator described by cfg.
func NewSimulatorFromConfig(cfg Config, log *slog.Logger) (*Simulator, error) {
	if cfg.FailureRate < 0 || cfg.FailureRate > 1 {
		return nil, ErrInvalidFailureRate
	}
	opts := []SimulatorOption{
		WithLatency(cfg.Latency),
		WithFailureRate(cfg.FailureRate),
		WithLogger(log),
	}
	if cfg.Seed != 0 {
		opts = append(opts, WithSeed(cfg.Seed))
	}
	return NewSimulator(opts...), nil
}
