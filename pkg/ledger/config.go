package ledger

import (
	"context"
	"time"
)

// Store drivers accepted by Config.Driver.
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Config holds environment configuration for billing history.
type Config struct {
	Driver         string `env:"LEDGER_DRIVER" envDefault:"memory"`
	RedisKeyPrefix string `env:"LEDGER_REDIS_KEY_PREFIX" envDefault:"ledger:"`

	// Invoice links. S3 presigning wins when a bucket is set, otherwise the
	// static base URL is used, otherwise entries carry no invoice URL.
	InvoiceBaseURL string        `env:"LEDGER_INVOICE_BASE_URL"`
	S3Bucket       string        `env:"LEDGER_S3_BUCKET"`
	S3Region       string        `env:"LEDGER_S3_REGION" envDefault:"ap-south-1"`
	S3AccessKeyID  string        `env:"LEDGER_S3_ACCESS_KEY_ID"`
	S3SecretKey    string        `env:"LEDGER_S3_SECRET_KEY"`
	S3Endpoint     string        `env:"LEDGER_S3_ENDPOINT"`
	S3PathStyle    bool          `env:"LEDGER_S3_FORCE_PATH_STYLE" envDefault:"false"`
	InvoiceLinkTTL time.Duration `env:"LEDGER_INVOICE_LINK_TTL" envDefault:"15m"`
}

// NewInvoiceLinkerFromConfig returns the linker described by cfg, or nil when
// no invoice location is configured.
func NewInvoiceLinkerFromConfig(ctx context.Context, cfg Config) (InvoiceLinker, error) {
	switch {
	case cfg.S3Bucket != "":
		return NewS3Linker(ctx, S3Config{
			Bucket:         cfg.S3Bucket,
			Region:         cfg.S3Region,
			AccessKeyID:    cfg.S3AccessKeyID,
			SecretKey:      cfg.S3SecretKey,
			Endpoint:       cfg.S3Endpoint,
			ForcePathStyle: cfg.S3PathStyle,
			Expires:        cfg.InvoiceLinkTTL,
		})
	case cfg.InvoiceBaseURL != "":
		return StaticLinker(cfg.InvoiceBaseURL), nil
	default:
		return nil, nil
	}
}
