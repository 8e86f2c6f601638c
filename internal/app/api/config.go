package api

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	"github.com/ordermesh/inventory-api/internal/admission"
	"github.com/ordermesh/inventory-api/internal/idempotency"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port              string
	PostgresDSN       string
	RedisAddr         string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	IdempotencyTTL    time.Duration
	Admission         admission.Config
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	admissionCfg, err := admission.LoadConfig()
	if err != nil {
		return Config{}, err
	}
	idempotencyTTL := idempotency.DefaultTokenTTL
	if raw := strings.TrimSpace(os.Getenv("IDEMPOTENCY_TTL")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			return Config{}, fmt.Errorf("IDEMPOTENCY_TTL %q is not a positive duration", raw)
		}
		idempotencyTTL = parsed
	}
	return Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		RedisAddr:         strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		IdempotencyTTL:    idempotencyTTL,
		Admission:         admissionCfg,
	}, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
