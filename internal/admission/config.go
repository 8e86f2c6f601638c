package admission

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Limit is one class's (requests, window) budget.
type Limit struct {
	Requests      int
	WindowSeconds int
}

// Config carries environment-driven admission settings.
type Config struct {
	Enabled bool
	Public  Limit
	Auth    Limit
	API     Limit
	Message string
}

// DefaultConfig returns the limits applied when no environment overrides
// are present.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Public:  Limit{Requests: 100, WindowSeconds: 60},
		Auth:    Limit{Requests: 10, WindowSeconds: 60},
		API:     Limit{Requests: 200, WindowSeconds: 60},
		Message: "Rate limit exceeded. Please try again later.",
	}
}

// LoadConfig reads RATE_LIMIT_* environment variables, applies defaults, and
// validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if raw := strings.TrimSpace(os.Getenv("RATE_LIMIT_ENABLED")); raw != "" {
		cfg.Enabled = isTruthy(raw)
	}
	if msg := strings.TrimSpace(os.Getenv("RATE_LIMIT_MESSAGE")); msg != "" {
		cfg.Message = msg
	}
	var err error
	if cfg.Public, err = loadLimit("PUBLIC", cfg.Public); err != nil {
		return Config{}, err
	}
	if cfg.Auth, err = loadLimit("AUTH", cfg.Auth); err != nil {
		return Config{}, err
	}
	if cfg.API, err = loadLimit("API", cfg.API); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LimitFor resolves the budget for a class.
func (c Config) LimitFor(class Class) (Limit, bool) {
	switch class {
	case ClassPublic:
		return c.Public, true
	case ClassAuth:
		return c.Auth, true
	case ClassAPI:
		return c.API, true
	default:
		return Limit{}, false
	}
}

func loadLimit(class string, fallback Limit) (Limit, error) {
	limit := fallback
	requestsKey := fmt.Sprintf("RATE_LIMIT_%s_REQUESTS", class)
	if raw := strings.TrimSpace(os.Getenv(requestsKey)); raw != "" {
		requests, err := strconv.Atoi(raw)
		if err != nil || requests <= 0 {
			return Limit{}, fmt.Errorf("%s must be a positive integer", requestsKey)
		}
		limit.Requests = requests
	}
	windowKey := fmt.Sprintf("RATE_LIMIT_%s_WINDOW_SECONDS", class)
	if raw := strings.TrimSpace(os.Getenv(windowKey)); raw != "" {
		window, err := strconv.Atoi(raw)
		if err != nil || window <= 0 {
			return Limit{}, fmt.Errorf("%s must be a positive integer", windowKey)
		}
		limit.WindowSeconds = window
	}
	return limit, nil
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
