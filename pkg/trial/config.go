package trial

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/authzkit/pkg/plans"
)

// Config controls the activation guard.
type Config struct {
	AttemptLimit  int           `env:"TRIAL_ATTEMPT_LIMIT" envDefault:"3"`   // attempts per actor per window
	AttemptWindow time.Duration `env:"TRIAL_ATTEMPT_WINDOW" envDefault:"24h"`
	TrialDays     int           `env:"TRIAL_DAYS" envDefault:"30"`
	TrialTier     plans.Tier    `env:"TRIAL_TIER" envDefault:"pro"` // tier granted for the trial period
}

// LoadConfig reads the configuration from environment variables,
// loading a .env file first if one exists.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.AttemptLimit <= 0 {
		return fmt.Errorf("%w: attempt limit must be positive, got %d", ErrInvalidConfig, c.AttemptLimit)
	}
	if c.AttemptWindow <= 0 {
		return fmt.Errorf("%w: attempt window must be positive, got %v", ErrInvalidConfig, c.AttemptWindow)
	}
	if c.TrialDays <= 0 {
		return fmt.Errorf("%w: trial days must be positive, got %d", ErrInvalidConfig, c.TrialDays)
	}
	if !c.TrialTier.Valid() {
		return fmt.Errorf("%w: unknown trial tier %q", ErrInvalidConfig, c.TrialTier)
	}
	return nil
}
