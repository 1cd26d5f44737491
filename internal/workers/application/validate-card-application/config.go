package validatecardapplication

import (
	"fmt"
	"time"

	"card-application-workers/internal/cardapplication"
	"card-application-workers/internal/common/config"
	"card-application-workers/internal/common/validation"
)

type Config struct {
	Timeout    time.Duration
	Validation cardapplication.Options
}

// LoadConfig maps the worker entry and the validation section of the application config.
func LoadConfig(cfg *config.Config) (*Config, error) {
	policy, err := validation.ParsePolicy(cfg.Validation.Aggregation)
	if err != nil {
		return nil, fmt.Errorf("validation.aggregation: %w", err)
	}
	cutoff, err := cardapplication.ParseAgeCutoff(cfg.Validation.AgeCutoff)
	if err != nil {
		return nil, fmt.Errorf("validation.age_cutoff: %w", err)
	}

	return &Config{
		Timeout: config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		Validation: cardapplication.Options{
			Aggregation: policy,
			AgeCutoff:   cutoff,
			MinimumAge:  cfg.Validation.MinimumAge,
		},
	}, nil
}
