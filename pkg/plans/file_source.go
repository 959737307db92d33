package plans

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileSource loads plan configurations from a YAML file.
type fileSource struct {
	path string
}

// NewFileSource returns a Source that reads plans from the YAML file at path.
//
// Expected format:
//
//	plans:
//	  pro:
//	    name: Pro
//	    trial_days: 30
//	    public: true
//	    limits:
//	      leads: 1000
//	      seats: 10
func NewFileSource(path string) Source {
	return &fileSource{path: path}
}

type planFile struct {
	Plans map[Tier]Plan `yaml:"plans"`
}

// Load reads and parses the plan file. The Tier field of each plan may be
// omitted in the file; it is filled in from the map key.
func (s *fileSource) Load(ctx context.Context) (map[Tier]Plan, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	var file planFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, fmt.Errorf("parse %s: %w", s.path, err))
	}

	plans := make(map[Tier]Plan, len(file.Plans))
	for tier, plan := range file.Plans {
		if plan.Tier == "" {
			plan.Tier = tier
		}
		plans[tier] = plan
	}

	return plans, nil
}
