package plans

// Plan describes a subscription plan tier and its resource constraints.
type Plan struct {
	Tier        Tier               `yaml:"tier"`
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Limits      map[Resource]int64 `yaml:"limits"` // -1 represents unlimited
	TrialDays   int                `yaml:"trial_days"`
	Public      bool               `yaml:"public"` // available for self-service signup
}

// Comparison contains the differences between two plans.
// Used to validate downgrades and communicate changes to users.
type Comparison struct {
	IncreasedLimits  map[Resource]ResourceChange
	DecreasedLimits  map[Resource]ResourceChange
	NewResources     map[Resource]int64
	RemovedResources map[Resource]int64
}

// HasDecreases returns true if any resources have decreased limits.
func (c *Comparison) HasDecreases() bool {
	return len(c.DecreasedLimits) > 0 || len(c.RemovedResources) > 0
}

// Compare returns the limit differences between current and target plans.
func Compare(current, target *Plan) *Comparison {
	if current == nil || target == nil {
		return nil
	}

	comparison := &Comparison{
		IncreasedLimits:  make(map[Resource]ResourceChange),
		DecreasedLimits:  make(map[Resource]ResourceChange),
		NewResources:     make(map[Resource]int64),
		RemovedResources: make(map[Resource]int64),
	}

	for resource, targetLimit := range target.Limits {
		currentLimit, exists := current.Limits[resource]
		if !exists {
			comparison.NewResources[resource] = targetLimit
			continue
		}

		if targetLimit == currentLimit {
			continue
		}

		change := ResourceChange{From: currentLimit, To: targetLimit}

		// Unlimited-to-limited counts as a decrease to prevent accidental
		// loss of unlimited access
		switch {
		case currentLimit == Unlimited:
			comparison.DecreasedLimits[resource] = change
		case targetLimit == Unlimited:
			comparison.IncreasedLimits[resource] = change
		case targetLimit > currentLimit:
			comparison.IncreasedLimits[resource] = change
		default:
			comparison.DecreasedLimits[resource] = change
		}
	}

	for resource, currentLimit := range current.Limits {
		if _, exists := target.Limits[resource]; !exists {
			comparison.RemovedResources[resource] = currentLimit
		}
	}

	return comparison
}
