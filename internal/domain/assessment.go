package domain

import "time"

// Assessment is the result of one calculation request. It is returned to the
// caller and discarded; nothing caches or stores it.
type Assessment struct {
	State      string            `json:"state,omitempty"`
	Potential  *PotentialTier    `json:"potential,omitempty"`
	Parameters ProjectParameters `json:"parameters"`
	Metrics    ProjectMetrics    `json:"metrics"`
	Headline   HeadlineMetrics   `json:"headline"`
	ComputedAt time.Time         `json:"computed_at"`
}

// Assess validates params, computes metrics and stamps the result.
// When profile is non-nil its name and tier are attached as labels only; the
// tier is not reconciled with the computed capacity factor.
func Assess(params ProjectParameters, profile *StateWindProfile) (Assessment, error) {
	metrics, err := ComputeChecked(params)
	if err != nil {
		return Assessment{}, err
	}

	a := Assessment{
		Parameters: params,
		Metrics:    metrics,
		Headline:   Headline(metrics),
		ComputedAt: clock.Now().UTC(),
	}
	if profile != nil {
		tier := profile.Potential
		a.State = profile.Name
		a.Potential = &tier
	}
	return a, nil
}
