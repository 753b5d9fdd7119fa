package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/wind-analytics-service/internal/domain"
	"github.com/couchcryptid/wind-analytics-service/internal/observability"
)

// FeedbackPublisher delivers validated feedback submissions.
type FeedbackPublisher interface {
	PublishFeedback(ctx context.Context, fb domain.Feedback) error
}

// Service answers every dashboard view from the reference dataset. Each
// call computes its result from its own inputs; there is no shared render
// state between requests.
type Service struct {
	dataset   *domain.Dataset
	geocoder  domain.Geocoder
	publisher FeedbackPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool

	mu     sync.RWMutex
	places map[string]domain.Place
}

// New creates a Service. geocoder and publisher may be nil: markers then
// carry no place label and feedback is only logged.
func New(dataset *domain.Dataset, geocoder domain.Geocoder, publisher FeedbackPublisher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	s := &Service{
		dataset:   dataset,
		geocoder:  geocoder,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		places:    make(map[string]domain.Place, dataset.Len()),
	}

	for _, tier := range domain.AllTiers() {
		metrics.DatasetStates.WithLabelValues(tier.String()).Set(float64(len(dataset.StatesInTier(tier))))
	}
	if geocoder != nil {
		metrics.GeocodeEnabled.Set(1)
	}
	return s
}

// Warm resolves the place label of every state so map requests are served
// from memory, then marks the service ready. Geocoding failures degrade to
// unlabelled markers and do not block readiness.
func (s *Service) Warm(ctx context.Context) {
	start := time.Now()
	if s.geocoder != nil {
		for _, p := range s.dataset.Filter() {
			if ctx.Err() != nil {
				s.logger.Warn("warm-up interrupted", "error", ctx.Err())
				break
			}
			place := domain.ResolvePlace(ctx, p, s.geocoder, s.logger)
			s.mu.Lock()
			s.places[p.Name] = place
			s.mu.Unlock()
		}
	}

	s.ready.Store(true)
	s.metrics.Ready.Set(1)
	s.logger.Info("dashboard ready",
		"states", s.dataset.Len(),
		"geocoding", s.geocoder != nil,
		"duration", time.Since(start),
	)
}

// CheckReadiness returns nil once Warm has completed.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("dashboard has not finished warming up")
	}
	return nil
}

// StateSummary is one entry of the state selector.
type StateSummary struct {
	Name      string               `json:"name"`
	Code      string               `json:"code"`
	Potential domain.PotentialTier `json:"potential"`
}

// States lists every state in dataset order.
func (s *Service) States() []StateSummary {
	profiles := s.dataset.Filter()
	out := make([]StateSummary, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, StateSummary{Name: p.Name, Code: p.Code, Potential: p.Potential})
	}
	return out
}

// TierSummary describes one potential tier and the states grouped under it.
type TierSummary struct {
	Tier   domain.PotentialTier `json:"tier"`
	Color  string               `json:"color"`
	States []string             `json:"states"`
}

// Tiers lists every tier, best first, with its marker colour and states.
func (s *Service) Tiers() []TierSummary {
	tiers := domain.AllTiers()
	out := make([]TierSummary, 0, len(tiers))
	for _, t := range tiers {
		states := s.dataset.StatesInTier(t)
		if states == nil {
			states = []string{}
		}
		out = append(out, TierSummary{Tier: t, Color: t.MarkerColor(), States: states})
	}
	return out
}

// Overview is the state detail panel.
type Overview struct {
	Profile  domain.StateWindProfile  `json:"profile"`
	Display  domain.ProfileDisplay    `json:"display"`
	Defaults domain.ProjectParameters `json:"defaults"`
	Place    *domain.Place            `json:"place,omitempty"`
}

// Overview returns the profile of one state with display strings, its
// calculator defaults and, when geocoding is enabled, a place label.
func (s *Service) Overview(ctx context.Context, state string) (Overview, error) {
	p, err := s.dataset.Lookup(state)
	if err != nil {
		return Overview{}, err
	}
	defaults, err := s.dataset.DefaultsFor(p.Name)
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		Profile:  p,
		Display:  domain.Display(p),
		Defaults: defaults,
		Place:    s.place(ctx, p),
	}, nil
}

// Comparison builds the comparison table for the selected tiers. An empty
// selection includes every state.
func (s *Service) Comparison(tiers []domain.PotentialTier) []domain.ComparisonRow {
	return s.dataset.ComparisonTable(tiers...)
}

// Defaults returns the calculator inputs pre-filled for state.
func (s *Service) Defaults(state string) (domain.ProjectParameters, error) {
	return s.dataset.DefaultsFor(state)
}

// Bounds returns the accepted range of every calculator input.
func (s *Service) Bounds() domain.ParameterBounds {
	return domain.DefaultBounds()
}

// Calculate validates params and computes the project economics. When
// state is non-empty its name and tier are attached to the result as
// labels. Results are never cached.
func (s *Service) Calculate(_ context.Context, state string, params domain.ProjectParameters) (domain.Assessment, error) {
	var profile *domain.StateWindProfile
	if state != "" {
		p, err := s.dataset.Lookup(state)
		if err != nil {
			return domain.Assessment{}, err
		}
		profile = &p
	}

	start := time.Now()
	a, err := domain.Assess(params, profile)
	if err != nil {
		s.metrics.Calculations.WithLabelValues("invalid").Inc()
		return domain.Assessment{}, err
	}
	s.metrics.Calculations.WithLabelValues("ok").Inc()
	s.metrics.CalculationDuration.Observe(time.Since(start).Seconds())
	return a, nil
}

// Sources lists every data citation with the states it covers.
func (s *Service) Sources() []domain.SourceCitation {
	return s.dataset.Sources()
}

// SubmitFeedback validates the form and hands it to the publisher. Without
// a publisher the submission is logged and accepted.
func (s *Service) SubmitFeedback(ctx context.Context, in domain.FeedbackInput) (domain.Feedback, error) {
	fb, err := domain.NewFeedback(in)
	if err != nil {
		s.metrics.Feedback.WithLabelValues("invalid").Inc()
		return domain.Feedback{}, err
	}

	if s.publisher == nil {
		s.metrics.Feedback.WithLabelValues("logged").Inc()
		s.logger.Info("feedback received",
			"id", fb.ID,
			"rating", fb.Rating,
			"feature_requests", fb.FeatureRequests,
			"data_issues", fb.DataIssues,
		)
		return fb, nil
	}

	if err := s.publisher.PublishFeedback(ctx, fb); err != nil {
		s.metrics.Feedback.WithLabelValues("error").Inc()
		s.logger.Error("publish feedback failed", "id", fb.ID, "error", err)
		return domain.Feedback{}, fmt.Errorf("publish feedback: %w", err)
	}
	s.metrics.Feedback.WithLabelValues("published").Inc()
	return fb, nil
}

// place returns the warmed label for p, resolving and remembering it when
// warm-up has not reached p yet. It returns nil when geocoding is disabled or
// the lookup failed.
func (s *Service) place(ctx context.Context, p domain.StateWindProfile) *domain.Place {
	if s.geocoder == nil {
		return nil
	}
	s.mu.RLock()
	place, ok := s.places[p.Name]
	s.mu.RUnlock()
	if !ok {
		place = domain.ResolvePlace(ctx, p, s.geocoder, s.logger)
		s.mu.Lock()
		s.places[p.Name] = place
		s.mu.Unlock()
	}
	if place.Source == "failed" {
		return nil
	}
	return &place
}
