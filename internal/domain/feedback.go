package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ErrInvalidFeedback wraps every feedback validation failure.
var ErrInvalidFeedback = errors.New("invalid feedback")

const maxFeedbackText = 4000

// Rating is the overall score chosen on the feedback form.
type Rating string

const (
	RatingExcellent Rating = "Excellent"
	RatingGood      Rating = "Good"
	RatingAverage   Rating = "Average"
	RatingPoor      Rating = "Poor"
)

// Ratings returns the form choices in display order.
func Ratings() []Rating {
	return []Rating{RatingExcellent, RatingGood, RatingAverage, RatingPoor}
}

// ParseRating matches a rating case-insensitively.
func ParseRating(s string) (Rating, error) {
	s = strings.TrimSpace(s)
	for _, r := range Ratings() {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: unknown rating %q", ErrInvalidFeedback, s)
}

// FeedbackInput is the raw form submission.
type FeedbackInput struct {
	Rating          string `json:"rating"`
	FeatureRequests string `json:"feature_requests"`
	DataIssues      string `json:"data_issues"`
	Email           string `json:"email,omitempty"`
}

// Feedback is a validated submission ready to publish.
type Feedback struct {
	ID              string    `json:"id"`
	Rating          Rating    `json:"rating"`
	FeatureRequests string    `json:"feature_requests,omitempty"`
	DataIssues      string    `json:"data_issues,omitempty"`
	Email           string    `json:"email,omitempty"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

// NewFeedback validates in and assigns an ID and submission time.
func NewFeedback(in FeedbackInput) (Feedback, error) {
	rating, err := ParseRating(in.Rating)
	if err != nil {
		return Feedback{}, err
	}

	features := strings.TrimSpace(in.FeatureRequests)
	issues := strings.TrimSpace(in.DataIssues)
	if utf8.RuneCountInString(features) > maxFeedbackText {
		return Feedback{}, fmt.Errorf("%w: feature requests exceed %d characters", ErrInvalidFeedback, maxFeedbackText)
	}
	if utf8.RuneCountInString(issues) > maxFeedbackText {
		return Feedback{}, fmt.Errorf("%w: data issues exceed %d characters", ErrInvalidFeedback, maxFeedbackText)
	}

	email := strings.TrimSpace(in.Email)
	if email != "" {
		addr, err := mail.ParseAddress(email)
		if err != nil {
			return Feedback{}, fmt.Errorf("%w: email: %w", ErrInvalidFeedback, err)
		}
		email = addr.Address
	}

	return Feedback{
		ID:              uuid.NewString(),
		Rating:          rating,
		FeatureRequests: features,
		DataIssues:      issues,
		Email:           email,
		SubmittedAt:     clock.Now().UTC(),
	}, nil
}
