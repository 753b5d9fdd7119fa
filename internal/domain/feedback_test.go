package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useFakeClock(t *testing.T) *clockwork.FakeClock {
	t.Helper()
	fake := clockwork.NewFakeClockAt(time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC))
	SetClock(fake)
	t.Cleanup(func() { SetClock(nil) })
	return fake
}

func TestNewFeedback_Valid(t *testing.T) {
	useFakeClock(t)

	fb, err := NewFeedback(FeedbackInput{
		Rating:          "good",
		FeatureRequests: "  Offshore sites please  ",
		DataIssues:      "",
		Email:           "Analyst <analyst@example.in>",
	})

	require.NoError(t, err)
	assert.Equal(t, RatingGood, fb.Rating)
	assert.Equal(t, "Offshore sites please", fb.FeatureRequests)
	assert.Equal(t, "analyst@example.in", fb.Email)
	assert.Len(t, fb.ID, 36)
	assert.Equal(t, time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC), fb.SubmittedAt)
}

func TestNewFeedback_UniqueIDs(t *testing.T) {
	a, err := NewFeedback(FeedbackInput{Rating: "Poor"})
	require.NoError(t, err)
	b, err := NewFeedback(FeedbackInput{Rating: "Poor"})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewFeedback_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   FeedbackInput
	}{
		{"missing rating", FeedbackInput{}},
		{"unknown rating", FeedbackInput{Rating: "Superb"}},
		{"bad email", FeedbackInput{Rating: "Good", Email: "not-an-address"}},
		{"feature requests too long", FeedbackInput{Rating: "Good", FeatureRequests: strings.Repeat("x", maxFeedbackText+1)}},
		{"data issues too long", FeedbackInput{Rating: "Good", DataIssues: strings.Repeat("y", maxFeedbackText+1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFeedback(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidFeedback)
		})
	}
}
