package domain

import (
	"context"
	"log/slog"
)

// Country is appended to forward-geocoding queries.
const Country = "India"

// Place is the geocoded label attached to a state's map marker.
type Place struct {
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
	PlaceName        string  `json:"place_name,omitempty"`
	Confidence       float64 `json:"confidence,omitempty"`
	Source           string  `json:"source,omitempty"` // "forward", "reverse", "original", "failed"
}

// ResolvePlace looks up a display label for the profile's marker. If geocoder
// is nil the profile's own coordinates are returned with an empty Source.
// Geocoding failures degrade to the original coordinates with Source "failed".
func ResolvePlace(ctx context.Context, profile StateWindProfile, geocoder Geocoder, logger *slog.Logger) Place {
	place := Place{Lat: profile.Lat, Lon: profile.Lon}
	if geocoder == nil {
		return place
	}

	// Forward geocode: state name → coordinates (when coords are missing).
	if !profile.HasCoordinates() {
		if profile.Name == "" {
			place.Source = "original"
			return place
		}
		result, err := geocoder.ForwardGeocode(ctx, profile.Name, Country)
		if err != nil {
			logger.Warn("forward geocoding failed",
				"state", profile.Name,
				"error", err,
			)
			place.Source = "failed"
			return place
		}
		if result.Lat != 0 || result.Lon != 0 {
			place.Lat = result.Lat
			place.Lon = result.Lon
			place.FormattedAddress = result.FormattedAddress
			place.PlaceName = result.PlaceName
			place.Confidence = result.Confidence
			place.Source = "forward"
			return place
		}
		place.Source = "original"
		return place
	}

	// Reverse geocode: coordinates → place details.
	result, err := geocoder.ReverseGeocode(ctx, profile.Lat, profile.Lon)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"state", profile.Name,
			"lat", profile.Lat,
			"lon", profile.Lon,
			"error", err,
		)
		place.Source = "failed"
		return place
	}
	if result.FormattedAddress != "" {
		place.FormattedAddress = result.FormattedAddress
		place.PlaceName = result.PlaceName
		place.Confidence = result.Confidence
		place.Source = "reverse"
		return place
	}
	place.Source = "original"
	return place
}
