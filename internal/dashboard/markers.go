package dashboard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/couchcryptid/wind-analytics-service/internal/domain"
)

// Initial national map view.
const (
	MapCenterLat = 20.5937
	MapCenterLon = 78.9629
	MapZoom      = 5
)

// Marker is one state's circle marker on the national map.
type Marker struct {
	State     string               `json:"state"`
	Lat       float64              `json:"lat"`
	Lon       float64              `json:"lon"`
	Potential domain.PotentialTier `json:"potential"`
	Color     string               `json:"color"`
	Popup     string               `json:"popup"`
	Tooltip   string               `json:"tooltip"`
	Place     *domain.Place        `json:"place,omitempty"`
}

// MapView is the national map: its initial centre and zoom plus markers.
type MapView struct {
	CenterLat float64  `json:"center_lat"`
	CenterLon float64  `json:"center_lon"`
	Zoom      int      `json:"zoom"`
	Markers   []Marker `json:"markers"`
}

// Markers builds the map for the selected tiers. An empty selection
// includes every state.
func (s *Service) Markers(ctx context.Context, tiers []domain.PotentialTier) MapView {
	profiles := s.dataset.Filter(tiers...)
	markers := make([]Marker, 0, len(profiles))
	for _, p := range profiles {
		markers = append(markers, newMarker(p, s.place(ctx, p)))
	}
	return MapView{
		CenterLat: MapCenterLat,
		CenterLon: MapCenterLon,
		Zoom:      MapZoom,
		Markers:   markers,
	}
}

func newMarker(p domain.StateWindProfile, place *domain.Place) Marker {
	speed := strconv.FormatFloat(p.WindSpeed, 'f', -1, 64)
	return Marker{
		State:     p.Name,
		Lat:       p.Lat,
		Lon:       p.Lon,
		Potential: p.Potential,
		Color:     p.Potential.MarkerColor(),
		Popup:     fmt.Sprintf("%s: %s m/s (%s)", p.Name, speed, p.Potential),
		Tooltip:   fmt.Sprintf("%s - %s m/s", p.Name, speed),
		Place:     place,
	}
}
