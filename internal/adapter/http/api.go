package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/couchcryptid/wind-analytics-service/internal/domain"
)

const maxBodyBytes = 64 << 10

// calculateRequest carries calculator inputs. Parameters is applied on top of
// the named state's defaults (or the global defaults without a state), so a
// client may send only the fields it changed.
type calculateRequest struct {
	State      string          `json:"state,omitempty"`
	Parameters json.RawMessage `json:"parameters,omitempty"`
}

type errorResponse struct {
	Error  string              `json:"error"`
	Fields []*domain.RangeError `json:"fields,omitempty"`
}

func (s *Server) handleStates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.dashboard.States())
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := s.dashboard.Overview(r.Context(), r.PathValue("name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	params, err := s.dashboard.Defaults(r.PathValue("name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, params)
}

func (s *Server) handleTiers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.dashboard.Tiers())
}

func (s *Server) handleParameters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.dashboard.Bounds().List())
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	tiers, err := parseTiers(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.dashboard.Comparison(tiers))
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	tiers, err := parseTiers(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.dashboard.Markers(r.Context(), tiers))
}

func (s *Server) handleSources(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.dashboard.Sources())
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	params := domain.DefaultParameters()
	if req.State != "" {
		defaults, err := s.dashboard.Defaults(req.State)
		if err != nil {
			s.writeError(w, err)
			return
		}
		params = defaults
	}
	if len(req.Parameters) > 0 {
		dec := json.NewDecoder(bytes.NewReader(req.Parameters))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&params); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid parameters: %v", err)})
			return
		}
	}

	a, err := s.dashboard.Calculate(r.Context(), req.State, params)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var in domain.FeedbackInput
	if err := decodeBody(w, r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	fb, err := s.dashboard.SubmitFeedback(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"id": fb.ID, "status": "accepted"})
}

// writeError maps domain errors to status codes. Anything unrecognised is
// logged and reported as a 500 without detail.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownState):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrOutOfRange):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "parameters out of range",
			Fields: domain.RangeErrors(err),
		})
	case errors.Is(err, domain.ErrInvalidFeedback):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("invalid request body: must contain a single JSON object")
	}
	return nil
}

// parseTiers reads repeated or comma-separated ?tier= values. No values
// means no filter.
func parseTiers(r *http.Request) ([]domain.PotentialTier, error) {
	var tiers []domain.PotentialTier
	for _, raw := range r.URL.Query()["tier"] {
		for _, label := range strings.Split(raw, ",") {
			if strings.TrimSpace(label) == "" {
				continue
			}
			t, err := domain.ParseTier(label)
			if err != nil {
				return nil, err
			}
			tiers = append(tiers, t)
		}
	}
	return tiers, nil
}
