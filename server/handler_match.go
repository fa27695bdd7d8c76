package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	tracematcher "github.com/theoremus-urban-solutions/trace-matcher"
	"github.com/theoremus-urban-solutions/trace-matcher/formatter"
)

// matchRequest is the POST /api/match body. Validation mirrors the
// pipeline's preconditions so malformed traces are rejected before any
// external call.
type matchRequest struct {
	Fixes []fixPayload `json:"fixes" validate:"required,min=2,dive"`
}

type fixPayload struct {
	ID   string  `json:"id"`
	Lat  float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon  float64 `json:"lon" validate:"gte=-180,lte=180"`
	Time string  `json:"time" validate:"required"`
}

type errorResponse struct {
	Error string `json:"error"`
}

var validate = validator.New()

func (req *matchRequest) toFixes() ([]tracematcher.Fix, error) {
	fixes := make([]tracematcher.Fix, 0, len(req.Fixes))
	for i, p := range req.Fixes {
		ts, err := time.Parse(time.RFC3339, p.Time)
		if err != nil {
			return nil, fmt.Errorf("fix %d: time %q is not RFC3339", i, p.Time)
		}
		fixes = append(fixes, tracematcher.Fix{ID: p.ID, Lat: p.Lat, Lon: p.Lon, Time: ts})
	}
	return fixes, nil
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	fixes, err := req.toFixes()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.matcher.Match(r.Context(), fixes)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, tracematcher.ErrInsufficientFixes) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	if r.URL.Query().Get("format") == "geojson" {
		body, err := formatter.BuildGeoJSON(result)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write(body)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(formatter.BuildJSON(result))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
