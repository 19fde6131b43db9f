package handlers

import (
	"net/http"

	"github.com/questforge/questforge-backend/internal/apperrors"
)

type weatherRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Units     string   `json:"units,omitempty"`
}

// Weather handles POST /api/weather, proxying OpenWeatherMap.
func Weather(w http.ResponseWriter, r *http.Request) {
	var req weatherRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		writeError(w, r, apperrors.Validation("Latitude and longitude are required."))
		return
	}

	info, err := deps.Weather.Current(r.Context(), *req.Latitude, *req.Longitude, req.Units)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}
