package handlers

import (
	"net/http"

	"github.com/questforge/questforge-backend/internal/apperrors"
)

type completeChallengeRequest struct {
	ChallengeID string `json:"challengeId"`
}

type completeChallengeResponse struct {
	Points int `json:"points"`
}

// GetAllChallenges handles GET /api/challenge/getAll. The read
// reconciles both the catalog and the user's status list.
func GetAllChallenges(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	infos, err := deps.Challenges.UserChallenges(r.Context(), user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, infos)
}

// CompleteChallenge handles POST /api/challenge/complete.
func CompleteChallenge(w http.ResponseWriter, r *http.Request) {
	var req completeChallengeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.ChallengeID == "" {
		writeError(w, r, apperrors.Validation("Challenge ID is required."))
		return
	}

	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	points, err := deps.Challenges.Complete(r.Context(), user, req.ChallengeID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, completeChallengeResponse{Points: points})
}
