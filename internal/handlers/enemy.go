package handlers

import (
	"net/http"
)

type damageEnemyRequest struct {
	// Damage is optional; omitted means a full commit of all points.
	Damage *int `json:"damage"`
}

// EnemyInfo handles GET /api/enemy/info, spawning an enemy on first read.
func EnemyInfo(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	info, err := deps.Combat.Info(r.Context(), user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

// DamageEnemy handles POST /api/enemy/damage.
func DamageEnemy(w http.ResponseWriter, r *http.Request) {
	var req damageEnemyRequest
	if r.ContentLength != 0 {
		if err := decodeBody(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
	}

	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	info, err := deps.Combat.Damage(r.Context(), user, req.Damage)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}
