package handlers

import (
	"net/http"

	"github.com/questforge/questforge-backend/internal/apperrors"
)

type buyItemRequest struct {
	ItemID string `json:"itemId"`
}

// GetItem handles GET /api/shop/item?id=<hex>.
func GetItem(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, r, apperrors.Validation("Item ID is required."))
		return
	}

	item, err := deps.Shop.Item(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// BuyItem handles POST /api/shop/buy.
func BuyItem(w http.ResponseWriter, r *http.Request) {
	var req buyItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.ItemID == "" {
		writeError(w, r, apperrors.Validation("Item ID is required."))
		return
	}

	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := deps.Shop.Buy(r.Context(), user, req.ItemID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}
