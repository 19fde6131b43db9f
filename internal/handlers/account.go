package handlers

import (
	"net/http"

	"github.com/questforge/questforge-backend/internal/middleware"
	"github.com/questforge/questforge-backend/internal/services"
)

type setPasswordRequest struct {
	Password            string `json:"password"`
	PasswordNew         string `json:"passwordNew"`
	PasswordNewValidate string `json:"passwordNewValidate"`
}

type setUsernameRequest struct {
	Username string `json:"username"`
}

type deleteAccountRequest struct {
	Password string `json:"password"`
}

// SetPassword handles POST /api/account/setPassword. A successful change
// drops the live session, so the client has to log in again.
func SetPassword(w http.ResponseWriter, r *http.Request) {
	var req setPasswordRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	userID := middleware.UserID(r)
	if err := deps.Auth.ChangePassword(r.Context(), userID, req.Password, req.PasswordNew, req.PasswordNewValidate); err != nil {
		writeError(w, r, err)
		return
	}

	services.InvalidateUserSessions(userID)
	setSessionCookie(w, "", -1)
	writeJSON(w, http.StatusOK, authResponse{Success: true, Message: "Password updated."})
}

// SetUsername handles POST /api/account/setUsername.
func SetUsername(w http.ResponseWriter, r *http.Request) {
	var req setUsernameRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := deps.Auth.SetUsername(r.Context(), middleware.UserID(r), req.Username); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Success: true, Message: "Username updated."})
}

// DeleteAccount handles POST /api/account/deleteAccount. The session is
// invalidated and the cookie cleared alongside the document delete.
func DeleteAccount(w http.ResponseWriter, r *http.Request) {
	var req deleteAccountRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	userID := middleware.UserID(r)
	if err := deps.Auth.DeleteAccount(r.Context(), userID, req.Password); err != nil {
		writeError(w, r, err)
		return
	}

	services.InvalidateUserSessions(userID)
	setSessionCookie(w, "", -1)
	writeJSON(w, http.StatusOK, authResponse{Success: true, Message: "Account deleted."})
}
