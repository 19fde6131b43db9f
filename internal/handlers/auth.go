package handlers

import (
	"net/http"

	"github.com/questforge/questforge-backend/internal/apperrors"
	"github.com/questforge/questforge-backend/internal/middleware"
	"github.com/questforge/questforge-backend/internal/services"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	UsernameEmail string `json:"usernameEmail"`
	Password      string `json:"password"`
}

type authResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Register handles POST /api/auth/register.
func Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := deps.Auth.Register(r.Context(), req.Username, req.Email, req.Password); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Success: true, Message: "Account created successfully."})
}

// Login handles POST /api/auth/login. On success a rotated session
// token is stored in Redis and set as an HttpOnly cookie.
func Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.UsernameEmail == "" || req.Password == "" {
		writeError(w, r, apperrors.Validation("Username/email and password are required."))
		return
	}

	user, err := deps.Auth.Login(r.Context(), req.UsernameEmail, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := services.CreateSession(user.ID.Hex())
	if err != nil {
		writeError(w, r, apperrors.Internal("failed to create session", err))
		return
	}

	setSessionCookie(w, token, int(services.SessionDuration.Seconds()))
	writeJSON(w, http.StatusOK, authResponse{Success: true, Message: "Login successful."})
}

// Logout handles POST /api/auth/logout. Always clears the cookie, even
// when no valid session exists.
func Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		services.InvalidateSession(cookie.Value)
	}
	setSessionCookie(w, "", -1)
	writeJSON(w, http.StatusOK, authResponse{Success: true, Message: "Logged out."})
}

func setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
