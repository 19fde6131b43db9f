package handlers

import (
	"errors"
	"net/http"

	"github.com/questforge/questforge-backend/internal/apperrors"
	"github.com/questforge/questforge-backend/internal/middleware"
	"github.com/questforge/questforge-backend/internal/models"
	"github.com/questforge/questforge-backend/internal/services"
	"github.com/questforge/questforge-backend/internal/store"
)

// Deps wires the engines into the handler package. Set once at startup
// via Init, before the router starts serving.
type Deps struct {
	Users      store.UserRepository
	Auth       *services.AuthService
	Challenges *services.ChallengeService
	Combat     *services.CombatService
	Shop       *services.ShopService
	Streak     *services.StreakService
	Weather    *services.WeatherService
}

var deps Deps

func Init(d Deps) {
	deps = d
}

// currentUser loads the authenticated user's document. RequireAuth has
// already validated the session; a missing document means the account
// was deleted while the session was live.
func currentUser(r *http.Request) (*models.User, error) {
	id := middleware.UserID(r)
	if id == "" {
		return nil, apperrors.Unauthenticated("Please authenticate first.")
	}
	user, err := deps.Users.FindByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound("User not found.")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to load user", err)
	}
	return user, nil
}
