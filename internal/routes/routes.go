package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/questforge/questforge-backend/internal/handlers"
	"github.com/questforge/questforge-backend/internal/middleware"
)

func SetupRoutes(r *chi.Mux) {
	// Public auth routes
	r.Post("/api/auth/register", handlers.Register)
	r.Post("/api/auth/login", handlers.Login)
	r.Post("/api/auth/logout", handlers.Logout)

	// Weather proxy (no session required)
	r.Post("/api/weather", handlers.Weather)

	// Session-authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		// Account
		r.Post("/api/account/setPassword", handlers.SetPassword)
		r.Post("/api/account/setUsername", handlers.SetUsername)
		r.Post("/api/account/deleteAccount", handlers.DeleteAccount)

		// Daily challenges
		r.Get("/api/challenge/getAll", handlers.GetAllChallenges)
		r.Post("/api/challenge/complete", handlers.CompleteChallenge)

		// Combat
		r.Get("/api/enemy/info", handlers.EnemyInfo)
		r.Post("/api/enemy/damage", handlers.DamageEnemy)

		// Shop
		r.Get("/api/shop/item", handlers.GetItem)
		r.Post("/api/shop/buy", handlers.BuyItem)

		// Streak
		r.Post("/api/streak/continue", handlers.ContinueStreak)
		r.Get("/api/streak/info", handlers.StreakInfo)
	})
}
