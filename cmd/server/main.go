package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/questforge/questforge-backend/internal/config"
	"github.com/questforge/questforge-backend/internal/database"
	"github.com/questforge/questforge-backend/internal/handlers"
	"github.com/questforge/questforge-backend/internal/middleware"
	"github.com/questforge/questforge-backend/internal/routes"
	"github.com/questforge/questforge-backend/internal/services"
	"github.com/questforge/questforge-backend/internal/store"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load and validate configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	// Connect to MongoDB
	log.Printf("Connecting to MongoDB...")
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB: ", err)
	}
	defer database.Disconnect()

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis: ", err)
	}
	defer database.DisconnectRedis()

	// Repositories over the shared Mongo database
	users := store.NewMongoUsers(database.DB)
	challenges := store.NewMongoChallenges(database.DB)
	items := store.NewMongoItems(database.DB)
	templates := store.NewMongoEnemyTemplates(database.DB)

	// Seed static collections on first boot
	if err := services.EnsureShopItems(context.Background(), items); err != nil {
		log.Printf("⚠️  WARNING: failed to seed shop items: %v", err)
	}
	if err := services.EnsureEnemyTemplates(context.Background(), templates); err != nil {
		log.Printf("⚠️  WARNING: failed to seed enemy templates: %v", err)
	}

	// Challenge generation: Gemini when configured, random pool otherwise
	var generator services.Generator = services.RandomGenerator{}
	if cfg.GeminiAPIKey != "" {
		generator = services.NewGeminiGenerator(cfg.GeminiAPIKey, cfg.GeminiModel)
		log.Println("✅ Gemini challenge generation enabled")
	} else {
		log.Println("GEMINI_API_KEY not set, using random challenge generation")
	}

	catalog := services.NewCatalog(challenges, generator)

	handlers.Init(handlers.Deps{
		Users:      users,
		Auth:       services.NewAuthService(users),
		Challenges: services.NewChallengeService(users, catalog),
		Combat:     services.NewCombatService(users, templates),
		Shop:       services.NewShopService(items, users),
		Streak:     services.NewStreakService(users),
		Weather:    services.NewWeatherService(cfg.WeatherAPIKey, cfg.WeatherEnabled),
	})
	if cfg.WeatherEnabled {
		log.Println("✅ Weather proxy enabled")
	}

	// Setup router
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Production: security headers + in-process limiters on top of the
	// Redis limiter. Non-production: Redis limiter only.
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP + login rate limiting)")
	}
	r.Use(middleware.RateLimitMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r)

	log.Printf("🚀 questforge backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
