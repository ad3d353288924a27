package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/SameC137/flight-search/internal/amadeus"
	"github.com/SameC137/flight-search/internal/cache"
	"github.com/SameC137/flight-search/internal/handler"
	"github.com/SameC137/flight-search/internal/ratelimit"
)

type Config struct {
	Port         string
	AmadeusURL   string
	TokenURL     string
	ClientID     string
	ClientSecret string
	CacheEnabled bool
	RedisHost    string
	RedisPort    string
	RedisTTL     time.Duration
}

func main() {
	_ = godotenv.Load()

	cfg := loadConfig()
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		log.Fatal("AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET must be set")
	}

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	rateLimiter := ratelimit.NewEndpointLimiterWithDefaults()
	rateLimiter.SetEndpointLimit(amadeus.EndpointOffers, 10, 20)
	rateLimiter.SetEndpointLimit(amadeus.EndpointDates, 5, 10)
	rateLimiter.SetEndpointLimit(amadeus.EndpointLocations, 10, 20)
	rateLimiter.SetEndpointLimit(amadeus.EndpointPriceMetrics, 5, 10)

	tokens := amadeus.NewTokenCache(cfg.TokenURL, cfg.ClientID, cfg.ClientSecret, nil)
	client := amadeus.NewClient(cfg.AmadeusURL, tokens, rateLimiter)

	var flightCache cache.Cache
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host: cfg.RedisHost,
			Port: cfg.RedisPort,
			TTL:  cfg.RedisTTL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		flightCache = redisCache
		log.Printf("Redis cache enabled (host: %s:%s, TTL: %v)", cfg.RedisHost, cfg.RedisPort, cfg.RedisTTL)
	} else {
		flightCache = cache.NewNoOpCache()
		log.Println("Cache disabled")
	}

	searchHandler := handler.NewSearchHandler(client, flightCache)

	api := e.Group("/api/v1")
	api.GET("/flights/search", searchHandler.Search)
	api.GET("/flights/dates", searchHandler.CalendarPrices)
	api.GET("/locations/search", searchHandler.Locations)
	api.GET("/history", searchHandler.History)
	e.GET("/health", handler.HealthHandler)

	log.Printf("Starting flight search server on port %s", cfg.Port)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func loadConfig() Config {
	return Config{
		Port:         getEnv("PORT", "8080"),
		AmadeusURL:   getEnv("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),
		TokenURL:     getEnv("AMADEUS_TOKEN_URL", "https://test.api.amadeus.com/v1/security/oauth2/token"),
		ClientID:     getEnv("AMADEUS_CLIENT_ID", ""),
		ClientSecret: getEnv("AMADEUS_CLIENT_SECRET", ""),
		CacheEnabled: getEnvBool("CACHE_ENABLED", false),
		RedisHost:    getEnv("REDIS_HOST", "localhost"),
		RedisPort:    getEnv("REDIS_PORT", "6379"),
		RedisTTL:     getEnvDuration("REDIS_TTL", 5*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
