package main

import (
	"os"
	"strconv"
)

type Config struct {
	DatabaseURL  string
	JWTSecret    string
	CookieName   string
	CookieSecure bool
	CORSOrigin   string
	Port         string

	// Game tuning
	EarnRate         int // coins per whole minute of study
	StartingCurrency int // seeded into a fresh stats row

	DemoMode bool
}

func loadConfig() Config {
	secure := os.Getenv("COOKIE_SECURE") == "true"
	return Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		CookieName:   getenv("COOKIE_NAME", "sp_auth"),
		CookieSecure: secure,
		CORSOrigin:   getenv("CORS_ORIGIN", "http://localhost:5173"),
		Port:         getenv("PORT", "8080"),

		EarnRate:         getenvInt("EARN_RATE", 10),
		StartingCurrency: getenvInt("STARTING_CURRENCY", 100),

		DemoMode: os.Getenv("DEMO_MODE") == "true",
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
