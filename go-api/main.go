package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	gormlogger "gorm.io/gorm/logger"
)

// api bundles the injected dependencies the handlers need. The ledger is
// an interface so tests can swap in a sqlite-backed store.
type api struct {
	store  Storage
	cfg    Config
	breaks *activeBreaks
}

func newAPI(store Storage, cfg Config) *api {
	return &api{store: store, cfg: cfg, breaks: newActiveBreaks()}
}

func loadDotenv() {
	for _, p := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Overload(p)
			log.Println("[env] loaded", p)
			return
		}
	}
}

func main() {
	loadDotenv()
	mustLoadEnv()

	cfg := loadConfig()

	// Quieter GORM logger
	gLogger := gormlogger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold: 1500 * time.Millisecond,
			LogLevel:      gormlogger.Warn,
			Colorful:      true,
		},
	)

	db, _, err := openGormIPv4(cfg.DatabaseURL, gLogger) // pgx simple protocol + IPv4 enforced
	if err != nil {
		log.Fatalf("[DB] connect failed: %v", err)
	}
	log.Println("[DB] connected")

	if err := autoMigrate(db); err != nil {
		log.Fatalf("[DB] migrate failed: %v", err)
	}

	store := newGormStorage(db)
	if err := seedBreaks(store); err != nil {
		log.Fatalf("[seed] breaks failed: %v", err)
	}
	if cfg.DemoMode {
		if err := seedDemoUser(store, cfg); err != nil {
			log.Printf("[seed] demo user failed: %v", err)
		}
	}

	a := newAPI(store, cfg)

	// ---- Router & middleware
	r := chi.NewRouter()

	// allow comma-separated list of origins
	var origins []string
	for _, p := range strings.Split(cfg.CORSOrigin, ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Set-Cookie"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	// Finish bare OPTIONS quickly
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	a.routes(r)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Println("API listening on", addr, "CORS_ORIGIN:", cfg.CORSOrigin)
	log.Fatal(srv.ListenAndServe())
}

// routes mounts every endpoint. Split out so httptest can mount the same
// surface onto its own router.
func (a *api) routes(r chi.Router) {
	// Auth
	r.Post("/api/register", a.handleRegister)
	r.Post("/api/login", a.handleLogin)
	r.Post("/api/logout", a.handleLogout)
	r.Get("/api/user", a.handleMe)

	// Break catalog is public; everything else needs a session
	r.Get("/api/breaks", a.handleListBreaks)
	r.Post("/api/breaks/{id}/purchase", requireAuth(a.handlePurchaseBreak))
	r.Post("/api/breaks/end", requireAuth(a.handleEndBreak))

	r.Get("/api/stats/{userId}", requireAuth(a.handleGetStats))
	r.Patch("/api/stats/{userId}", requireAuth(a.handlePatchStats))

	r.Get("/api/sessions/{userId}", requireAuth(a.handleListSessions))
	r.Post("/api/sessions", requireAuth(a.handleCreateSession))

	r.Post("/api/update-streak", requireAuth(a.handleUpdateStreak))

	// Health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
}
