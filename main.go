package main

import (
	auth "GlassFrame/internal/auth"
	batch "GlassFrame/internal/calc/batch"
	frame "GlassFrame/internal/calc/frame"
	report "GlassFrame/internal/calc/report"
	config "GlassFrame/internal/config"
	profile "GlassFrame/internal/profile"
	repo "GlassFrame/internal/repo"
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"log"

	"github.com/gorilla/mux"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg config.Config, store repo.Repository) {
	authEnv := &auth.Authenv{JWTkey: cfg.TokenKey, Users: cfg.Users, Repo: store, Secure: cfg.TLS()}
	profileH := &profile.ProfileHandler{Repo: store}

	limiter := auth.NewIPRateLimiter(cfg.RateLimit, cfg.RateBurst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/logout", authEnv.LogoutHandler).Methods("POST")
	api.HandleFunc("/last-user", profileH.LastUser).Methods("GET")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	frameH := &frame.Handler{Decimals: cfg.Decimals}
	batchH := &batch.Handler{Decimals: cfg.Decimals}
	reportH := &report.Handler{Decimals: cfg.Decimals, Repo: store}

	secureApi.HandleFunc("/profile", profileH.GetProfile).Methods("GET")
	secureApi.HandleFunc("/sheets", frameH.Sheets).Methods("GET")
	secureApi.HandleFunc("/frame/calc", frameH.Calc).Methods("POST")
	secureApi.HandleFunc("/frame/batch", batchH.Calc).Methods("POST")
	secureApi.HandleFunc("/frame/import", batchH.Import).Methods("POST")
	secureApi.HandleFunc("/frame/export", batchH.Export).Methods("POST")
	secureApi.HandleFunc("/report/pdf", reportH.Generate).Methods("POST")

	authFileServer := http.FileServer(http.Dir(filepath.Join(cfg.StaticDir, "auth")))
	mux.PathPrefix("/auth/").
		Handler(authEnv.RedirectIfLoggedIn(http.StripPrefix("/auth", authFileServer)))
	mainFileServer := http.FileServer(http.Dir(filepath.Join(cfg.StaticDir, "main")))
	mux.PathPrefix("/").
		Handler(authEnv.AuthMiddleware(mainFileServer))
}

func openStore(ctx context.Context, cfg config.Config) (repo.Repository, func()) {
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set, keeping activity log in memory")
		return repo.NewMemory(), func() {}
	}
	db, err := repo.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	return repo.NewPostgresDB(db), func() { db.Close() }
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store, closeStore := openStore(ctx, cfg)
	defer closeStore()

	mux := mux.NewRouter()
	HandleList(mux, cfg, store)
	handler := CORS(mux)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLS() {
			log.Printf("Starting server on %s (TLS)", cfg.Addr)
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			log.Printf("Starting server on %s", cfg.Addr)
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
