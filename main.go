package main

import (
	auth "Frostline/internal/auth"
	coolingload "Frostline/internal/calc/coolingload"
	batch "Frostline/internal/calc/premium/batch"
	importer "Frostline/internal/calc/premium/importer"
	report "Frostline/internal/calc/report"
	config "Frostline/internal/config"
	logging "Frostline/internal/logging"
	project "Frostline/internal/project"
	projects "Frostline/internal/projects"
	repo "Frostline/internal/repo"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(h http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(h)
}

// HandleList registers every route. db may be nil, in which case accounts
// and saved projects are not served.
func HandleList(router *mux.Router, cfg config.Config, db *sql.DB) {
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(logging.Middleware, limiter.Middleware)

	loadH := &coolingload.Handler{}
	reportH := &report.Handler{}
	projectH := &project.Handler{}
	batchH := &batch.Handler{}
	importH := &importer.Handler{}

	tools := api.PathPrefix("/tools/coolingload").Subrouter()
	tools.HandleFunc("/calc", loadH.Calc).Methods("POST")
	tools.HandleFunc("/report/xlsx", reportH.XLSX).Methods("POST")
	tools.HandleFunc("/report/pdf", reportH.PDF).Methods("POST")
	tools.HandleFunc("/project/save", projectH.Save).Methods("POST")
	tools.HandleFunc("/project/load", projectH.Load).Methods("POST")
	tools.HandleFunc("/batch", batchH.Calc).Methods("POST")
	tools.HandleFunc("/import", importH.Import).Methods("POST")

	if db != nil {
		store := repo.NewPostgres(db)
		authEnv := &auth.Env{Key: []byte(cfg.TokenKey), Users: store}
		projectsH := &projects.Handler{Repo: store}

		api.HandleFunc("/register", authEnv.Register).Methods("POST")
		api.HandleFunc("/login", authEnv.Login).Methods("POST")
		api.HandleFunc("/logout", authEnv.Logout).Methods("POST")

		secureApi := api.PathPrefix("/user").Subrouter()
		secureApi.Use(authEnv.Middleware)
		secureApi.HandleFunc("/projects", projectsH.List).Methods("GET")
		secureApi.HandleFunc("/projects", projectsH.Create).Methods("POST")
		secureApi.HandleFunc("/projects/{id}", projectsH.Get).Methods("GET")
		secureApi.HandleFunc("/projects/{id}", projectsH.Update).Methods("PUT")
		secureApi.HandleFunc("/projects/{id}", projectsH.Delete).Methods("DELETE")
	}

	router.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir)))
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logging.Ctx(ctx).ErrorContext(ctx, "invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logging.SetLevel(cfg.LogLevel)

	var db *sql.DB
	if cfg.Accounts() {
		db, err = repo.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logging.Ctx(ctx).ErrorContext(ctx, "database unavailable", slog.Any("error", err))
			os.Exit(1)
		}
		defer db.Close()
		if err := repo.NewPostgres(db).Migrate(ctx); err != nil {
			logging.Ctx(ctx).ErrorContext(ctx, "migration failed", slog.Any("error", err))
			os.Exit(1)
		}
	}

	router := mux.NewRouter()
	HandleList(router, cfg, db)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handlers.LoggingHandler(os.Stdout, CORS(router)),
	}

	logging.Ctx(ctx).InfoContext(ctx, "starting server",
		slog.String("addr", cfg.HTTPAddr),
		slog.Bool("tls", cfg.TLS()),
		slog.Bool("accounts", cfg.Accounts()),
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Ctx(ctx).ErrorContext(ctx, "server error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()
	logging.Default().Info("shutdown signal received")

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Default().Error("server shutdown failed", slog.Any("error", err))
	}
	wg.Wait()
	logging.Default().Info("server stopped")
}
