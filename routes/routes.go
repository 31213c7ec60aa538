package routes

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	gorillasessions "github.com/gorilla/sessions"
	"github.com/jmoiron/sqlx"

	"inkwell/app/controllers"
	"inkwell/app/middleware"
	"inkwell/app/services"
)

// Config carries the stores and settings the router needs.
type Config struct {
	DB            *sqlx.DB
	Sessions      services.SessionStore
	SessionSecret []byte
	Logger        *slog.Logger

	// Templates overrides the on-disk views; nil loads them. Used by
	// tests that exercise the JSON surface only.
	Templates map[string]*template.Template
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(cfg Config) *mux.Router {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	cookieStore := gorillasessions.NewCookieStore(cfg.SessionSecret)
	set := controllers.NewSet(cfg.DB, cfg.Sessions, cookieStore, cfg.Templates)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.Recoverer(cfg.Logger))
	router.Use(middleware.CurrentUser(set.AuthService, cookieStore))

	// Serve static files
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Public routes
	router.HandleFunc("/", set.Post.Index).Methods("GET")
	router.HandleFunc("/register", set.Auth.RegisterForm).Methods("GET")
	router.HandleFunc("/register", set.Auth.Register).Methods("POST")
	router.HandleFunc("/login", set.Auth.LoginForm).Methods("GET")
	router.HandleFunc("/login", set.Auth.Login).Methods("POST")
	router.HandleFunc("/logout", set.Auth.Logout).Methods("GET")
	router.HandleFunc("/post/{id:[0-9]+}", set.Post.Show).Methods("GET")
	router.HandleFunc("/post/{id:[0-9]+}", set.Post.Comment).Methods("POST")
	router.HandleFunc("/about", set.Page.About).Methods("GET")
	router.HandleFunc("/contact", set.Page.Contact).Methods("GET")

	// Admin-only routes
	admin := router.NewRoute().Subrouter()
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/new-post", set.Post.New).Methods("GET")
	admin.HandleFunc("/new-post", set.Post.Create).Methods("POST")
	admin.HandleFunc("/edit-post/{id:[0-9]+}", set.Post.EditForm).Methods("GET")
	admin.HandleFunc("/edit-post/{id:[0-9]+}", set.Post.Update).Methods("POST")
	admin.HandleFunc("/delete/{id:[0-9]+}", set.Post.Delete).Methods("GET")
	admin.HandleFunc("/reset_db", set.Page.ResetDB).Methods("GET")

	return router
}

// StartServer starts the HTTP server on the specified address with the given router.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}
