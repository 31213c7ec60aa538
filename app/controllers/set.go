package controllers

import (
	"html/template"

	gorillasessions "github.com/gorilla/sessions"
	"github.com/jmoiron/sqlx"

	"inkwell/app/repositories"
	"inkwell/app/services"
)

// Set bundles the application's controllers, wired to shared services.
type Set struct {
	Auth *AuthController
	Post *PostController
	Page *PageController

	// AuthService is exposed for the current-user middleware.
	AuthService *services.AuthService
}

// NewSet builds repositories, services, and controllers on top of the
// given stores. A nil templates map loads the on-disk views.
func NewSet(db *sqlx.DB, sessionStore services.SessionStore, cookieStore gorillasessions.Store, templates map[string]*template.Template) *Set {
	if templates == nil {
		templates = loadTemplates("")
	}

	userRepo := repositories.NewSQLiteUserRepository(db)
	postRepo := repositories.NewSQLitePostRepository(db)
	commentRepo := repositories.NewSQLiteCommentRepository(db)

	authService := services.NewAuthService(userRepo, sessionStore)
	postService := services.NewPostService(postRepo, commentRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)

	rn := newRenderer(templates, cookieStore)

	return &Set{
		Auth:        NewAuthController(rn, authService),
		Post:        NewPostController(rn, postService, commentService),
		Page:        NewPageController(rn, db),
		AuthService: authService,
	}
}
