package controllers

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"inkwell/app/repositories"
)

// PageController serves the static pages and the admin-only database
// reset.
type PageController struct {
	*renderer
	db *sqlx.DB
}

// NewPageController creates a new PageController
func NewPageController(rn *renderer, db *sqlx.DB) *PageController {
	return &PageController{renderer: rn, db: db}
}

// About renders the about page
func (pg *PageController) About(w http.ResponseWriter, r *http.Request) {
	pg.render(w, r, "about", nil)
}

// Contact renders the contact page
func (pg *PageController) Contact(w http.ResponseWriter, r *http.Request) {
	pg.render(w, r, "contact", nil)
}

// ResetDB drops and recreates all tables. Development tool; the route is
// wrapped in the admin guard so it can no longer be reached anonymously.
func (pg *PageController) ResetDB(w http.ResponseWriter, r *http.Request) {
	if err := repositories.Reset(pg.db); err != nil {
		pg.sendError(w, r, "Failed to reset database: "+err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
