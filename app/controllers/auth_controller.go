package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"inkwell/app/models"
	"inkwell/app/services"
)

// AuthController handles registration, login, and logout.
type AuthController struct {
	*renderer
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(rn *renderer, authService *services.AuthService) *AuthController {
	return &AuthController{renderer: rn, authService: authService}
}

// registerViewData is what the register template renders.
type registerViewData struct {
	Form   *models.RegisterForm
	Errors models.FieldErrors
}

// RegisterForm displays the registration form
func (ac *AuthController) RegisterForm(w http.ResponseWriter, r *http.Request) {
	ac.render(w, r, "register", registerViewData{Form: &models.RegisterForm{}})
}

// Register handles a registration submission. A duplicate email never
// creates a second account; the visitor is redirected to login with a
// notice instead.
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ac.sendError(w, r, "Bad request", http.StatusBadRequest)
		return
	}

	form := &models.RegisterForm{}
	form.ParseForm(r.PostForm)
	if fieldErrs := form.Validate(); fieldErrs != nil {
		ac.render(w, r, "register", registerViewData{Form: form, Errors: fieldErrs})
		return
	}

	_, token, err := ac.authService.Register(form.Name, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			ac.addFlash(w, r, fmt.Sprintf("Hey %s, looks like you are already registered. Go log in with email: %s!", form.Name, form.Email))
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		ac.sendError(w, r, "Registration failed", http.StatusInternalServerError)
		return
	}

	if err := ac.setSessionToken(w, r, token); err != nil {
		ac.sendError(w, r, "Failed to establish session", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// loginViewData is what the login template renders.
type loginViewData struct {
	Form   *models.LoginForm
	Errors models.FieldErrors
}

// LoginForm displays the login form
func (ac *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	ac.render(w, r, "login", loginViewData{Form: &models.LoginForm{}})
}

// Login handles a login submission.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ac.sendError(w, r, "Bad request", http.StatusBadRequest)
		return
	}

	form := &models.LoginForm{}
	form.ParseForm(r.PostForm)
	if fieldErrs := form.Validate(); fieldErrs != nil {
		ac.render(w, r, "login", loginViewData{Form: form, Errors: fieldErrs})
		return
	}

	_, token, err := ac.authService.Login(form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownEmail):
			ac.addFlash(w, r, fmt.Sprintf("That email %s does not exist, please try again.", form.Email))
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		case errors.Is(err, services.ErrBadCredentials):
			ac.addFlash(w, r, "Password incorrect, please try again.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		default:
			ac.sendError(w, r, "Login failed", http.StatusInternalServerError)
		}
		return
	}

	if err := ac.setSessionToken(w, r, token); err != nil {
		ac.sendError(w, r, "Failed to establish session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout clears the session unconditionally and redirects home.
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	token := ac.sessionToken(r)
	_ = ac.authService.Logout(token)
	ac.clearSessionToken(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
