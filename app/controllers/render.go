package controllers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	gorillasessions "github.com/gorilla/sessions"

	"inkwell/app/middleware"
	"inkwell/app/models"
)

// loadTemplates loads and parses all templates
func loadTemplates(basePath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	pages := map[string]string{
		"index":     "app/views/posts/index.html",
		"show":      "app/views/posts/show.html",
		"make-post": "app/views/posts/make-post.html",
		"register":  "app/views/auth/register.html",
		"login":     "app/views/auth/login.html",
		"about":     "app/views/pages/about.html",
		"contact":   "app/views/pages/contact.html",
	}
	for name, page := range pages {
		templates[name] = template.Must(template.ParseFiles(
			filepath.Join(basePath, "app/views/layout.html"),
			filepath.Join(basePath, page),
		))
	}
	return templates
}

// viewData is the payload every template receives.
type viewData struct {
	CurrentUser *models.User
	LoggedIn    bool
	IsAdmin     bool
	Flashes     []string
	Data        interface{}
}

// renderer holds templates and the cookie session store shared by all
// controllers.
type renderer struct {
	templates map[string]*template.Template
	store     gorillasessions.Store
}

func newRenderer(templates map[string]*template.Template, store gorillasessions.Store) *renderer {
	return &renderer{templates: templates, store: store}
}

// wantsJSON reports whether the client asked for a JSON response.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// render executes the named template with the shared view data attached,
// or answers JSON when the client asks for it.
func (rn *renderer) render(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	if wantsJSON(r) {
		rn.sendJSON(w, data)
		return
	}

	vd := viewData{
		CurrentUser: middleware.UserFromContext(r.Context()),
		Flashes:     rn.popFlashes(w, r),
		Data:        data,
	}
	vd.LoggedIn = vd.CurrentUser != nil
	vd.IsAdmin = vd.CurrentUser.IsAdmin()

	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, "Template not found: "+name, http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, "layout", vd); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// sendJSON sends a JSON response
func (rn *renderer) sendJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// sendError sends an error response in the format the client expects.
func (rn *renderer) sendError(w http.ResponseWriter, r *http.Request, message string, code int) {
	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{"error": message})
		return
	}
	http.Error(w, message, code)
}

// addFlash queues a one-shot notice for the next rendered page.
func (rn *renderer) addFlash(w http.ResponseWriter, r *http.Request, message string) {
	session, err := rn.store.Get(r, middleware.SessionName)
	if err != nil {
		return
	}
	session.AddFlash(message)
	session.Save(r, w)
}

// popFlashes drains queued notices.
func (rn *renderer) popFlashes(w http.ResponseWriter, r *http.Request) []string {
	session, err := rn.store.Get(r, middleware.SessionName)
	if err != nil {
		return nil
	}

	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	session.Save(r, w)

	flashes := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			flashes = append(flashes, s)
		}
	}
	return flashes
}

// setSessionToken stores the opaque auth token in the signed cookie.
func (rn *renderer) setSessionToken(w http.ResponseWriter, r *http.Request, token string) error {
	session, err := rn.store.Get(r, middleware.SessionName)
	if err != nil {
		session, err = rn.store.New(r, middleware.SessionName)
		if err != nil {
			return err
		}
	}
	session.Values[middleware.TokenKey] = token
	return session.Save(r, w)
}

// sessionToken returns the auth token from the cookie, if any.
func (rn *renderer) sessionToken(r *http.Request) string {
	session, err := rn.store.Get(r, middleware.SessionName)
	if err != nil {
		return ""
	}
	token, _ := session.Values[middleware.TokenKey].(string)
	return token
}

// clearSessionToken removes the auth token from the cookie.
func (rn *renderer) clearSessionToken(w http.ResponseWriter, r *http.Request) {
	session, err := rn.store.Get(r, middleware.SessionName)
	if err != nil {
		return
	}
	delete(session.Values, middleware.TokenKey)
	session.Save(r, w)
}
