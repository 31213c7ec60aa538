package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	gorillasessions "github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/app/models"
	"inkwell/app/repositories"
	"inkwell/app/repositories/mock"
	"inkwell/app/services"
)

type fakeSessionStore struct {
	tokens map[string]int
	nextID int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{tokens: make(map[string]int), nextID: 1}
}

func (f *fakeSessionStore) Create(userID int) (string, error) {
	token := fmt.Sprintf("token-%d", f.nextID)
	f.nextID++
	f.tokens[token] = userID
	return token, nil
}

func (f *fakeSessionStore) Get(token string) (int, error) {
	userID, ok := f.tokens[token]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	return userID, nil
}

func (f *fakeSessionStore) Delete(token string) error {
	delete(f.tokens, token)
	return nil
}

func TestRequireAdmin(t *testing.T) {
	var reached bool
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	t.Run("anonymous request is forbidden", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodGet, "/new-post", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, reached)
	})

	t.Run("non-admin user is forbidden", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodGet, "/new-post", nil)
		req = req.WithContext(WithUser(req.Context(), &models.User{ID: 2, Name: "Grace"}))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, reached)
	})

	t.Run("admin passes through", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodGet, "/new-post", nil)
		req = req.WithContext(WithUser(req.Context(), &models.User{ID: models.AdminUserID, Name: "Ada"}))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, reached)
	})
}

func TestCurrentUser(t *testing.T) {
	userRepo := mock.NewUserRepository()
	sessionStore := newFakeSessionStore()
	auth := services.NewAuthService(userRepo, sessionStore)
	cookieStore := gorillasessions.NewCookieStore([]byte("test-secret"))

	user := &models.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "x$y"}
	require.NoError(t, userRepo.Create(user))
	token, err := sessionStore.Create(user.ID)
	require.NoError(t, err)

	var seen *models.User
	handler := CurrentUser(auth, cookieStore)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserFromContext(r.Context())
	}))

	// sessionCookie builds a signed cookie carrying the given token.
	sessionCookie := func(t *testing.T, tok string) *http.Cookie {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		session, err := cookieStore.Get(req, SessionName)
		require.NoError(t, err)
		session.Values[TokenKey] = tok
		require.NoError(t, session.Save(req, w))
		cookies := w.Result().Cookies()
		require.NotEmpty(t, cookies)
		return cookies[0]
	}

	t.Run("no cookie means anonymous", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.Nil(t, seen)
	})

	t.Run("valid session resolves the user", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(sessionCookie(t, token))
		handler.ServeHTTP(httptest.NewRecorder(), req)
		require.NotNil(t, seen)
		assert.Equal(t, "Ada", seen.Name)
	})

	t.Run("revoked token means anonymous", func(t *testing.T) {
		seen = nil
		require.NoError(t, sessionStore.Delete(token))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(sessionCookie(t, token))
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.Nil(t, seen)
	})
}
