package routes

import (
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/app/models"
	"inkwell/app/repositories"
	"inkwell/app/repositories/sessions"
)

// setupServer starts a test server on real SQLite and Badger stores with
// the admin account seeded. Templates are stubbed out; the test drives
// the JSON surface and redirects.
func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := repositories.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sessionStore, err := sessions.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { sessionStore.Close() })

	admin := &models.User{Name: "Admin", Email: "admin@example.com"}
	require.NoError(t, admin.SetPassword("admin-secret"))
	require.NoError(t, repositories.NewSQLiteUserRepository(db).Create(admin))
	require.Equal(t, models.AdminUserID, admin.ID)

	router := SetupRoutes(Config{
		DB:            db,
		Sessions:      sessionStore,
		SessionSecret: []byte("test-secret"),
		Templates:     map[string]*template.Template{},
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

// newClient returns a cookie-keeping client that does not follow
// redirects, so every response can be asserted directly.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postForm(t *testing.T, client *http.Client, rawURL string, values url.Values) *http.Response {
	t.Helper()
	resp, err := client.Post(rawURL, "application/x-www-form-urlencoded", strings.NewReader(values.Encode()))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getJSON(t *testing.T, client *http.Client, rawURL string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, body
}

func listTitles(t *testing.T, client *http.Client, baseURL string) []string {
	t.Helper()
	resp, body := getJSON(t, client, baseURL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var response struct {
		Posts []*models.Post `json:"Posts"`
	}
	require.NoError(t, json.Unmarshal(body, &response))

	titles := make([]string, 0, len(response.Posts))
	for _, post := range response.Posts {
		titles = append(titles, post.Title)
	}
	return titles
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) {
	t.Helper()
	values := url.Values{}
	values.Set("email", email)
	values.Set("password", password)
	resp := postForm(t, client, baseURL+"/login", values)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
}

func TestEndToEnd(t *testing.T) {
	server := setupServer(t)
	base := server.URL

	reader := newClient(t)
	adminClient := newClient(t)

	postValues := func(title string) url.Values {
		values := url.Values{}
		values.Set("title", title)
		values.Set("subtitle", "subtitle")
		values.Set("img_url", "https://example.com/img.jpg")
		values.Set("body", "<p>body</p>")
		return values
	}

	t.Run("register a reader account", func(t *testing.T) {
		values := url.Values{}
		values.Set("name", "A")
		values.Set("email", "a@example.com")
		values.Set("password", "reader-secret")
		resp := postForm(t, reader, base+"/register", values)
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
	})

	t.Run("reader cannot create posts", func(t *testing.T) {
		resp := postForm(t, reader, base+"/new-post", postValues("Hello"))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("anonymous caller cannot create posts", func(t *testing.T) {
		resp := postForm(t, newClient(t), base+"/new-post", postValues("Hello"))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin creates a post", func(t *testing.T) {
		login(t, adminClient, base, "admin@example.com", "admin-secret")

		resp := postForm(t, adminClient, base+"/new-post", postValues("Hello"))
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, []string{"Hello"}, listTitles(t, adminClient, base))
	})

	t.Run("reader comments on the post", func(t *testing.T) {
		values := url.Values{}
		values.Set("text", "first!")
		resp := postForm(t, reader, base+"/post/1", values)
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/post/1", resp.Header.Get("Location"))

		_, body := getJSON(t, reader, base+"/post/1")
		assert.Contains(t, string(body), "first!")
	})

	t.Run("anonymous comment redirects to login and persists nothing", func(t *testing.T) {
		values := url.Values{}
		values.Set("text", "drive-by")
		resp := postForm(t, newClient(t), base+"/post/1", values)
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))

		_, body := getJSON(t, reader, base+"/post/1")
		assert.NotContains(t, string(body), "drive-by")
	})

	t.Run("duplicate title is rejected", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, base+"/new-post", strings.NewReader(postValues("Hello").Encode()))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "application/json")
		resp, err := adminClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, []string{"Hello"}, listTitles(t, adminClient, base))
	})

	t.Run("admin edits the post", func(t *testing.T) {
		resp := postForm(t, adminClient, base+"/edit-post/1", postValues("Hello v2"))
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/post/1", resp.Header.Get("Location"))

		titles := listTitles(t, adminClient, base)
		assert.Equal(t, []string{"Hello v2"}, titles)
		assert.NotContains(t, titles, "Hello")
	})

	t.Run("reader cannot edit or delete", func(t *testing.T) {
		resp := postForm(t, reader, base+"/edit-post/1", postValues("Hijacked"))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		req, err := http.NewRequest(http.MethodGet, base+"/delete/1", nil)
		require.NoError(t, err)
		getResp, err := reader.Do(req)
		require.NoError(t, err)
		getResp.Body.Close()
		assert.Equal(t, http.StatusForbidden, getResp.StatusCode)
	})

	t.Run("admin deletes the post", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, base+"/delete/1", nil)
		require.NoError(t, err)
		resp, err := adminClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)

		assert.Empty(t, listTitles(t, adminClient, base))

		getResp, _ := getJSON(t, adminClient, base+"/post/1")
		assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
	})
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	server := setupServer(t)
	base := server.URL
	client := newClient(t)

	t.Run("duplicate registration redirects to login", func(t *testing.T) {
		values := url.Values{}
		values.Set("name", "Admin Again")
		values.Set("email", "admin@example.com")
		values.Set("password", "whatever")
		resp := postForm(t, client, base+"/register", values)
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("login then logout reverts to anonymous", func(t *testing.T) {
		login(t, client, base, "admin@example.com", "admin-secret")

		// Logged in: admin-only page is reachable.
		resp, _ := getJSON(t, client, base+"/new-post")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		req, err := http.NewRequest(http.MethodGet, base+"/logout", nil)
		require.NoError(t, err)
		logoutResp, err := client.Do(req)
		require.NoError(t, err)
		logoutResp.Body.Close()
		require.Equal(t, http.StatusSeeOther, logoutResp.StatusCode)

		// Logged out: the guard rejects again.
		resp, _ = getJSON(t, client, base+"/new-post")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestResetDBRequiresAdmin(t *testing.T) {
	server := setupServer(t)
	base := server.URL

	resp, _ := getJSON(t, newClient(t), base+"/reset_db")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
