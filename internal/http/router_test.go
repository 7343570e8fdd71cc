package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/auth"
	"github.com/mrlokans/library/internal/database"
	auditRepo "github.com/mrlokans/library/internal/database/audit"
	"github.com/mrlokans/library/internal/database/authors"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/database/links"
	"github.com/mrlokans/library/internal/database/users"
	"github.com/mrlokans/library/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouterConfig(t *testing.T) RouterConfig {
	t.Helper()
	db, err := database.NewDatabaseWithOptions(filepath.Join(t.TempDir(), "library.db"), database.Options{LogLevel: logger.Silent})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	journal := audit.NewService(auditRepo.NewRepository(db.DB), nil)
	return RouterConfig{
		Users:    services.NewUserService(users.NewRepository(db.DB), auth.NewBcryptHasher(bcrypt.MinCost), journal),
		Books:    services.NewBookService(books.NewRepository(db.DB), journal),
		Authors:  services.NewAuthorService(authors.NewRepository(db.DB), journal),
		Library:  services.NewLibraryService(links.NewRepository(db.DB), journal),
		Audit:    journal,
		Database: db,
		Version:  "test",
	}
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return NewRouter(newTestRouterConfig(t))
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func detail(t *testing.T, w *httptest.ResponseRecorder) string {
	return decode[ErrorResponse](t, w).Detail
}

var adaBody = map[string]any{
	"first_name": "Ada",
	"last_name":  "Lovelace",
	"email":      "ada@example.com",
	"password":   "averylongpassword",
}

func TestHome(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<h1>")
}

func TestHealthAndPing(t *testing.T) {
	router := setupRouter(t)

	for _, path := range []string{"/health", "/ping"} {
		w := do(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := decode[HealthResponse](t, w)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "ok", resp.Checks["database"])
		assert.Equal(t, "ok", resp.Checks["schema"])
		assert.Equal(t, "test", resp.Version)
	}
}

func TestHealth_UnreachableStore(t *testing.T) {
	cfg := newTestRouterConfig(t)
	require.NoError(t, cfg.Database.Close())
	router := NewRouter(cfg)

	w := do(t, router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decode[HealthResponse](t, w)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Contains(t, resp.Checks["database"], "error")
}

func TestHealth_MissingTable(t *testing.T) {
	cfg := newTestRouterConfig(t)
	require.NoError(t, cfg.Database.DB.Migrator().DropTable("Book_Author"))
	router := NewRouter(cfg)

	w := do(t, router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "missing tables: Book_Author", decode[HealthResponse](t, w).Checks["schema"])
}

func TestUsers_CreateThenDuplicate(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodPost, "/user/new", adaBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, w)
	assert.NotZero(t, created["id_user"])
	assert.Equal(t, "Ada", created["first_name"])
	assert.Equal(t, "ada@example.com", created["email"])
	assert.Equal(t, "**********", created["password"])

	w = do(t, router, http.MethodPost, "/user/new", adaBody)
	assert.Equal(t, http.StatusNotAcceptable, w.Code)
	assert.Equal(t, "this email already exists", detail(t, w))

	w = do(t, router, http.MethodGet, "/users", nil)
	assert.Len(t, decode[[]map[string]any](t, w), 1)
}

func TestUsers_CreateRejections(t *testing.T) {
	router := setupRouter(t)

	for _, email := range []string{"nope", "foo bar@example.com", "<script>x@example.com", "this is not an email, ada@example.com"} {
		w := do(t, router, http.MethodPost, "/user/new", map[string]any{"email": email, "password": "averylongpassword"})
		assert.Equal(t, http.StatusNotAcceptable, w.Code, email)
		assert.Equal(t, "the email is not valid", detail(t, w))
	}
	assert.JSONEq(t, `[]`, do(t, router, http.MethodGet, "/users", nil).Body.String())

	w := do(t, router, http.MethodPost, "/user/new", map[string]any{"email": "a@example.com", "password": "short"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, detail(t, w), "password")

	w = do(t, router, http.MethodPost, "/user/new", `{"email":`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, router, http.MethodPost, "/user/new", map[string]any{"email": "a@example.com", "password": "averylongpassword", "birth_date": "12/10/1815"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, detail(t, w), "birth_date")
}

func TestUsers_DetailsIdentityValidation(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		path   string
		status int
	}{
		{"/user/details", http.StatusUnprocessableEntity},
		{"/user/details?id_user=abc", http.StatusUnprocessableEntity},
		{"/user/details?id_user=0", http.StatusUnprocessableEntity},
		{"/user/details?id_user=-3", http.StatusUnprocessableEntity},
		{"/user/details?id_user=42", http.StatusNotAcceptable},
		{"/user/details?id_user=4294967296", http.StatusNotAcceptable},
		{"/user/details?id_user=9223372036854775808", http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(t, router, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestUsers_UpdateAndDelete(t *testing.T) {
	router := setupRouter(t)

	created := decode[map[string]any](t, do(t, router, http.MethodPost, "/user/new", adaBody))
	id := created["id_user"]

	w := do(t, router, http.MethodPut, "/user/update", map[string]any{"id_user": id})
	assert.Equal(t, http.StatusNotAcceptable, w.Code)
	assert.Equal(t, "at least one field to change is required", detail(t, w))

	w = do(t, router, http.MethodPut, "/user/update", map[string]any{"id_user": id, "last_name": "King", "first_name": nil})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[map[string]any](t, w)
	assert.Equal(t, "King", updated["last_name"])
	assert.Equal(t, "Ada", updated["first_name"])

	w = do(t, router, http.MethodPut, "/user/update", map[string]any{"id_user": 999, "last_name": "X"})
	assert.Equal(t, http.StatusNotAcceptable, w.Code)
	assert.Equal(t, "the user does not exist", detail(t, w))

	w = do(t, router, http.MethodDelete, "/user/delete?id_user=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "King", decode[map[string]any](t, w)["last_name"])

	w = do(t, router, http.MethodDelete, "/user/delete?id_user=1", nil)
	assert.Equal(t, http.StatusNotAcceptable, w.Code)
}

func TestUsers_LegacyFieldUpdate(t *testing.T) {
	router := setupRouter(t)
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/user/new", adaBody).Code)

	w := do(t, router, http.MethodPut, "/user/update_user/1/first_name/Augusta", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "true", w.Header().Get("Deprecation"))
	assert.JSONEq(t, `{"message":"Update successful","id_user":1,"first_name":"Augusta"}`, w.Body.String())

	w = do(t, router, http.MethodGet, "/user/details?id_user=1", nil)
	assert.Equal(t, "Augusta", decode[map[string]any](t, w)["first_name"])

	w = do(t, router, http.MethodPut, "/user/update_user/1/password/anothergoodpassword", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "**********", decode[map[string]any](t, w)["password"])

	w = do(t, router, http.MethodPut, "/user/update_user/1/is_admin/1", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, router, http.MethodPut, "/user/update_user/1/email/not-an-email", nil)
	assert.Equal(t, http.StatusNotAcceptable, w.Code)

	w = do(t, router, http.MethodPut, "/user/update_user/7/last_name/Byron", nil)
	assert.Equal(t, http.StatusNotAcceptable, w.Code)
}

func TestBooks_DefaultsAndPartialUpdate(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodPost, "/book/new", map[string]any{"title": "Dune", "pages": 412})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	book := decode[map[string]any](t, w)
	assert.Equal(t, "No defined", book["reading_age"])
	assert.Equal(t, "No defined", book["language"])
	assert.Equal(t, book["date_add"], book["date_update"])
	id := book["id_book"]

	w = do(t, router, http.MethodPut, "/book/update", map[string]any{"id_book": id, "pages": 420})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, router, http.MethodGet, "/book/details?id_book=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stored := decode[map[string]any](t, w)
	assert.Equal(t, "Dune", stored["title"])
	assert.Equal(t, float64(420), stored["pages"])
}

func TestBooks_EnumLabels(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodPost, "/book/new", map[string]any{
		"title": "Momo", "pages": 300, "reading_age": "8 - 10 years", "language": "german",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	book := decode[map[string]any](t, w)
	assert.Equal(t, "8 - 10 years", book["reading_age"])
	assert.Equal(t, "german", book["language"])

	w = do(t, router, http.MethodPost, "/book/new", map[string]any{"title": "X", "pages": 1, "language": "klingon"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, router, http.MethodPost, "/book/new", map[string]any{"title": "X", "pages": 10001})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestBooks_NullEnumsTakeDefaults(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodPost, "/book/new", `{"title":"Dune","pages":412,"reading_age":null,"language":null}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	book := decode[map[string]any](t, w)
	assert.Equal(t, "No defined", book["reading_age"])
	assert.Equal(t, "No defined", book["language"])
}

func TestBooks_IdentityOnlyUpdate(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodPut, "/book/update", map[string]any{"id_book": 1})

	assert.Equal(t, http.StatusNotAcceptable, w.Code)
}

func TestAuthors_DeleteUnknown(t *testing.T) {
	router := setupRouter(t)
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/author/new", map[string]any{"name": "Frank Herbert"}).Code)

	w := do(t, router, http.MethodDelete, "/author/delete?id_author=999999", nil)
	assert.Equal(t, http.StatusNotAcceptable, w.Code)
	assert.Equal(t, "the author does not exist", detail(t, w))

	w = do(t, router, http.MethodGet, "/authors", nil)
	assert.Len(t, decode[[]map[string]any](t, w), 1)
}

func TestAuthors_EmptyList(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodGet, "/authors", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestAuthors_UpdateRoundTrip(t *testing.T) {
	router := setupRouter(t)
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/author/new", map[string]any{"name": "Mary Shelley", "birthdate": "1797-08-30"}).Code)

	w := do(t, router, http.MethodPut, "/author/update", map[string]any{"id_author": 1, "genre": "Gothic"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored := decode[map[string]any](t, do(t, router, http.MethodGet, "/author/details?id_author=1", nil))
	assert.Equal(t, "Mary Shelley", stored["name"])
	assert.Equal(t, "Gothic", stored["genre"])
	assert.Equal(t, "1797-08-30", stored["birthdate"])
	assert.Nil(t, stored["nationality"])
}

func TestLibrary(t *testing.T) {
	router := setupRouter(t)
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/user/new", adaBody).Code)
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/book/new", map[string]any{"title": "Dune", "pages": 412}).Code)
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/author/new", map[string]any{"name": "Frank Herbert"}).Code)

	w := do(t, router, http.MethodPost, "/user/library", map[string]any{"id_user": 1, "id_book": 1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, router, http.MethodPost, "/user/library", map[string]any{"id_user": 1, "id_book": 1})
	assert.Equal(t, http.StatusNotAcceptable, w.Code)

	w = do(t, router, http.MethodPost, "/user/library", map[string]any{"id_user": 1, "id_book": 2})
	assert.Equal(t, http.StatusNotAcceptable, w.Code)
	assert.Equal(t, "the book does not exist", detail(t, w))

	w = do(t, router, http.MethodGet, "/user/library?id_user=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	shelf := decode[[]map[string]any](t, w)
	require.Len(t, shelf, 1)
	assert.Equal(t, "Dune", shelf[0]["title"])

	w = do(t, router, http.MethodDelete, "/user/library?id_user=1&id_book=1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodDelete, "/user/library?id_user=1&id_book=1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "the book is not in the user's library", detail(t, w))

	w = do(t, router, http.MethodPost, "/book/author", map[string]any{"id_book": 1, "id_author": 1})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, router, http.MethodGet, "/book/authors?id_book=1", nil)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = do(t, router, http.MethodDelete, "/book/author?id_book=1&id_author=1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodDelete, "/book/author?id_book=1&id_author=1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAudit_ListsChanges(t *testing.T) {
	router := setupRouter(t)
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/book/new", map[string]any{"title": "Dune", "pages": 412}).Code)
	require.Equal(t, http.StatusOK, do(t, router, http.MethodDelete, "/book/delete?id_book=1", nil).Code)

	w := do(t, router, http.MethodGet, "/audit?limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Data []struct {
			Action string `json:"action"`
		} `json:"data"`
		Total   int64 `json:"total"`
		Limit   int   `json:"limit"`
		HasMore bool  `json:"has_more"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 10, page.Limit)
	assert.False(t, page.HasMore)
	require.Len(t, page.Data, 2)
	assert.ElementsMatch(t, []string{"book_create", "book_delete"}, []string{page.Data[0].Action, page.Data[1].Action})

	w = do(t, router, http.MethodGet, "/audit?limit=-1", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRequestID(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodGet, "/", nil)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	cfg := newTestRouterConfig(t)
	cfg.RateLimiter = auth.NewRateLimiter(auth.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 2})
	defer cfg.RateLimiter.Stop()
	router := NewRouter(cfg)

	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, router, http.MethodGet, "/", nil).Code)
}

func TestRecovery(t *testing.T) {
	router := setupRouter(t)
	router.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := do(t, router, http.MethodGet, "/boom", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", detail(t, w))
}
