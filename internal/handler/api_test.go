package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/inkwell/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestAPI(t *testing.T) (*API, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return NewAPI(gdb), gdb
}

// newTestEngine wires the handlers behind session middleware plus a test
// route that logs a user id straight into the session.
func newTestEngine(api *API) *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("inkwell_session", store))

	r.POST("/register", api.Register)
	r.POST("/login", api.Login)
	r.POST("/logout", api.Logout)

	auth := r.Group("")
	auth.Use(AuthRequired())
	{
		auth.GET("/me", api.Me)
		auth.GET("/me/posts", api.GetAuthorPosts)
		auth.POST("/posts", api.CreateBlogPost)
		auth.PUT("/posts/:id", api.UpdateBlogPost)
		auth.DELETE("/posts/:id", api.DeleteBlogPost)
		auth.PUT("/comments/:id/status", api.UpdateCommentStatus)
	}

	r.GET("/__test/login/:id", func(c *gin.Context) {
		id, err := parseUintParam(c, "id")
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		if err := saveSessionUser(c, id); err != nil {
			respondError(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.Status(http.StatusOK)
	})

	return r
}

// sessionCookie establishes a session for userID and returns its cookies.
func sessionCookie(t *testing.T, r *gin.Engine, userID uint) []*http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/__test/login/"+strconv.Itoa(int(userID)), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("test login failed with status %d", w.Code)
	}
	return w.Result().Cookies()
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	out := map[string]json.RawMessage{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func seedHandlerAuthor(t *testing.T, gdb *gorm.DB, email string) db.User {
	t.Helper()
	user := db.User{Username: "writer", Email: email, PasswordHash: "x", Role: db.RoleAuthor}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}
