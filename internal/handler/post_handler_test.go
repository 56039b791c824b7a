package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/internal/db"
	"github.com/inkwell/internal/service"
)

func TestCreateBlogPostValidation(t *testing.T) {
	api, gdb := setupTestAPI(t)
	r := newTestEngine(api)
	user := seedHandlerAuthor(t, gdb, "a@example.com")
	cookies := sessionCookie(t, r, user.ID)

	cases := []struct {
		name    string
		payload map[string]any
	}{
		{"missing title", map[string]any{"slug": "hello", "content": "body", "status": "draft"}},
		{"missing content", map[string]any{"title": "Hello", "slug": "hello", "status": "draft"}},
		{"bad status", map[string]any{"title": "Hello", "slug": "hello", "content": "body", "status": "archived"}},
		{"overlong title", map[string]any{"title": strings.Repeat("x", 201), "slug": "hello", "content": "body", "status": "draft"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/posts", tc.payload, cookies)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestCreateBlogPostUsesSessionAuthor(t *testing.T) {
	api, gdb := setupTestAPI(t)
	r := newTestEngine(api)
	user := seedHandlerAuthor(t, gdb, "a@example.com")
	cookies := sessionCookie(t, r, user.ID)

	payload := map[string]any{
		"title": "Hello", "slug": "hello", "content": "body", "status": "published",
		// An author_id in the payload must be ignored.
		"author_id": user.ID + 100,
	}
	w := doJSON(t, r, http.MethodPost, "/posts", payload, cookies)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Post db.Post `json:"post"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Post.AuthorID != user.ID {
		t.Fatalf("expected author %d from session, got %d", user.ID, resp.Post.AuthorID)
	}
	if resp.Post.PublishedAt == nil {
		t.Fatal("expected published_at on published post")
	}
}

func TestUpdateBlogPostInvalidStatus(t *testing.T) {
	api, gdb := setupTestAPI(t)
	r := newTestEngine(api)
	user := seedHandlerAuthor(t, gdb, "a@example.com")
	cookies := sessionCookie(t, r, user.ID)

	w := doJSON(t, r, http.MethodPut, "/posts/1", map[string]any{"status": "archived"}, cookies)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateBlogPostForeignReturnsNotFound(t *testing.T) {
	api, gdb := setupTestAPI(t)
	r := newTestEngine(api)
	owner := seedHandlerAuthor(t, gdb, "a@example.com")
	intruder := seedHandlerAuthor(t, gdb, "b@example.com")

	post, err := service.NewPostService(gdb).Create(service.PostInput{
		Title: "Hello", Slug: "hello", Content: "body",
		Status: db.PostStatusDraft, AuthorID: owner.ID,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	cookies := sessionCookie(t, r, intruder.ID)
	w := doJSON(t, r, http.MethodPut, "/posts/"+strconv.Itoa(int(post.ID)), map[string]any{"title": "Stolen"}, cookies)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateBlogPostNullCategoryClears(t *testing.T) {
	api, gdb := setupTestAPI(t)
	r := newTestEngine(api)
	user := seedHandlerAuthor(t, gdb, "a@example.com")

	category := db.Category{Name: "Engineering", Slug: "engineering"}
	if err := gdb.Create(&category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	post, err := service.NewPostService(gdb).Create(service.PostInput{
		Title: "Hello", Slug: "hello", Content: "body",
		CategoryID: &category.ID, Status: db.PostStatusDraft, AuthorID: user.ID,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	cookies := sessionCookie(t, r, user.ID)
	// Raw body so category_id is an explicit JSON null, not an absent field.
	w := doJSON(t, r, http.MethodPut, "/posts/"+strconv.Itoa(int(post.ID)),
		json.RawMessage(`{"category_id":null}`), cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var reloaded db.Post
	if err := gdb.First(&reloaded, post.ID).Error; err != nil {
		t.Fatalf("reload post: %v", err)
	}
	if reloaded.CategoryID != nil {
		t.Fatalf("expected category cleared, got %v", *reloaded.CategoryID)
	}
}

func TestDeleteBlogPostReportsMatch(t *testing.T) {
	api, gdb := setupTestAPI(t)
	r := newTestEngine(api)
	owner := seedHandlerAuthor(t, gdb, "a@example.com")
	intruder := seedHandlerAuthor(t, gdb, "b@example.com")

	post, err := service.NewPostService(gdb).Create(service.PostInput{
		Title: "Hello", Slug: "hello", Content: "body",
		Status: db.PostStatusDraft, AuthorID: owner.ID,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	path := "/posts/" + strconv.Itoa(int(post.ID))

	foreign := doJSON(t, r, http.MethodDelete, path, nil, sessionCookie(t, r, intruder.ID))
	if foreign.Code != http.StatusOK || !strings.Contains(foreign.Body.String(), `"deleted":false`) {
		t.Fatalf("expected deleted:false for intruder, got %d: %s", foreign.Code, foreign.Body.String())
	}

	owned := doJSON(t, r, http.MethodDelete, path, nil, sessionCookie(t, r, owner.ID))
	if owned.Code != http.StatusOK || !strings.Contains(owned.Body.String(), `"deleted":true`) {
		t.Fatalf("expected deleted:true for owner, got %d: %s", owned.Code, owned.Body.String())
	}
}

func TestGetBlogPostBySlugReturnsNullForDraft(t *testing.T) {
	api, gdb := setupTestAPI(t)
	user := seedHandlerAuthor(t, gdb, "a@example.com")

	if _, err := service.NewPostService(gdb).Create(service.PostInput{
		Title: "Draft", Slug: "draft", Content: "body",
		Status: db.PostStatusDraft, AuthorID: user.ID,
	}); err != nil {
		t.Fatalf("create draft: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/posts/slug/draft", nil)
	c.Params = gin.Params{gin.Param{Key: "slug", Value: "draft"}}

	api.GetBlogPostBySlug(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if string(body["post"]) != "null" {
		t.Fatalf("expected null post, got %s", body["post"])
	}
}

func TestGetBlogPostsRendersContentHTML(t *testing.T) {
	api, gdb := setupTestAPI(t)
	user := seedHandlerAuthor(t, gdb, "a@example.com")

	if _, err := service.NewPostService(gdb).Create(service.PostInput{
		Title: "Hello", Slug: "hello", Content: "# Heading\n\nbody",
		Status: db.PostStatusPublished, AuthorID: user.ID,
	}); err != nil {
		t.Fatalf("create post: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/posts", nil)

	api.GetBlogPosts(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Posts []struct {
			ContentHTML string    `json:"content_html"`
			Tags        []db.Tag  `json:"tags"`
			Author      db.User   `json:"author"`
			Comments    []db.Post `json:"comments"`
		} `json:"posts"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(resp.Posts))
	}
	if !strings.Contains(resp.Posts[0].ContentHTML, "<h1") {
		t.Fatalf("expected rendered markdown heading, got %q", resp.Posts[0].ContentHTML)
	}
	// Relations are arrays even when empty.
	if resp.Posts[0].Tags == nil {
		t.Fatal("expected tags to be an empty array, not null")
	}
	if resp.Posts[0].Author.ID != user.ID {
		t.Fatalf("expected author attached, got %+v", resp.Posts[0].Author)
	}
}
