package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/internal/db"
	"github.com/inkwell/internal/service"
)

type createPostRequest struct {
	Title      string  `json:"title" binding:"required,min=1,max=200"`
	Slug       string  `json:"slug" binding:"required,min=1,max=200"`
	Content    string  `json:"content" binding:"required,min=1"`
	Excerpt    *string `json:"excerpt"`
	CategoryID *uint   `json:"category_id"`
	Status     string  `json:"status" binding:"required"`
	TagIDs     []uint  `json:"tag_ids"`
}

// updatePostRequest distinguishes absent fields from explicit nulls for
// the nullable columns by keeping them as raw JSON until decode time.
type updatePostRequest struct {
	Title      *string         `json:"title"`
	Slug       *string         `json:"slug"`
	Content    *string         `json:"content"`
	Excerpt    json.RawMessage `json:"excerpt"`
	CategoryID json.RawMessage `json:"category_id"`
	Status     *string         `json:"status"`
	TagIDs     *[]uint         `json:"tag_ids"`
}

// CreateBlogPost persists a new post for the logged-in author.
func (a *API) CreateBlogPost(c *gin.Context) {
	var req createPostRequest
	if !bindJSON(c, &req) {
		return
	}
	if !db.ValidPostStatus(req.Status) {
		respondError(c, http.StatusBadRequest, "status must be draft or published")
		return
	}

	post, err := a.posts.Create(service.PostInput{
		Title:      req.Title,
		Slug:       req.Slug,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		CategoryID: req.CategoryID,
		Status:     req.Status,
		TagIDs:     req.TagIDs,
		AuthorID:   currentUserID(c),
	})
	if err != nil {
		respondPostWriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// UpdateBlogPost applies a partial update to a post the caller owns.
func (a *API) UpdateBlogPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req updatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	input, err := buildPostUpdate(req)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	post, err := a.posts.Update(id, currentUserID(c), input)
	if err != nil {
		respondPostWriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// DeleteBlogPost removes a post the caller owns, cascading to its join
// rows and comments. The response tells whether anything matched.
func (a *API) DeleteBlogPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	deleted, err := a.posts.Delete(id, currentUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// GetBlogPosts returns every published post with full relation decoration.
func (a *API) GetBlogPosts(c *gin.Context) {
	posts, err := a.posts.ListPublished()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list posts")
		return
	}

	views := make([]postView, 0, len(posts))
	for _, post := range posts {
		views = append(views, buildPostView(post))
	}

	c.JSON(http.StatusOK, gin.H{"posts": views})
}

// GetBlogPostBySlug returns one published post or null, never a 404.
func (a *API) GetBlogPostBySlug(c *gin.Context) {
	post, err := a.posts.GetBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load post")
		return
	}
	if post == nil {
		c.JSON(http.StatusOK, gin.H{"post": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": buildPostView(*post)})
}

// GetAuthorPosts lists the caller's own posts, drafts included.
func (a *API) GetAuthorPosts(c *gin.Context) {
	posts, err := a.posts.ListByAuthor(currentUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// buildPostUpdate validates and converts the wire format into the
// service's partial-update input.
func buildPostUpdate(req updatePostRequest) (service.PostUpdate, error) {
	input := service.PostUpdate{
		Title:   req.Title,
		Slug:    req.Slug,
		Content: req.Content,
		Status:  req.Status,
	}

	if req.Title != nil && (len(*req.Title) == 0 || len(*req.Title) > 200) {
		return input, errors.New("title must be between 1 and 200 characters")
	}
	if req.Slug != nil && (len(*req.Slug) == 0 || len(*req.Slug) > 200) {
		return input, errors.New("slug must be between 1 and 200 characters")
	}
	if req.Content != nil && len(*req.Content) == 0 {
		return input, errors.New("content must not be empty")
	}
	if req.Status != nil && !db.ValidPostStatus(*req.Status) {
		return input, errors.New("status must be draft or published")
	}

	if len(req.Excerpt) > 0 {
		input.ExcerptSet = true
		if err := json.Unmarshal(req.Excerpt, &input.Excerpt); err != nil {
			return input, errors.New("excerpt must be a string or null")
		}
	}
	if len(req.CategoryID) > 0 {
		input.CategorySet = true
		if err := json.Unmarshal(req.CategoryID, &input.CategoryID); err != nil {
			return input, errors.New("category_id must be a number or null")
		}
	}
	if req.TagIDs != nil {
		input.TagIDsSet = true
		input.TagIDs = *req.TagIDs
	}

	return input, nil
}

func respondPostWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrAuthorNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrTagsNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPostSlugTaken):
		respondError(c, http.StatusConflict, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "failed to save post")
	}
}
