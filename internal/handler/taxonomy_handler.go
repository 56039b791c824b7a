package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/internal/service"
)

type createCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Slug string `json:"slug" binding:"required,min=1,max=100"`
}

type createTagRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}

// CreateCategory adds a category with a unique slug.
func (a *API) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := a.categories.Create(req.Name, req.Slug)
	if err != nil {
		if errors.Is(err, service.ErrCategorySlugTaken) {
			respondError(c, http.StatusConflict, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to create category")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// GetCategories lists all categories.
func (a *API) GetCategories(c *gin.Context) {
	categories, err := a.categories.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateTag adds a tag.
func (a *API) CreateTag(c *gin.Context) {
	var req createTagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := a.tags.Create(req.Name)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create tag")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tag": tag})
}

// GetTags lists all tags.
func (a *API) GetTags(c *gin.Context) {
	tags, err := a.tags.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list tags")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}
