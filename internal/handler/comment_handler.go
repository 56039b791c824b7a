package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/internal/db"
	"github.com/inkwell/internal/service"
)

type createCommentRequest struct {
	Content     string `json:"content" binding:"required,min=1,max=1000"`
	AuthorName  string `json:"author_name" binding:"required,min=1,max=100"`
	AuthorEmail string `json:"author_email" binding:"required,email"`
	PostID      uint   `json:"post_id" binding:"required"`
}

type updateCommentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateComment accepts a visitor comment. No session is required and the
// stored status is always pending, whatever the caller sends.
func (a *API) CreateComment(c *gin.Context) {
	var req createCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := a.comments.Create(service.CommentInput{
		Content:     req.Content,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		PostID:      req.PostID,
	})
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to create comment")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// UpdateCommentStatus moves a comment to any moderation status.
func (a *API) UpdateCommentStatus(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req updateCommentStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if !db.ValidCommentStatus(req.Status) {
		respondError(c, http.StatusBadRequest, "status must be pending, approved or rejected")
		return
	}

	comment, err := a.comments.UpdateStatus(id, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to update comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

// GetPostComments lists approved comments for a post.
func (a *API) GetPostComments(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	comments, err := a.comments.ListApproved(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list comments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}
