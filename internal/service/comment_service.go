package service

import (
	"errors"
	"strings"

	"github.com/inkwell/internal/db"
	"gorm.io/gorm"
)

var ErrCommentNotFound = errors.New("comment not found")

// CommentService wraps comment creation and moderation.
type CommentService struct {
	db *gorm.DB
}

// CommentInput carries the fields a visitor submits with a comment.
type CommentInput struct {
	Content     string
	AuthorName  string
	AuthorEmail string
	PostID      uint
}

// NewCommentService creates a CommentService instance.
func NewCommentService(gdb *gorm.DB) *CommentService {
	return &CommentService{db: gdb}
}

// Create persists a visitor comment against an existing post. The status
// is always pending; callers cannot pre-approve their own comments.
func (s *CommentService) Create(input CommentInput) (*db.Comment, error) {
	var post db.Post
	if err := s.db.First(&post, input.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := db.Comment{
		Content:     input.Content,
		AuthorName:  strings.TrimSpace(input.AuthorName),
		AuthorEmail: strings.TrimSpace(input.AuthorEmail),
		PostID:      input.PostID,
		Status:      db.CommentStatusPending,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	return &comment, nil
}

// UpdateStatus overwrites a comment's moderation status. Any status may
// move to any other; there are no transition restrictions.
func (s *CommentService) UpdateStatus(id uint, status string) (*db.Comment, error) {
	var comment db.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&comment).Update("status", status).Error; err != nil {
		return nil, err
	}

	return &comment, nil
}

// ListApproved returns the approved comments for a post in insertion
// order. An unknown post id yields an empty list, not an error.
func (s *CommentService) ListApproved(postID uint) ([]db.Comment, error) {
	var comments []db.Comment
	if err := s.db.
		Where("post_id = ? AND status = ?", postID, db.CommentStatusApproved).
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
