package service

import (
	"errors"

	"github.com/inkwell/internal/db"
	"gorm.io/gorm"
)

// ListPublished returns every published post decorated with its author,
// category, tags and comments. Comments are attached regardless of
// moderation status here; only the by-slug view filters them. The
// asymmetry is inherited from the product behavior and kept on purpose.
func (s *PostService) ListPublished() ([]db.Post, error) {
	var posts []db.Post
	if err := s.db.
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		Preload("Comments").
		Where("status = ?", db.PostStatusPublished).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetBySlug returns a single published post by its unique slug, with only
// approved comments attached. A missing or draft post yields (nil, nil).
func (s *PostService) GetBySlug(slug string) (*db.Post, error) {
	var post db.Post
	err := s.db.
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		Preload("Comments", "status = ?", db.CommentStatusApproved).
		Where("slug = ? AND status = ?", slug, db.PostStatusPublished).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// ListByAuthor returns every post owned by authorID, any status, newest
// created first, without relation decoration.
func (s *PostService) ListByAuthor(authorID uint) ([]db.Post, error) {
	var posts []db.Post
	if err := s.db.
		Where("author_id = ?", authorID).
		Order("created_at desc").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
