package service

import (
	"errors"
	"strings"
	"time"

	"github.com/inkwell/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrPostNotFound deliberately covers both "no such post" and "owned by
	// someone else" so author-scoped operations never leak existence.
	ErrPostNotFound     = errors.New("blog post not found or access denied")
	ErrAuthorNotFound   = errors.New("author not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrTagsNotFound     = errors.New("one or more tags not found")
	ErrPostSlugTaken    = errors.New("post slug already exists")
)

// PostService wraps blog post write operations.
type PostService struct {
	db *gorm.DB
}

// PostInput carries the fields accepted when creating a post.
type PostInput struct {
	Title      string
	Slug       string
	Content    string
	Excerpt    *string
	CategoryID *uint
	Status     string
	TagIDs     []uint
	AuthorID   uint
}

// PostUpdate carries a partial set of fields for updating a post. Nil
// pointers mean "leave unchanged"; the Set flags distinguish an explicit
// null from an absent field for the nullable columns. A non-nil empty
// TagIDs slice clears every tag association.
type PostUpdate struct {
	Title       *string
	Slug        *string
	Content     *string
	Excerpt     *string
	ExcerptSet  bool
	CategoryID  *uint
	CategorySet bool
	Status      *string
	TagIDs      []uint
	TagIDsSet   bool
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// Create validates every referenced row, then persists the post and its tag
// associations in one transaction. A post created as published gets its
// publish timestamp immediately.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	var created db.Post

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var author db.User
		if err := tx.First(&author, input.AuthorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAuthorNotFound
			}
			return err
		}

		if input.CategoryID != nil {
			var category db.Category
			if err := tx.First(&category, *input.CategoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCategoryNotFound
				}
				return err
			}
		}

		tags, err := fetchTagSet(tx, input.TagIDs)
		if err != nil {
			return err
		}

		slug := strings.TrimSpace(input.Slug)
		var dupe db.Post
		if err := tx.Where("slug = ?", slug).First(&dupe).Error; err == nil {
			return ErrPostSlugTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		post := db.Post{
			Title:      strings.TrimSpace(input.Title),
			Slug:       slug,
			Content:    input.Content,
			Excerpt:    input.Excerpt,
			AuthorID:   input.AuthorID,
			CategoryID: input.CategoryID,
			Status:     input.Status,
		}
		if input.Status == db.PostStatusPublished {
			now := time.Now()
			post.PublishedAt = &now
		}

		if err := tx.Create(&post).Error; err != nil {
			return err
		}

		if len(tags) > 0 {
			if err := tx.Model(&post).Association("Tags").Append(&tags); err != nil {
				return err
			}
		}

		created = post
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// Update applies the provided fields to a post owned by authorID. Moving
// into published stamps the publish time only on the draft→published edge;
// moving into draft always clears it. A supplied tag id list replaces the
// whole association set.
func (s *PostService) Update(id, authorID uint, input PostUpdate) (*db.Post, error) {
	var updated db.Post

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing db.Post
		if err := tx.Where("id = ? AND author_id = ?", id, authorID).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		if input.Title != nil {
			updates["title"] = strings.TrimSpace(*input.Title)
		}
		if input.Slug != nil {
			slug := strings.TrimSpace(*input.Slug)
			var dupe db.Post
			if err := tx.Where("slug = ? AND id <> ?", slug, id).First(&dupe).Error; err == nil {
				return ErrPostSlugTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			updates["slug"] = slug
		}
		if input.Content != nil {
			updates["content"] = *input.Content
		}
		if input.ExcerptSet {
			updates["excerpt"] = input.Excerpt
		}
		if input.CategorySet {
			if input.CategoryID != nil {
				var category db.Category
				if err := tx.First(&category, *input.CategoryID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return ErrCategoryNotFound
					}
					return err
				}
			}
			updates["category_id"] = input.CategoryID
		}
		if input.Status != nil {
			updates["status"] = *input.Status
			if *input.Status == db.PostStatusPublished && existing.Status != db.PostStatusPublished {
				updates["published_at"] = time.Now()
			}
			if *input.Status == db.PostStatusDraft {
				updates["published_at"] = nil
			}
		}

		if len(updates) > 0 {
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return err
			}
		}

		if input.TagIDsSet {
			tags, err := fetchTagSet(tx, input.TagIDs)
			if err != nil {
				return err
			}
			assoc := tx.Model(&existing).Association("Tags")
			if len(tags) == 0 {
				if err := assoc.Clear(); err != nil {
					return err
				}
			} else if err := assoc.Replace(&tags); err != nil {
				return err
			}
		}

		return tx.First(&updated, id).Error
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes a post owned by authorID together with its tag join rows
// and comments. It reports false, not an error, when nothing matched.
func (s *PostService) Delete(id, authorID uint) (bool, error) {
	deleted := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var post db.Post
		if err := tx.Where("id = ? AND author_id = ?", id, authorID).First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		// Join rows and comments go first; the tag rows themselves stay.
		if err := tx.Model(&post).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&db.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&post).Error; err != nil {
			return err
		}

		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}

// fetchTagSet resolves tag ids all-or-nothing: any unknown id rejects the
// whole set. A nil or empty input yields an empty set.
func fetchTagSet(tx *gorm.DB, ids []uint) ([]db.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var tags []db.Tag
	if err := tx.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, ErrTagsNotFound
	}
	return tags, nil
}
