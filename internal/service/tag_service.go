package service

import (
	"strings"

	"github.com/inkwell/internal/db"
	"gorm.io/gorm"
)

// TagService wraps tag reference data operations.
// Like categories, tags are immutable once created.
type TagService struct {
	db *gorm.DB
}

// NewTagService creates a TagService instance.
func NewTagService(gdb *gorm.DB) *TagService {
	return &TagService{db: gdb}
}

// Create inserts a new tag. Duplicate names are allowed; tags are free labels.
func (s *TagService) Create(name string) (*db.Tag, error) {
	tag := db.Tag{Name: strings.TrimSpace(name)}
	if err := s.db.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// List returns all tags in creation order.
func (s *TagService) List() ([]db.Tag, error) {
	var tags []db.Tag
	if err := s.db.Order("id asc").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
