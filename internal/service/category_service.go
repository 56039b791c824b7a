package service

import (
	"errors"
	"strings"

	"github.com/inkwell/internal/db"
	"gorm.io/gorm"
)

var ErrCategorySlugTaken = errors.New("category slug already exists")

// CategoryService wraps category reference data operations.
// Categories are immutable once created; there is no update or delete path.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a CategoryService instance.
func NewCategoryService(gdb *gorm.DB) *CategoryService {
	return &CategoryService{db: gdb}
}

// Create inserts a category with a unique slug.
func (s *CategoryService) Create(name, slug string) (*db.Category, error) {
	name = strings.TrimSpace(name)
	slug = strings.TrimSpace(slug)

	var existing db.Category
	if err := s.db.Where("slug = ?", slug).First(&existing).Error; err == nil {
		return nil, ErrCategorySlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := db.Category{Name: name, Slug: slug}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}

	return &category, nil
}

// List returns all categories in creation order.
func (s *CategoryService) List() ([]db.Category, error) {
	var categories []db.Category
	if err := s.db.Order("id asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
