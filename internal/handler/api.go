package handler

import (
	"github.com/inkwell/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	users      *service.UserService
	categories *service.CategoryService
	tags       *service.TagService
	posts      *service.PostService
	comments   *service.CommentService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB) *API {
	return &API{
		db:         db,
		users:      service.NewUserService(db),
		categories: service.NewCategoryService(db),
		tags:       service.NewTagService(db),
		posts:      service.NewPostService(db),
		comments:   service.NewCommentService(db),
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Users exposes the user service for startup bootstrap.
func (a *API) Users() *service.UserService {
	return a.users
}
