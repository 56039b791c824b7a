package db

import "time"

// Post lifecycle statuses.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// Post is a unit of authored content with a publish lifecycle.
// PublishedAt is non-nil exactly when Status is published.
type Post struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Content     string     `gorm:"not null" json:"content"`
	Excerpt     *string    `json:"excerpt"`
	AuthorID    uint       `gorm:"not null;index" json:"author_id"`
	CategoryID  *uint      `json:"category_id"`
	Status      string     `gorm:"not null;default:draft" json:"status"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Author   User      `json:"-"`
	Category *Category `json:"-"`
	Tags     []Tag     `gorm:"many2many:post_tags;" json:"-"`
	Comments []Comment `json:"-"`
}

// ValidPostStatus reports whether status is a known lifecycle state.
func ValidPostStatus(status string) bool {
	return status == PostStatusDraft || status == PostStatusPublished
}
