package db

import "time"

// Comment moderation statuses. Every new comment starts as pending.
const (
	CommentStatusPending  = "pending"
	CommentStatusApproved = "approved"
	CommentStatusRejected = "rejected"
)

// Comment is visitor feedback attached to a post, gated by moderation.
type Comment struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Content     string    `gorm:"not null" json:"content"`
	AuthorName  string    `gorm:"not null" json:"author_name"`
	AuthorEmail string    `gorm:"not null" json:"author_email"`
	PostID      uint      `gorm:"not null;index" json:"post_id"`
	Status      string    `gorm:"not null;default:pending" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ValidCommentStatus reports whether status is a known moderation state.
func ValidCommentStatus(status string) bool {
	switch status {
	case CommentStatusPending, CommentStatusApproved, CommentStatusRejected:
		return true
	}
	return false
}
