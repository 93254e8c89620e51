package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForumStatus is the moderation state of a forum post.
type ForumStatus string

const (
	ForumPending   ForumStatus = "PENDING"
	ForumPublished ForumStatus = "PUBLISHED"
	ForumRejected  ForumStatus = "REJECTED"
)

func (s ForumStatus) Valid() bool {
	switch s {
	case ForumPending, ForumPublished, ForumRejected:
		return true
	}
	return false
}

// Forum is a user-authored discussion post that becomes public once published.
type Forum struct {
	Model
	Title     string         `json:"title" gorm:"size:255;not null"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	Thumbnail string         `json:"thumbnail" gorm:"size:512;not null"`
	Status    ForumStatus    `json:"status" gorm:"size:20;not null;default:PENDING;index"`
	AuthorID  uuid.UUID      `json:"author_id" gorm:"type:char(36);not null;index"`
	Author    *Account       `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Comments  []ForumComment `json:"comments,omitempty" gorm:"foreignKey:ForumID;constraint:OnDelete:CASCADE"`

	LikesCount    int64 `json:"likes_count" gorm:"->;-:migration"`
	CommentsCount int64 `json:"comments_count" gorm:"->;-:migration"`
	IsLiked       bool  `json:"is_liked" gorm:"->;-:migration"`
}

// ForumComment is a comment on a published forum.
type ForumComment struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	ForumID   uuid.UUID `json:"forum_id" gorm:"type:char(36);not null;index"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	User      *Account  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Comment   string    `json:"comments" gorm:"column:comments;type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *ForumComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ForumLike records that a user liked a forum; one row per (forum, user).
type ForumLike struct {
	ForumID   uuid.UUID `json:"forum_id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Forum *Forum   `json:"-" gorm:"foreignKey:ForumID;constraint:OnDelete:CASCADE"`
	User  *Account `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
