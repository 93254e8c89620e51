package model

import (
	"time"

	"github.com/google/uuid"
)

// Article is editorial content published by administrators.
type Article struct {
	Model
	Title     string    `json:"title" gorm:"size:255;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Thumbnail string    `json:"thumbnail" gorm:"size:512;not null"`
	Author    string    `json:"author" gorm:"size:255;not null"`
	AuthorID  uuid.UUID `json:"author_id" gorm:"type:char(36);not null;index"`
	Writer    *Account  `json:"writer,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`

	LikesCount int64 `json:"likes_count" gorm:"->;-:migration"`
	IsLiked    bool  `json:"is_liked" gorm:"->;-:migration"`
}

// ArticleLike records that a user liked an article.
type ArticleLike struct {
	ArticleID uuid.UUID `json:"article_id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Article *Article `json:"-" gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE"`
	User    *Account `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
