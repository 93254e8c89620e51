package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"himti/internal/model"
	"himti/internal/pagination"
)

// ArticleRepository defines article and article like persistence.
type ArticleRepository interface {
	Lifecycle[model.Article]
	Create(ctx context.Context, article *model.Article) error
	Update(ctx context.Context, article *model.Article) error
	List(ctx context.Context, viewer *uuid.UUID, q pagination.Query) (*pagination.Page[model.Article], error)
	FindDetail(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*model.Article, error)
	ToggleLike(ctx context.Context, articleID, userID uuid.UUID) (liked bool, err error)
}

type articleRepository struct {
	Lifecycle[model.Article]
	db *gorm.DB
}

// NewArticleRepository creates a new article repository.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{
		Lifecycle: NewLifecycle[model.Article](db, "created_at DESC", articleColumns(nil)),
		db:        db,
	}
}

func articleColumns(viewer *uuid.UUID) Scope {
	const likes = "articles.*, (SELECT COUNT(*) FROM article_likes al WHERE al.article_id = articles.id) AS likes_count"
	return func(tx *gorm.DB) *gorm.DB {
		if viewer == nil {
			return tx.Select(likes + ", FALSE AS is_liked")
		}
		return tx.Select(likes+", EXISTS (SELECT 1 FROM article_likes vl WHERE vl.article_id = articles.id AND vl.user_id = ?) AS is_liked", *viewer)
	}
}

func (r *articleRepository) Create(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *articleRepository) Update(ctx context.Context, article *model.Article) error {
	return updated(r.db.WithContext(ctx).Model(article).
		Select("title", "content", "thumbnail", "author").
		Updates(article))
}

func (r *articleRepository) List(ctx context.Context, viewer *uuid.UUID, q pagination.Query) (*pagination.Page[model.Article], error) {
	base := r.db.WithContext(ctx).Model(&model.Article{})
	return pagination.Window[model.Article](ctx, base, q, func(tx *gorm.DB) *gorm.DB {
		return articleColumns(viewer)(tx).Order("created_at DESC")
	})
}

func (r *articleRepository) FindDetail(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*model.Article, error) {
	var article model.Article
	if err := articleColumns(viewer)(r.db.WithContext(ctx)).Where("id = ?", id).First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// ToggleLike removes the user's like if present, otherwise records one.
func (r *articleRepository) ToggleLike(ctx context.Context, articleID, userID uuid.UUID) (bool, error) {
	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("article_id = ? AND user_id = ?", articleID, userID).Delete(&model.ArticleLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		liked = true
		return tx.Create(&model.ArticleLike{ArticleID: articleID, UserID: userID}).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("toggle article like: %w", err)
	}
	return liked, nil
}
