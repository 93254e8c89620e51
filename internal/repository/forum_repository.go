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

// ForumRepository defines forum, comment and like persistence.
type ForumRepository interface {
	Lifecycle[model.Forum]
	Create(ctx context.Context, forum *model.Forum) error
	Update(ctx context.Context, forum *model.Forum) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ForumStatus) error
	ListByStatus(ctx context.Context, status model.ForumStatus, viewer *uuid.UUID, q pagination.Query) (*pagination.Page[model.Forum], error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, q pagination.Query) (*pagination.Page[model.Forum], error)
	FindDetail(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*model.Forum, error)
	ToggleLike(ctx context.Context, forumID, userID uuid.UUID) (liked bool, err error)
	AddComment(ctx context.Context, comment *model.ForumComment) error
}

type forumRepository struct {
	Lifecycle[model.Forum]
	db *gorm.DB
}

// NewForumRepository creates a new forum repository.
func NewForumRepository(db *gorm.DB) ForumRepository {
	return &forumRepository{
		Lifecycle: NewLifecycle[model.Forum](db, "created_at DESC", forumColumns(nil)),
		db:        db,
	}
}

// forumColumns adds author, like/comment counts and the viewer's like flag.
func forumColumns(viewer *uuid.UUID) Scope {
	const counts = "forums.*, " +
		"(SELECT COUNT(*) FROM forum_likes fl WHERE fl.forum_id = forums.id) AS likes_count, " +
		"(SELECT COUNT(*) FROM forum_comments fc WHERE fc.forum_id = forums.id) AS comments_count"
	return func(tx *gorm.DB) *gorm.DB {
		tx = tx.Preload("Author")
		if viewer == nil {
			return tx.Select(counts + ", FALSE AS is_liked")
		}
		return tx.Select(counts+", EXISTS (SELECT 1 FROM forum_likes vl WHERE vl.forum_id = forums.id AND vl.user_id = ?) AS is_liked", *viewer)
	}
}

func (r *forumRepository) Create(ctx context.Context, forum *model.Forum) error {
	if err := r.db.WithContext(ctx).Create(forum).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Preload("Author").First(forum, "id = ?", forum.ID).Error
}

func (r *forumRepository) Update(ctx context.Context, forum *model.Forum) error {
	return updated(r.db.WithContext(ctx).Model(forum).
		Select("title", "content", "thumbnail", "status").
		Updates(forum))
}

func (r *forumRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ForumStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Forum{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update forum status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *forumRepository) ListByStatus(ctx context.Context, status model.ForumStatus, viewer *uuid.UUID, q pagination.Query) (*pagination.Page[model.Forum], error) {
	base := r.db.WithContext(ctx).Model(&model.Forum{}).Where("status = ?", status)
	return pagination.Window[model.Forum](ctx, base, q, func(tx *gorm.DB) *gorm.DB {
		return forumColumns(viewer)(tx).Order("created_at DESC")
	})
}

func (r *forumRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID, q pagination.Query) (*pagination.Page[model.Forum], error) {
	base := r.db.WithContext(ctx).Model(&model.Forum{}).Where("author_id = ?", authorID)
	return pagination.Window[model.Forum](ctx, base, q, func(tx *gorm.DB) *gorm.DB {
		return forumColumns(&authorID)(tx).Order("created_at DESC")
	})
}

// FindDetail loads an active forum with its comments, newest first.
func (r *forumRepository) FindDetail(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*model.Forum, error) {
	var forum model.Forum
	err := forumColumns(viewer)(r.db.WithContext(ctx)).
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at DESC")
		}).
		Preload("Comments.User").
		Where("id = ?", id).
		First(&forum).Error
	if err != nil {
		return nil, err
	}
	return &forum, nil
}

// ToggleLike removes the user's like if present, otherwise records one.
func (r *forumRepository) ToggleLike(ctx context.Context, forumID, userID uuid.UUID) (bool, error) {
	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("forum_id = ? AND user_id = ?", forumID, userID).Delete(&model.ForumLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		liked = true
		return tx.Create(&model.ForumLike{ForumID: forumID, UserID: userID}).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// a concurrent request recorded the same like
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("toggle forum like: %w", err)
	}
	return liked, nil
}

func (r *forumRepository) AddComment(ctx context.Context, comment *model.ForumComment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return r.db.WithContext(ctx).Preload("User").First(comment, "id = ?", comment.ID).Error
}
