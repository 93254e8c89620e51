package service

import (
	"context"

	"github.com/google/uuid"

	"himti/internal/auth"
	apperr "himti/internal/errors"
	"himti/internal/model"
	"himti/internal/pagination"
	"himti/internal/repository"
)

const articleLabel = "Article"

type CreateArticleInput struct {
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content" validate:"required"`
	Thumbnail string `json:"thumbnail" validate:"required"`
	Author    string `json:"author" validate:"required"`
}

type UpdateArticleInput struct {
	Title     *string `json:"title" validate:"omitempty,min=1"`
	Content   *string `json:"content" validate:"omitempty,min=1"`
	Thumbnail *string `json:"thumbnail" validate:"omitempty,min=1"`
	Author    *string `json:"author" validate:"omitempty,min=1"`
}

// ArticleService handles editorial articles and their likes.
type ArticleService interface {
	List(ctx context.Context, viewer *auth.Identity, q pagination.Query) (*pagination.Page[model.Article], error)
	Get(ctx context.Context, id uuid.UUID, viewer *auth.Identity) (*model.Article, error)
	ListDeleted(ctx context.Context, q pagination.Query) (*pagination.Page[model.Article], error)
	Create(ctx context.Context, actor *auth.Identity, in CreateArticleInput) (*model.Article, error)
	Update(ctx context.Context, actor *auth.Identity, id uuid.UUID, in UpdateArticleInput) (*model.Article, error)
	SoftDelete(ctx context.Context, actor *auth.Identity, id uuid.UUID) error
	Restore(ctx context.Context, actor *auth.Identity, id uuid.UUID) error
	HardDelete(ctx context.Context, actor *auth.Identity, id uuid.UUID) error
	ToggleLike(ctx context.Context, actor *auth.Identity, id uuid.UUID) (liked bool, err error)

	Moderate(ctx context.Context, id uuid.UUID, in UpdateArticleInput) (*model.Article, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type articleService struct {
	archive[model.Article]
	repo repository.ArticleRepository
}

// NewArticleService creates a new article service.
func NewArticleService(repo repository.ArticleRepository) ArticleService {
	return &articleService{archive: newArchive[model.Article](repo, articleLabel), repo: repo}
}

func (s *articleService) List(ctx context.Context, viewer *auth.Identity, q pagination.Query) (*pagination.Page[model.Article], error) {
	page, err := s.repo.List(ctx, viewerID(viewer), q)
	if err != nil {
		return nil, apperr.Internal("Failed to list articles", err)
	}
	return page, nil
}

func (s *articleService) Get(ctx context.Context, id uuid.UUID, viewer *auth.Identity) (*model.Article, error) {
	article, err := s.repo.FindDetail(ctx, id, viewerID(viewer))
	return s.lookup(article, err, s.notFound())
}

func (s *articleService) Create(ctx context.Context, actor *auth.Identity, in CreateArticleInput) (*model.Article, error) {
	article := &model.Article{
		Title:     in.Title,
		Content:   in.Content,
		Thumbnail: in.Thumbnail,
		Author:    in.Author,
		AuthorID:  actor.ID,
	}
	if err := s.repo.Create(ctx, article); err != nil {
		return nil, apperr.Internal("Failed to create article", err)
	}
	return article, nil
}

func (s *articleService) owned(article *model.Article, err error, missing error, actor *auth.Identity, verb string) (*model.Article, error) {
	article, err = s.lookup(article, err, missing)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != actor.ID {
		return nil, apperr.Unauthorized("You can only " + verb + " your own articles")
	}
	return article, nil
}

func (s *articleService) Update(ctx context.Context, actor *auth.Identity, id uuid.UUID, in UpdateArticleInput) (*model.Article, error) {
	found, err := s.repo.FindActive(ctx, id)
	article, err := s.owned(found, err, s.notFound(), actor, "update")
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, article, in)
}

func (s *articleService) apply(ctx context.Context, article *model.Article, in UpdateArticleInput) (*model.Article, error) {
	if in.Title != nil {
		article.Title = *in.Title
	}
	if in.Content != nil {
		article.Content = *in.Content
	}
	if in.Thumbnail != nil {
		article.Thumbnail = *in.Thumbnail
	}
	if in.Author != nil {
		article.Author = *in.Author
	}
	if err := s.repo.Update(ctx, article); err != nil {
		if apperr.IsNotFound(err) {
			return nil, s.notFound()
		}
		return nil, apperr.Internal("Failed to update article", err)
	}
	return article, nil
}

func (s *articleService) SoftDelete(ctx context.Context, actor *auth.Identity, id uuid.UUID) error {
	found, err := s.repo.FindActive(ctx, id)
	if _, err := s.owned(found, err, s.notFound(), actor, "delete"); err != nil {
		return err
	}
	return s.archive.SoftDelete(ctx, id)
}

func (s *articleService) Restore(ctx context.Context, actor *auth.Identity, id uuid.UUID) error {
	found, err := s.repo.FindDeleted(ctx, id)
	if _, err := s.owned(found, err, s.deletedNotFound(), actor, "restore"); err != nil {
		return err
	}
	return s.archive.Restore(ctx, id)
}

func (s *articleService) HardDelete(ctx context.Context, actor *auth.Identity, id uuid.UUID) error {
	found, err := s.repo.FindAny(ctx, id)
	if _, err := s.owned(found, err, s.notFound(), actor, "delete"); err != nil {
		return err
	}
	return s.archive.HardDelete(ctx, id)
}

func (s *articleService) ToggleLike(ctx context.Context, actor *auth.Identity, id uuid.UUID) (bool, error) {
	if actor == nil {
		return false, apperr.Unauthorized("Authentication required")
	}
	if _, err := s.archive.Get(ctx, id); err != nil {
		return false, err
	}
	liked, err := s.repo.ToggleLike(ctx, id, actor.ID)
	if err != nil {
		return false, apperr.Internal("Failed to like article", err)
	}
	return liked, nil
}

func (s *articleService) Moderate(ctx context.Context, id uuid.UUID, in UpdateArticleInput) (*model.Article, error) {
	article, err := s.archive.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, article, in)
}

func (s *articleService) Remove(ctx context.Context, id uuid.UUID) error {
	return s.archive.HardDelete(ctx, id)
}
