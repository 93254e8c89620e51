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

const forumLabel = "Forum"

// CreateForumInput is a new forum post.
type CreateForumInput struct {
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content" validate:"required"`
	Thumbnail string `json:"thumbnail" validate:"required"`
}

// UpdateForumInput edits a forum; nil fields are left unchanged. Status is honoured only for
// moderators.
type UpdateForumInput struct {
	Title     *string            `json:"title" validate:"omitempty,min=1"`
	Content   *string            `json:"content" validate:"omitempty,min=1"`
	Thumbnail *string            `json:"thumbnail" validate:"omitempty,min=1"`
	Status    *model.ForumStatus `json:"status" validate:"omitempty,oneof=PENDING PUBLISHED REJECTED"`
}

// CommentInput is a comment on a forum.
type CommentInput struct {
	Comment string `json:"comments" validate:"required"`
}

// ForumService handles forum posts, their moderation, likes and comments.
type ForumService interface {
	ListPublic(ctx context.Context, status model.ForumStatus, viewer *auth.Identity, q pagination.Query) (*pagination.Page[model.Forum], error)
	GetPublished(ctx context.Context, id uuid.UUID, viewer *auth.Identity) (*model.Forum, error)
	ListMine(ctx context.Context, actor *auth.Identity, q pagination.Query) (*pagination.Page[model.Forum], error)
	ListDeleted(ctx context.Context, q pagination.Query) (*pagination.Page[model.Forum], error)
	Create(ctx context.Context, actor *auth.Identity, in CreateForumInput) (*model.Forum, error)
	Update(ctx context.Context, actor *auth.Identity, id uuid.UUID, in UpdateForumInput) (*model.Forum, error)
	SoftDelete(ctx context.Context, actor *auth.Identity, id uuid.UUID) error
	Restore(ctx context.Context, actor *auth.Identity, id uuid.UUID) error
	HardDelete(ctx context.Context, actor *auth.Identity, id uuid.UUID) error
	ToggleLike(ctx context.Context, actor *auth.Identity, id uuid.UUID) (liked bool, err error)
	Comment(ctx context.Context, actor *auth.Identity, id uuid.UUID, in CommentInput) (*model.ForumComment, error)

	SetStatus(ctx context.Context, id uuid.UUID, status model.ForumStatus) (*model.Forum, error)
	Moderate(ctx context.Context, id uuid.UUID, in UpdateForumInput) (*model.Forum, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type forumService struct {
	archive[model.Forum]
	repo repository.ForumRepository
}

// NewForumService creates a new forum service.
func NewForumService(repo repository.ForumRepository) ForumService {
	return &forumService{archive: newArchive[model.Forum](repo, forumLabel), repo: repo}
}

func viewerID(viewer *auth.Identity) *uuid.UUID {
	if viewer == nil {
		return nil
	}
	id := viewer.ID
	return &id
}

func (s *forumService) ListPublic(ctx context.Context, status model.ForumStatus, viewer *auth.Identity, q pagination.Query) (*pagination.Page[model.Forum], error) {
	if status == "" {
		status = model.ForumPublished
	}
	if !status.Valid() {
		return nil, apperr.BadRequest("Invalid forum status")
	}
	page, err := s.repo.ListByStatus(ctx, status, viewerID(viewer), q)
	if err != nil {
		return nil, apperr.Internal("Failed to list forums", err)
	}
	return page, nil
}

func (s *forumService) GetPublished(ctx context.Context, id uuid.UUID, viewer *auth.Identity) (*model.Forum, error) {
	forum, err := s.repo.FindDetail(ctx, id, viewerID(viewer))
	if forum, err = s.lookup(forum, err, s.notFound()); err != nil {
		return nil, err
	}
	if forum.Status != model.ForumPublished {
		return nil, apperr.NotFound("Forum not found or not published")
	}
	return forum, nil
}

func (s *forumService) ListMine(ctx context.Context, actor *auth.Identity, q pagination.Query) (*pagination.Page[model.Forum], error) {
	page, err := s.repo.ListByAuthor(ctx, actor.ID, q)
	if err != nil {
		return nil, apperr.Internal("Failed to list forums", err)
	}
	return page, nil
}

func (s *forumService) Create(ctx context.Context, actor *auth.Identity, in CreateForumInput) (*model.Forum, error) {
	forum := &model.Forum{
		Title:     in.Title,
		Content:   in.Content,
		Thumbnail: in.Thumbnail,
		Status:    model.ForumPending,
		AuthorID:  actor.ID,
	}
	if err := s.repo.Create(ctx, forum); err != nil {
		return nil, apperr.Internal("Failed to create forum", err)
	}
	return forum, nil
}

// owned loads a forum through find, then checks that actor wrote it.
func (s *forumService) owned(forum *model.Forum, err error, missing error, actor *auth.Identity, verb string) (*model.Forum, error) {
	forum, err = s.lookup(forum, err, missing)
	if err != nil {
		return nil, err
	}
	if forum.AuthorID != actor.ID {
		return nil, apperr.Unauthorized("You can only " + verb + " your own forums")
	}
	return forum, nil
}

func (s *forumService) Update(ctx context.Context, actor *auth.Identity, id uuid.UUID, in UpdateForumInput) (*model.Forum, error) {
	found, err := s.repo.FindActive(ctx, id)
	forum, err := s.owned(found, err, s.notFound(), actor, "update")
	if err != nil {
		return nil, err
	}
	if forum.Status == model.ForumPublished {
		return nil, apperr.BadRequest("Cannot update published forums")
	}
	in.Status = nil
	return s.apply(ctx, forum, in)
}

func (s *forumService) apply(ctx context.Context, forum *model.Forum, in UpdateForumInput) (*model.Forum, error) {
	if in.Title != nil {
		forum.Title = *in.Title
	}
	if in.Content != nil {
		forum.Content = *in.Content
	}
	if in.Thumbnail != nil {
		forum.Thumbnail = *in.Thumbnail
	}
	if in.Status != nil {
		forum.Status = *in.Status
	}
	if err := s.repo.Update(ctx, forum); err != nil {
		if apperr.IsNotFound(err) {
			return nil, s.notFound()
		}
		return nil, apperr.Internal("Failed to update forum", err)
	}
	return forum, nil
}

func (s *forumService) SoftDelete(ctx context.Context, actor *auth.Identity, id uuid.UUID) error {
	found, err := s.repo.FindActive(ctx, id)
	if _, err := s.owned(found, err, s.notFound(), actor, "delete"); err != nil {
		return err
	}
	return s.archive.SoftDelete(ctx, id)
}

func (s *forumService) Restore(ctx context.Context, actor *auth.Identity, id uuid.UUID) error {
	found, err := s.repo.FindDeleted(ctx, id)
	if _, err := s.owned(found, err, s.deletedNotFound(), actor, "restore"); err != nil {
		return err
	}
	return s.archive.Restore(ctx, id)
}

func (s *forumService) HardDelete(ctx context.Context, actor *auth.Identity, id uuid.UUID) error {
	found, err := s.repo.FindAny(ctx, id)
	if _, err := s.owned(found, err, s.notFound(), actor, "delete"); err != nil {
		return err
	}
	return s.archive.HardDelete(ctx, id)
}

// published loads an active forum that is open for likes and comments.
func (s *forumService) published(ctx context.Context, id uuid.UUID, action string) error {
	found, err := s.repo.FindActive(ctx, id)
	forum, err := s.lookup(found, err, s.notFound())
	if err != nil {
		return err
	}
	if forum.Status != model.ForumPublished {
		return apperr.BadRequest("Can only " + action + " published forums")
	}
	return nil
}

func (s *forumService) ToggleLike(ctx context.Context, actor *auth.Identity, id uuid.UUID) (bool, error) {
	if actor == nil {
		return false, apperr.Unauthorized("Authentication required")
	}
	if err := s.published(ctx, id, "like"); err != nil {
		return false, err
	}
	liked, err := s.repo.ToggleLike(ctx, id, actor.ID)
	if err != nil {
		return false, apperr.Internal("Failed to like forum", err)
	}
	return liked, nil
}

func (s *forumService) Comment(ctx context.Context, actor *auth.Identity, id uuid.UUID, in CommentInput) (*model.ForumComment, error) {
	if err := s.published(ctx, id, "comment on"); err != nil {
		return nil, err
	}
	comment := &model.ForumComment{ForumID: id, UserID: actor.ID, Comment: in.Comment}
	if err := s.repo.AddComment(ctx, comment); err != nil {
		return nil, apperr.Internal("Failed to add comment", err)
	}
	return comment, nil
}

// SetStatus moves a forum through moderation.
func (s *forumService) SetStatus(ctx context.Context, id uuid.UUID, status model.ForumStatus) (*model.Forum, error) {
	if !status.Valid() {
		return nil, apperr.BadRequest("Invalid forum status")
	}
	forum, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, s.mutate(err, s.notFound(), "update")
	}
	forum.Status = status
	return forum, nil
}

// Moderate edits any forum regardless of author or status.
func (s *forumService) Moderate(ctx context.Context, id uuid.UUID, in UpdateForumInput) (*model.Forum, error) {
	forum, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, forum, in)
}

// Remove permanently deletes any forum.
func (s *forumService) Remove(ctx context.Context, id uuid.UUID) error {
	return s.archive.HardDelete(ctx, id)
}
