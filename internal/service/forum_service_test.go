package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"himti/internal/auth"
	apperr "himti/internal/errors"
	"himti/internal/model"
	"himti/internal/pagination"
)

func forumBy(author uuid.UUID, status model.ForumStatus) *model.Forum {
	return &model.Forum{Model: model.Model{ID: uuid.New()}, Title: "t", AuthorID: author, Status: status}
}

func TestForumService_UpdateChecksExistenceBeforeOwnership(t *testing.T) {
	ctx := context.Background()
	stranger := &auth.Identity{ID: uuid.New(), Role: model.RoleUser}
	id := uuid.New()

	repo := new(MockForumRepository)
	repo.On("FindActive", ctx, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := NewForumService(repo).Update(ctx, stranger, id, UpdateForumInput{})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.EqualError(t, err, "Forum not found")
}

func TestForumService_Update(t *testing.T) {
	ctx := context.Background()
	owner := &auth.Identity{ID: uuid.New(), Role: model.RoleUser}
	title := "new title"
	published := model.ForumPublished

	tests := []struct {
		name    string
		actor   *auth.Identity
		forum   *model.Forum
		wantErr error
		wantMsg string
	}{
		{"other user", &auth.Identity{ID: uuid.New()}, forumBy(owner.ID, model.ForumPending), apperr.ErrUnauthorized, "You can only update your own forums"},
		{"published", owner, forumBy(owner.ID, model.ForumPublished), apperr.ErrBadRequest, "Cannot update published forums"},
		{"pending", owner, forumBy(owner.ID, model.ForumPending), nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockForumRepository)
			repo.On("FindActive", ctx, tt.forum.ID).Return(tt.forum, nil)
			repo.On("Update", ctx, mock.AnythingOfType("*model.Forum")).Return(nil).Maybe()

			forum, err := NewForumService(repo).Update(ctx, tt.actor, tt.forum.ID, UpdateForumInput{Title: &title, Status: &published})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.EqualError(t, err, tt.wantMsg)
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, title, forum.Title)
			assert.Equal(t, model.ForumPending, forum.Status, "owners cannot publish their own forum")
		})
	}
}

func TestForumService_RestoreLooksAtDeletedRows(t *testing.T) {
	ctx := context.Background()
	owner := &auth.Identity{ID: uuid.New()}
	forum := forumBy(owner.ID, model.ForumPending)

	repo := new(MockForumRepository)
	repo.On("FindDeleted", ctx, forum.ID).Return(forum, nil)
	repo.On("Restore", ctx, forum.ID).Return(nil)

	require.NoError(t, NewForumService(repo).Restore(ctx, owner, forum.ID))
	repo.AssertExpectations(t)

	repo = new(MockForumRepository)
	repo.On("FindDeleted", ctx, forum.ID).Return(nil, gorm.ErrRecordNotFound)
	err := NewForumService(repo).Restore(ctx, owner, forum.ID)
	assert.EqualError(t, err, "Deleted forum not found")
}

func TestForumService_ToggleLike(t *testing.T) {
	ctx := context.Background()
	user := &auth.Identity{ID: uuid.New()}

	t.Run("anonymous", func(t *testing.T) {
		repo := new(MockForumRepository)
		_, err := NewForumService(repo).ToggleLike(ctx, nil, uuid.New())
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
		repo.AssertNotCalled(t, "ToggleLike", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("pending forum", func(t *testing.T) {
		forum := forumBy(uuid.New(), model.ForumPending)
		repo := new(MockForumRepository)
		repo.On("FindActive", ctx, forum.ID).Return(forum, nil)

		_, err := NewForumService(repo).ToggleLike(ctx, user, forum.ID)
		assert.ErrorIs(t, err, apperr.ErrBadRequest)
	})

	t.Run("published forum", func(t *testing.T) {
		forum := forumBy(uuid.New(), model.ForumPublished)
		repo := new(MockForumRepository)
		repo.On("FindActive", ctx, forum.ID).Return(forum, nil)
		repo.On("ToggleLike", ctx, forum.ID, user.ID).Return(true, nil)

		liked, err := NewForumService(repo).ToggleLike(ctx, user, forum.ID)
		require.NoError(t, err)
		assert.True(t, liked)
	})
}

func TestForumService_ListPublic(t *testing.T) {
	ctx := context.Background()
	q := pagination.Query{}
	viewer := &auth.Identity{ID: uuid.New()}

	repo := new(MockForumRepository)
	repo.On("ListByStatus", ctx, model.ForumPublished, &viewer.ID, q).Return(pagination.New[model.Forum](nil, 0, q), nil)

	page, err := NewForumService(repo).ListPublic(ctx, "", viewer, q)
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	_, err = NewForumService(repo).ListPublic(ctx, "ARCHIVED", nil, q)
	assert.EqualError(t, err, "Invalid forum status")
}

func TestForumService_GetPublishedHidesPending(t *testing.T) {
	ctx := context.Background()
	forum := forumBy(uuid.New(), model.ForumPending)
	repo := new(MockForumRepository)
	repo.On("FindDetail", ctx, forum.ID, (*uuid.UUID)(nil)).Return(forum, nil)

	_, err := NewForumService(repo).GetPublished(ctx, forum.ID, nil)
	assert.EqualError(t, err, "Forum not found or not published")
}
