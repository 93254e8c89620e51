package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"himti/internal/auth"
	apperr "himti/internal/errors"
	"himti/internal/handler"
	"himti/internal/model"
	"himti/internal/pagination"
	"himti/internal/service"
)

func forumServer(svc *MockForumService, identity *auth.Identity) *echoServer {
	h := handler.NewForumHandler(svc)
	e := newServer()
	g := e.Group("", asUser(identity))
	g.GET("/forums", h.List)
	g.GET("/forums/:id", h.Get)
	g.POST("/forums", h.Create)
	g.POST("/forums/:id/like", h.Like)
	g.DELETE("/forums/:id/soft", h.SoftDelete)
	g.PATCH("/admin/forums/:id/status", h.SetStatus)
	return &echoServer{e}
}

func TestForumHandler_ListPassesStatusAndPage(t *testing.T) {
	svc := new(MockForumService)
	q := pagination.Query{Page: 2, Limit: 100}
	items := []model.Forum{{Title: "hello", Status: model.ForumPublished}}
	svc.On("ListPublic", mock.Anything, model.ForumStatus("PENDING"), (*auth.Identity)(nil), q).
		Return(pagination.New(items, 101, q), nil)

	rec := forumServer(svc, nil).json(http.MethodGet, "/forums?status=PENDING&page=2&limit=500", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, true, body["status"])
	assert.Len(t, body["data"], 1)
	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, float64(101), meta["totalItems"])
	assert.Equal(t, float64(100), meta["itemsPerPage"])
	assert.Equal(t, float64(2), meta["totalPages"])
	assert.Equal(t, float64(2), meta["currentPage"])
}

func TestForumHandler_LikeAnonymous(t *testing.T) {
	svc := new(MockForumService)
	id := uuid.New()
	svc.On("ToggleLike", mock.Anything, (*auth.Identity)(nil), id).
		Return(false, apperr.Unauthorized("You must be logged in to like a forum"))

	rec := forumServer(svc, nil).json(http.MethodPost, "/forums/"+id.String()+"/like", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "You must be logged in to like a forum", decode(t, rec)["message"])
}

func TestForumHandler_LikeToggles(t *testing.T) {
	svc := new(MockForumService)
	user := &auth.Identity{ID: uuid.New(), Role: model.RoleUser}
	id := uuid.New()
	svc.On("ToggleLike", mock.Anything, user, id).Return(true, nil).Once()
	svc.On("ToggleLike", mock.Anything, user, id).Return(false, nil).Once()

	srv := forumServer(svc, user)
	rec := srv.json(http.MethodPost, "/forums/"+id.String()+"/like", "")
	assert.Equal(t, "Forum liked successfully", decode(t, rec)["message"])
	rec = srv.json(http.MethodPost, "/forums/"+id.String()+"/like", "")
	assert.Equal(t, "Forum unliked successfully", decode(t, rec)["message"])
}

func TestForumHandler_CreateRequiresIdentity(t *testing.T) {
	svc := new(MockForumService)

	rec := forumServer(svc, nil).json(http.MethodPost, "/forums", `{"title":"t","content":"c","thumbnail":"https://x/t.png"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	user := &auth.Identity{ID: uuid.New(), Role: model.RoleUser}
	in := service.CreateForumInput{Title: "t", Content: "c", Thumbnail: "https://x/t.png"}
	svc.On("Create", mock.Anything, user, in).Return(&model.Forum{Title: "t", Status: model.ForumPending}, nil)

	rec = forumServer(svc, user).json(http.MethodPost, "/forums", `{"title":"t","content":"c","thumbnail":"https://x/t.png"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	data := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "PENDING", data["status"])
}

func TestForumHandler_SoftDeleteMessages(t *testing.T) {
	svc := new(MockForumService)
	user := &auth.Identity{ID: uuid.New(), Role: model.RoleUser}
	id := uuid.New()
	svc.On("SoftDelete", mock.Anything, user, id).Return(nil)

	srv := forumServer(svc, user)
	rec := srv.json(http.MethodDelete, "/forums/"+id.String()+"/soft", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Forum soft deleted successfully", decode(t, rec)["message"])

	rec = srv.json(http.MethodDelete, "/forums/not-a-uuid/soft", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid id", decode(t, rec)["message"])
}

func TestForumHandler_SetStatusValidates(t *testing.T) {
	svc := new(MockForumService)
	admin := &auth.Identity{ID: uuid.New(), Role: model.RoleAdmin}
	id := uuid.New()
	svc.On("SetStatus", mock.Anything, id, model.ForumPublished).
		Return(&model.Forum{Status: model.ForumPublished}, nil)

	srv := forumServer(svc, admin)
	rec := srv.json(http.MethodPatch, "/admin/forums/"+id.String()+"/status", `{"status":"ARCHIVED"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.json(http.MethodPatch, "/admin/forums/"+id.String()+"/status", `{"status":"PUBLISHED"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
