package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"himti/internal/auth"
	"himti/internal/model"
	"himti/internal/pagination"
	"himti/internal/router"
	"himti/internal/service"
)

// newServer returns an echo instance with the production validator and error envelope.
func newServer() *echo.Echo {
	return router.New(zap.NewNop())
}

// asUser attaches identity before the handler runs, standing in for the session gate.
func asUser(identity *auth.Identity) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if identity != nil {
				auth.SetIdentity(c, identity)
			}
			return next(c)
		}
	}
}

func serve(e *echo.Echo, method, path string, body io.Reader, contentType string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func serveJSON(e *echo.Echo, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return serve(e, method, path, strings.NewReader(body), echo.MIMEApplicationJSON, cookies...)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password, name string) (*service.Session, error) {
	args := m.Called(ctx, email, password, name)
	session, _ := args.Get(0).(*service.Session)
	return session, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	session, _ := args.Get(0).(*service.Session)
	return session, args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthService) Refresh(ctx context.Context, token string) (*service.Session, error) {
	args := m.Called(ctx, token)
	session, _ := args.Get(0).(*service.Session)
	return session, args.Error(1)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthService) VerifyOTP(ctx context.Context, email, otp string) error {
	return m.Called(ctx, email, otp).Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	return m.Called(ctx, email, otp, newPassword).Error(0)
}

type MockForumService struct {
	mock.Mock
}

func (m *MockForumService) page(args mock.Arguments) (*pagination.Page[model.Forum], error) {
	page, _ := args.Get(0).(*pagination.Page[model.Forum])
	return page, args.Error(1)
}

func (m *MockForumService) forum(args mock.Arguments) (*model.Forum, error) {
	forum, _ := args.Get(0).(*model.Forum)
	return forum, args.Error(1)
}

func (m *MockForumService) ListPublic(ctx context.Context, status model.ForumStatus, viewer *auth.Identity, q pagination.Query) (*pagination.Page[model.Forum], error) {
	return m.page(m.Called(ctx, status, viewer, q))
}

func (m *MockForumService) GetPublished(ctx context.Context, id uuid.UUID, viewer *auth.Identity) (*model.Forum, error) {
	return m.forum(m.Called(ctx, id, viewer))
}

func (m *MockForumService) ListMine(ctx context.Context, actor *auth.Identity, q pagination.Query) (*pagination.Page[model.Forum], error) {
	return m.page(m.Called(ctx, actor, q))
}

func (m *MockForumService) ListDeleted(ctx context.Context, q pagination.Query) (*pagination.Page[model.Forum], error) {
	return m.page(m.Called(ctx, q))
}

func (m *MockForumService) Create(ctx context.Context, actor *auth.Identity, in service.CreateForumInput) (*model.Forum, error) {
	return m.forum(m.Called(ctx, actor, in))
}

func (m *MockForumService) Update(ctx context.Context, actor *auth.Identity, id uuid.UUID, in service.UpdateForumInput) (*model.Forum, error) {
	return m.forum(m.Called(ctx, actor, id, in))
}

func (m *MockForumService) SoftDelete(ctx context.Context, actor *auth.Identity, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockForumService) Restore(ctx context.Context, actor *auth.Identity, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockForumService) HardDelete(ctx context.Context, actor *auth.Identity, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockForumService) ToggleLike(ctx context.Context, actor *auth.Identity, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, actor, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockForumService) Comment(ctx context.Context, actor *auth.Identity, id uuid.UUID, in service.CommentInput) (*model.ForumComment, error) {
	args := m.Called(ctx, actor, id, in)
	comment, _ := args.Get(0).(*model.ForumComment)
	return comment, args.Error(1)
}

func (m *MockForumService) SetStatus(ctx context.Context, id uuid.UUID, status model.ForumStatus) (*model.Forum, error) {
	return m.forum(m.Called(ctx, id, status))
}

func (m *MockForumService) Moderate(ctx context.Context, id uuid.UUID, in service.UpdateForumInput) (*model.Forum, error) {
	return m.forum(m.Called(ctx, id, in))
}

func (m *MockForumService) Remove(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	args := m.Called(ctx, filename, data)
	return args.String(0), args.Error(1)
}

func testSession() *service.Session {
	return &service.Session{Token: "signed.jwt.token", ExpiresAt: time.Now().Add(24 * time.Hour)}
}

type echoServer struct {
	*echo.Echo
}

func (s *echoServer) json(method, path, body string) *httptest.ResponseRecorder {
	return serveJSON(s.Echo, method, path, body)
}
