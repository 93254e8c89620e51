package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"himti/internal/model"
	"himti/internal/pagination"
)

// memAccounts is an in-memory AccountRepository keyed by id.
type memAccounts struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*model.Account
}

func newMemAccounts() *memAccounts {
	return &memAccounts{rows: make(map[uuid.UUID]*model.Account)}
}

func (m *memAccounts) put(a *model.Account) *model.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	cp := *a
	m.rows[a.ID] = &cp
	return a
}

func (m *memAccounts) get(id uuid.UUID) *model.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.rows[id]; ok {
		cp := *a
		return &cp
	}
	return nil
}

func (m *memAccounts) find(match func(*model.Account) bool) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.rows {
		if match(a) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func active(a *model.Account) bool { return !a.DeletedAt.Valid }

func (m *memAccounts) Create(_ context.Context, a *model.Account) error {
	if _, err := m.find(func(x *model.Account) bool { return x.Email == a.Email }); err == nil {
		return gorm.ErrDuplicatedKey
	}
	m.put(a)
	return nil
}

func (m *memAccounts) Update(_ context.Context, a *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[a.ID]
	if !ok || !active(row) {
		return gorm.ErrRecordNotFound
	}
	row.Email, row.PasswordHash, row.Name, row.Role, row.ProfilePicture = a.Email, a.PasswordHash, a.Name, a.Role, a.ProfilePicture
	return nil
}

func (m *memAccounts) FindByID(_ context.Context, id uuid.UUID) (*model.Account, error) {
	return m.find(func(a *model.Account) bool { return a.ID == id && active(a) })
}

func (m *memAccounts) FindByEmail(_ context.Context, email string) (*model.Account, error) {
	return m.find(func(a *model.Account) bool { return a.Email == email && active(a) })
}

func (m *memAccounts) FindByEmailAnyState(_ context.Context, email string) (*model.Account, error) {
	return m.find(func(a *model.Account) bool { return a.Email == email })
}

func (m *memAccounts) SetOTP(_ context.Context, id uuid.UUID, otp string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.OTP, a.OTPExpiry = &otp, &expiresAt
	return nil
}

func (m *memAccounts) ResetPassword(_ context.Context, id uuid.UUID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.PasswordHash, a.OTP, a.OTPExpiry = hash, nil, nil
	return nil
}

func (m *memAccounts) ClearExpiredOTPs(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, a := range m.rows {
		if a.OTPExpiry != nil && a.OTPExpiry.Before(now) {
			a.OTP, a.OTPExpiry = nil, nil
			n++
		}
	}
	return n, nil
}

func (m *memAccounts) ListActive(_ context.Context, q pagination.Query) (*pagination.Page[model.Account], error) {
	return m.list(q, active)
}

func (m *memAccounts) ListDeleted(_ context.Context, q pagination.Query) (*pagination.Page[model.Account], error) {
	return m.list(q, func(a *model.Account) bool { return !active(a) })
}

func (m *memAccounts) list(q pagination.Query, keep func(*model.Account) bool) (*pagination.Page[model.Account], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []model.Account
	for _, a := range m.rows {
		if keep(a) {
			all = append(all, *a)
		}
	}
	total := int64(len(all))
	start := q.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + q.Normalize().Limit
	if end > len(all) {
		end = len(all)
	}
	return pagination.New(all[start:end], total, q), nil
}

func (m *memAccounts) FindActive(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	return m.FindByID(ctx, id)
}

func (m *memAccounts) FindDeleted(_ context.Context, id uuid.UUID) (*model.Account, error) {
	return m.find(func(a *model.Account) bool { return a.ID == id && !active(a) })
}

func (m *memAccounts) FindAny(_ context.Context, id uuid.UUID) (*model.Account, error) {
	return m.find(func(a *model.Account) bool { return a.ID == id })
}

func (m *memAccounts) SoftDelete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[id]
	if !ok || !active(a) {
		return gorm.ErrRecordNotFound
	}
	a.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	return nil
}

func (m *memAccounts) Restore(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[id]
	if !ok || active(a) {
		return gorm.ErrRecordNotFound
	}
	a.DeletedAt = gorm.DeletedAt{}
	return nil
}

func (m *memAccounts) HardDelete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.rows, id)
	return nil
}

// MockMailer is a mock implementation of mail.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendWelcome(to, name string) error {
	return m.Called(to, name).Error(0)
}

func (m *MockMailer) SendPasswordReset(to, otp string) error {
	return m.Called(to, otp).Error(0)
}

// memTokenStore records revoked token ids.
type memTokenStore struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{revoked: make(map[string]time.Duration)}
}

func (s *memTokenStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = ttl
	return nil
}

func (s *memTokenStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[tokenID]
	return ok, nil
}

type staticOTP string

func (s staticOTP) Generate() (string, error) { return string(s), nil }

// MockLifecycle is a testify mock of repository.Lifecycle[T].
type MockLifecycle[T any] struct {
	mock.Mock
}

func (m *MockLifecycle[T]) page(args mock.Arguments) (*pagination.Page[T], error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[T]), args.Error(1)
}

func (m *MockLifecycle[T]) row(args mock.Arguments) (*T, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockLifecycle[T]) ListActive(ctx context.Context, q pagination.Query) (*pagination.Page[T], error) {
	return m.page(m.Called(ctx, q))
}

func (m *MockLifecycle[T]) ListDeleted(ctx context.Context, q pagination.Query) (*pagination.Page[T], error) {
	return m.page(m.Called(ctx, q))
}

func (m *MockLifecycle[T]) FindActive(ctx context.Context, id uuid.UUID) (*T, error) {
	return m.row(m.Called(ctx, id))
}

func (m *MockLifecycle[T]) FindDeleted(ctx context.Context, id uuid.UUID) (*T, error) {
	return m.row(m.Called(ctx, id))
}

func (m *MockLifecycle[T]) FindAny(ctx context.Context, id uuid.UUID) (*T, error) {
	return m.row(m.Called(ctx, id))
}

func (m *MockLifecycle[T]) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLifecycle[T]) Restore(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLifecycle[T]) HardDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockForumRepository is a testify mock of repository.ForumRepository.
type MockForumRepository struct {
	MockLifecycle[model.Forum]
}

func (m *MockForumRepository) Create(ctx context.Context, forum *model.Forum) error {
	return m.Called(ctx, forum).Error(0)
}

func (m *MockForumRepository) Update(ctx context.Context, forum *model.Forum) error {
	return m.Called(ctx, forum).Error(0)
}

func (m *MockForumRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ForumStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockForumRepository) ListByStatus(ctx context.Context, status model.ForumStatus, viewer *uuid.UUID, q pagination.Query) (*pagination.Page[model.Forum], error) {
	return m.page(m.Called(ctx, status, viewer, q))
}

func (m *MockForumRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID, q pagination.Query) (*pagination.Page[model.Forum], error) {
	return m.page(m.Called(ctx, authorID, q))
}

func (m *MockForumRepository) FindDetail(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*model.Forum, error) {
	return m.row(m.Called(ctx, id, viewer))
}

func (m *MockForumRepository) ToggleLike(ctx context.Context, forumID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, forumID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockForumRepository) AddComment(ctx context.Context, comment *model.ForumComment) error {
	return m.Called(ctx, comment).Error(0)
}

// MockDepartmentRepository is a testify mock of repository.DepartmentRepository.
type MockDepartmentRepository struct {
	MockLifecycle[model.Department]
}

func (m *MockDepartmentRepository) Create(ctx context.Context, department *model.Department) error {
	return m.Called(ctx, department).Error(0)
}

func (m *MockDepartmentRepository) Update(ctx context.Context, department *model.Department) error {
	return m.Called(ctx, department).Error(0)
}

func (m *MockDepartmentRepository) FindBySlug(ctx context.Context, slug string) (*model.Department, error) {
	return m.row(m.Called(ctx, slug))
}

func (m *MockDepartmentRepository) All(ctx context.Context) ([]model.Department, error) {
	args := m.Called(ctx)
	departments, _ := args.Get(0).([]model.Department)
	return departments, args.Error(1)
}
