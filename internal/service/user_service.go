package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"himti/internal/auth"
	apperr "himti/internal/errors"
	"himti/internal/model"
	"himti/internal/repository"
)

const userLabel = "User"

// UpdateProfileInput is the self-service subset of account fields.
type UpdateProfileInput struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=255"`
	ProfilePicture *string `json:"profile_picture" validate:"omitempty,url"`
}

// CreateUserInput is an administrator-created account.
type CreateUserInput struct {
	Email          string     `json:"email" validate:"required,email"`
	Password       string     `json:"password" validate:"required,min=6"`
	Name           string     `json:"name" validate:"required"`
	Role           model.Role `json:"role" validate:"omitempty,oneof=USER ADMIN SUPER_ADMIN"`
	ProfilePicture *string    `json:"profile_picture" validate:"omitempty,url"`
}

// UpdateUserInput is an administrator edit; nil fields are left unchanged.
type UpdateUserInput struct {
	Email          *string     `json:"email" validate:"omitempty,email"`
	Password       *string     `json:"password" validate:"omitempty,min=6"`
	Name           *string     `json:"name" validate:"omitempty,min=1"`
	Role           *model.Role `json:"role" validate:"omitempty,oneof=USER ADMIN SUPER_ADMIN"`
	ProfilePicture *string     `json:"profile_picture" validate:"omitempty,url"`
}

// UserService manages accounts for their owners and for administrators.
type UserService interface {
	ArchiveService[model.Account]
	Me(ctx context.Context, id uuid.UUID) (*model.Account, error)
	UpdateProfile(ctx context.Context, actor *auth.Identity, id uuid.UUID, in UpdateProfileInput) (*model.Account, error)
	Create(ctx context.Context, in CreateUserInput) (*model.Account, error)
	CreateSuperAdmin(ctx context.Context, in CreateUserInput) (*model.Account, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*model.Account, error)
}

type userService struct {
	archive[model.Account]
	repo   repository.AccountRepository
	hasher auth.PasswordHasher
}

// NewUserService creates a new user service.
func NewUserService(repo repository.AccountRepository, hasher auth.PasswordHasher) UserService {
	return &userService{
		archive: newArchive[model.Account](repo, userLabel),
		repo:    repo,
		hasher:  hasher,
	}
}

func (s *userService) Me(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	return s.Get(ctx, id)
}

// UpdateProfile lets an account edit itself; administrators may edit anyone.
func (s *userService) UpdateProfile(ctx context.Context, actor *auth.Identity, id uuid.UUID, in UpdateProfileInput) (*model.Account, error) {
	account, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if account.ID != actor.ID && !actor.IsAdmin() {
		return nil, apperr.Unauthorized("You can only update your own profile")
	}

	if in.Name != nil {
		account.Name = *in.Name
	}
	if in.ProfilePicture != nil {
		account.ProfilePicture = in.ProfilePicture
	}
	if err := s.repo.Update(ctx, account); err != nil {
		if apperr.IsNotFound(err) {
			return nil, s.notFound()
		}
		return nil, apperr.Internal("Failed to update user", err)
	}
	return account, nil
}

func (s *userService) Create(ctx context.Context, in CreateUserInput) (*model.Account, error) {
	if in.Role == "" {
		in.Role = model.RoleUser
	}
	return s.create(ctx, in)
}

func (s *userService) CreateSuperAdmin(ctx context.Context, in CreateUserInput) (*model.Account, error) {
	in.Role = model.RoleSuperAdmin
	return s.create(ctx, in)
}

func (s *userService) create(ctx context.Context, in CreateUserInput) (*model.Account, error) {
	if err := s.ensureEmailFree(ctx, in.Email); err != nil {
		return nil, err
	}
	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.Internal("Failed to create user", err)
	}

	account := &model.Account{
		Email:          in.Email,
		PasswordHash:   hashed,
		Name:           in.Name,
		Role:           in.Role,
		ProfilePicture: in.ProfilePicture,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		if apperr.IsDuplicate(err) {
			return nil, apperr.Conflict("Email already exists")
		}
		return nil, apperr.Internal("Failed to create user", fmt.Errorf("create account: %w", err))
	}
	return account, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*model.Account, error) {
	account, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != account.Email {
		if err := s.ensureEmailFree(ctx, *in.Email); err != nil {
			return nil, err
		}
		account.Email = *in.Email
	}
	if in.Password != nil {
		hashed, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, apperr.Internal("Failed to update user", err)
		}
		account.PasswordHash = hashed
	}
	if in.Name != nil {
		account.Name = *in.Name
	}
	if in.Role != nil {
		account.Role = *in.Role
	}
	if in.ProfilePicture != nil {
		account.ProfilePicture = in.ProfilePicture
	}

	if err := s.repo.Update(ctx, account); err != nil {
		if apperr.IsNotFound(err) {
			return nil, s.notFound()
		}
		if apperr.IsDuplicate(err) {
			return nil, apperr.Conflict("Email already exists")
		}
		return nil, apperr.Internal("Failed to update user", err)
	}
	return account, nil
}

// HardDelete removes an account permanently. Super admins cannot be removed.
func (s *userService) HardDelete(ctx context.Context, id uuid.UUID) error {
	account, err := s.repo.FindAny(ctx, id)
	if _, err := s.lookup(account, err, s.notFound()); err != nil {
		return err
	}
	if account.Role == model.RoleSuperAdmin {
		return apperr.BadRequest("Cannot delete super admin user")
	}
	return s.archive.HardDelete(ctx, id)
}

func (s *userService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmailAnyState(ctx, email)
	if err == nil {
		return apperr.Conflict("Email already exists")
	}
	if !apperr.IsNotFound(err) {
		return apperr.Internal("Failed to check email", err)
	}
	return nil
}
