package service

import (
	"context"

	"github.com/google/uuid"

	apperr "himti/internal/errors"
	"himti/internal/model"
	"himti/internal/repository"
)

const (
	departmentLabel = "Department"
	divisionLabel   = "Division"
	memberLabel     = "Member"
)

type DepartmentInput struct {
	Department string `json:"department" validate:"required"`
}

type UpdateDepartmentInput struct {
	Department *string `json:"department" validate:"omitempty,min=1"`
}

type DivisionInput struct {
	Division     string    `json:"division" validate:"required"`
	DepartmentID uuid.UUID `json:"department_id" validate:"required"`
}

type UpdateDivisionInput struct {
	Division     *string    `json:"division" validate:"omitempty,min=1"`
	DepartmentID *uuid.UUID `json:"department_id"`
}

type MemberInput struct {
	Name       string           `json:"name" validate:"required"`
	Position   string           `json:"position" validate:"required"`
	Role       model.MemberRole `json:"role" validate:"omitempty,oneof=LEAD SECRETARY STAFF"`
	Photo      *string          `json:"photo"`
	DivisionID *uuid.UUID       `json:"division_id"`
}

type UpdateMemberInput struct {
	Name       *string           `json:"name" validate:"omitempty,min=1"`
	Position   *string           `json:"position" validate:"omitempty,min=1"`
	Role       *model.MemberRole `json:"role" validate:"omitempty,oneof=LEAD SECRETARY STAFF"`
	Photo      *string           `json:"photo"`
	DivisionID *uuid.UUID        `json:"division_id"`
}

// slugFor derives the slug of name and rejects names that leave nothing behind.
func slugFor(label, name string) (string, error) {
	slug := model.Slugify(name)
	if slug == "" {
		return "", apperr.BadRequest(label + " name must contain letters or digits")
	}
	return slug, nil
}

// DepartmentService manages departments.
type DepartmentService interface {
	ArchiveService[model.Department]
	GetBySlug(ctx context.Context, slug string) (*model.Department, error)
	Create(ctx context.Context, in DepartmentInput) (*model.Department, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateDepartmentInput) (*model.Department, error)
}

type departmentService struct {
	archive[model.Department]
	repo  repository.DepartmentRepository
	cache *OrgCache
}

// NewDepartmentService creates a new department service.
func NewDepartmentService(repo repository.DepartmentRepository, cache *OrgCache) DepartmentService {
	return &departmentService{archive: newArchive[model.Department](repo, departmentLabel), repo: repo, cache: cache}
}

func (s *departmentService) GetBySlug(ctx context.Context, slug string) (*model.Department, error) {
	return loadCached(ctx, s.cache, s.cache.key(ctx, "department", slug), func() (*model.Department, error) {
		department, err := s.repo.FindBySlug(ctx, slug)
		return s.lookup(department, err, s.notFound())
	})
}

func (s *departmentService) Create(ctx context.Context, in DepartmentInput) (*model.Department, error) {
	slug, err := slugFor(departmentLabel, in.Department)
	if err != nil {
		return nil, err
	}
	department := &model.Department{Department: in.Department, Slug: slug}
	if err := s.repo.Create(ctx, department); err != nil {
		return nil, s.writeErr(err)
	}
	s.cache.invalidate(ctx)
	return department, nil
}

func (s *departmentService) Update(ctx context.Context, id uuid.UUID, in UpdateDepartmentInput) (*model.Department, error) {
	department, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Department != nil {
		slug, err := slugFor(departmentLabel, *in.Department)
		if err != nil {
			return nil, err
		}
		department.Department, department.Slug = *in.Department, slug
	}
	if err := s.repo.Update(ctx, department); err != nil {
		if apperr.IsNotFound(err) {
			return nil, s.notFound()
		}
		return nil, s.writeErr(err)
	}
	s.cache.invalidate(ctx)
	return department, nil
}

func (s *departmentService) writeErr(err error) error {
	if apperr.IsDuplicate(err) {
		return apperr.Conflict("Department already exists")
	}
	return apperr.Internal("Failed to save department", err)
}

func (s *departmentService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return s.cache.after(ctx, s.archive.SoftDelete(ctx, id))
}

func (s *departmentService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.cache.after(ctx, s.archive.Restore(ctx, id))
}

func (s *departmentService) HardDelete(ctx context.Context, id uuid.UUID) error {
	return s.cache.after(ctx, s.archive.HardDelete(ctx, id))
}

// DivisionService manages divisions.
type DivisionService interface {
	ArchiveService[model.Division]
	GetBySlug(ctx context.Context, slug string) (*model.Division, error)
	Create(ctx context.Context, in DivisionInput) (*model.Division, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateDivisionInput) (*model.Division, error)
}

type divisionService struct {
	archive[model.Division]
	repo        repository.DivisionRepository
	departments repository.DepartmentRepository
	cache       *OrgCache
}

// NewDivisionService creates a new division service.
func NewDivisionService(repo repository.DivisionRepository, departments repository.DepartmentRepository, cache *OrgCache) DivisionService {
	return &divisionService{
		archive:     newArchive[model.Division](repo, divisionLabel),
		repo:        repo,
		departments: departments,
		cache:       cache,
	}
}

func (s *divisionService) GetBySlug(ctx context.Context, slug string) (*model.Division, error) {
	return loadCached(ctx, s.cache, s.cache.key(ctx, "division", slug), func() (*model.Division, error) {
		division, err := s.repo.FindBySlug(ctx, slug)
		return s.lookup(division, err, s.notFound())
	})
}

func (s *divisionService) requireDepartment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.departments.FindActive(ctx, id); err != nil {
		if apperr.IsNotFound(err) {
			return apperr.BadRequest("Department not found")
		}
		return apperr.Internal("Failed to load department", err)
	}
	return nil
}

func (s *divisionService) Create(ctx context.Context, in DivisionInput) (*model.Division, error) {
	slug, err := slugFor(divisionLabel, in.Division)
	if err != nil {
		return nil, err
	}
	if err := s.requireDepartment(ctx, in.DepartmentID); err != nil {
		return nil, err
	}
	division := &model.Division{Division: in.Division, Slug: slug, DepartmentID: in.DepartmentID}
	if err := s.repo.Create(ctx, division); err != nil {
		return nil, s.writeErr(err)
	}
	s.cache.invalidate(ctx)
	return division, nil
}

func (s *divisionService) Update(ctx context.Context, id uuid.UUID, in UpdateDivisionInput) (*model.Division, error) {
	division, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Division != nil {
		slug, err := slugFor(divisionLabel, *in.Division)
		if err != nil {
			return nil, err
		}
		division.Division, division.Slug = *in.Division, slug
	}
	if in.DepartmentID != nil {
		if err := s.requireDepartment(ctx, *in.DepartmentID); err != nil {
			return nil, err
		}
		division.DepartmentID = *in.DepartmentID
		division.Department = nil
	}
	if err := s.repo.Update(ctx, division); err != nil {
		if apperr.IsNotFound(err) {
			return nil, s.notFound()
		}
		return nil, s.writeErr(err)
	}
	s.cache.invalidate(ctx)
	return division, nil
}

func (s *divisionService) writeErr(err error) error {
	if apperr.IsDuplicate(err) {
		return apperr.Conflict("Division already exists")
	}
	return apperr.Internal("Failed to save division", err)
}

func (s *divisionService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return s.cache.after(ctx, s.archive.SoftDelete(ctx, id))
}

func (s *divisionService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.cache.after(ctx, s.archive.Restore(ctx, id))
}

func (s *divisionService) HardDelete(ctx context.Context, id uuid.UUID) error {
	return s.cache.after(ctx, s.archive.HardDelete(ctx, id))
}

// MemberService manages organization members.
type MemberService interface {
	ArchiveService[model.Member]
	Create(ctx context.Context, in MemberInput) (*model.Member, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateMemberInput) (*model.Member, error)
}

type memberService struct {
	archive[model.Member]
	repo      repository.MemberRepository
	divisions repository.DivisionRepository
	cache     *OrgCache
}

// NewMemberService creates a new member service.
func NewMemberService(repo repository.MemberRepository, divisions repository.DivisionRepository, cache *OrgCache) MemberService {
	return &memberService{
		archive:   newArchive[model.Member](repo, memberLabel),
		repo:      repo,
		divisions: divisions,
		cache:     cache,
	}
}

func (s *memberService) requireDivision(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := s.divisions.FindActive(ctx, *id); err != nil {
		if apperr.IsNotFound(err) {
			return apperr.BadRequest("Division not found")
		}
		return apperr.Internal("Failed to load division", err)
	}
	return nil
}

func (s *memberService) Create(ctx context.Context, in MemberInput) (*model.Member, error) {
	if err := s.requireDivision(ctx, in.DivisionID); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = model.MemberStaff
	}
	member := &model.Member{
		Name:       in.Name,
		Position:   in.Position,
		Role:       in.Role,
		Photo:      in.Photo,
		DivisionID: in.DivisionID,
	}
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, apperr.Internal("Failed to create member", err)
	}
	s.cache.invalidate(ctx)
	return member, nil
}

func (s *memberService) Update(ctx context.Context, id uuid.UUID, in UpdateMemberInput) (*model.Member, error) {
	member, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireDivision(ctx, in.DivisionID); err != nil {
		return nil, err
	}
	if in.Name != nil {
		member.Name = *in.Name
	}
	if in.Position != nil {
		member.Position = *in.Position
	}
	if in.Role != nil {
		member.Role = *in.Role
	}
	if in.Photo != nil {
		member.Photo = in.Photo
	}
	if in.DivisionID != nil {
		member.DivisionID = in.DivisionID
		member.Division = nil
	}
	if err := s.repo.Update(ctx, member); err != nil {
		if apperr.IsNotFound(err) {
			return nil, s.notFound()
		}
		return nil, apperr.Internal("Failed to update member", err)
	}
	s.cache.invalidate(ctx)
	return member, nil
}

func (s *memberService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return s.cache.after(ctx, s.archive.SoftDelete(ctx, id))
}

func (s *memberService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.cache.after(ctx, s.archive.Restore(ctx, id))
}

func (s *memberService) HardDelete(ctx context.Context, id uuid.UUID) error {
	return s.cache.after(ctx, s.archive.HardDelete(ctx, id))
}
