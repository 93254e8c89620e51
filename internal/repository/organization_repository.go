package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"himti/internal/model"
)

// DepartmentRepository defines department persistence operations.
type DepartmentRepository interface {
	Lifecycle[model.Department]
	Create(ctx context.Context, department *model.Department) error
	Update(ctx context.Context, department *model.Department) error
	FindBySlug(ctx context.Context, slug string) (*model.Department, error)
	All(ctx context.Context) ([]model.Department, error)
}

type departmentRepository struct {
	Lifecycle[model.Department]
	db *gorm.DB
}

// withDivisions preloads a department's divisions and their members.
func withDivisions(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Divisions", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("division ASC")
	}).Preload("Divisions.Members", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("name ASC")
	})
}

// NewDepartmentRepository creates a new department repository.
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{
		Lifecycle: NewLifecycle[model.Department](db, "department ASC", withDivisions),
		db:        db,
	}
}

func (r *departmentRepository) Create(ctx context.Context, department *model.Department) error {
	return r.db.WithContext(ctx).Create(department).Error
}

func (r *departmentRepository) Update(ctx context.Context, department *model.Department) error {
	return updated(r.db.WithContext(ctx).Model(department).Select("department", "slug").Updates(department))
}

func (r *departmentRepository) FindBySlug(ctx context.Context, slug string) (*model.Department, error) {
	var department model.Department
	if err := withDivisions(r.db.WithContext(ctx)).Where("slug = ?", slug).First(&department).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

// All returns every department including soft-deleted ones.
func (r *departmentRepository) All(ctx context.Context) ([]model.Department, error) {
	var departments []model.Department
	err := r.db.WithContext(ctx).Unscoped().Order("created_at ASC").Find(&departments).Error
	return departments, err
}

// DivisionRepository defines division persistence operations.
type DivisionRepository interface {
	Lifecycle[model.Division]
	Create(ctx context.Context, division *model.Division) error
	Update(ctx context.Context, division *model.Division) error
	FindBySlug(ctx context.Context, slug string) (*model.Division, error)
	All(ctx context.Context) ([]model.Division, error)
}

type divisionRepository struct {
	Lifecycle[model.Division]
	db *gorm.DB
}

func withDivisionRelations(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Department").Preload("Members", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("name ASC")
	})
}

// NewDivisionRepository creates a new division repository.
func NewDivisionRepository(db *gorm.DB) DivisionRepository {
	return &divisionRepository{
		Lifecycle: NewLifecycle[model.Division](db, "division ASC", withDivisionRelations),
		db:        db,
	}
}

func (r *divisionRepository) Create(ctx context.Context, division *model.Division) error {
	return r.db.WithContext(ctx).Create(division).Error
}

func (r *divisionRepository) Update(ctx context.Context, division *model.Division) error {
	return updated(r.db.WithContext(ctx).Model(division).
		Select("division", "slug", "department_id").
		Updates(division))
}

func (r *divisionRepository) FindBySlug(ctx context.Context, slug string) (*model.Division, error) {
	var division model.Division
	if err := withDivisionRelations(r.db.WithContext(ctx)).Where("slug = ?", slug).First(&division).Error; err != nil {
		return nil, err
	}
	return &division, nil
}

// All returns every division including soft-deleted ones.
func (r *divisionRepository) All(ctx context.Context) ([]model.Division, error) {
	var divisions []model.Division
	err := r.db.WithContext(ctx).Unscoped().Order("created_at ASC").Find(&divisions).Error
	return divisions, err
}

// UpdateSlug rewrites only the slug column of a department or division row, deleted or not.
func UpdateSlug[T model.Department | model.Division](ctx context.Context, db *gorm.DB, id uuid.UUID, slug string) error {
	return db.WithContext(ctx).Unscoped().Model(new(T)).Where("id = ?", id).Update("slug", slug).Error
}

// MemberRepository defines member persistence operations.
type MemberRepository interface {
	Lifecycle[model.Member]
	Create(ctx context.Context, member *model.Member) error
	Update(ctx context.Context, member *model.Member) error
}

type memberRepository struct {
	Lifecycle[model.Member]
	db *gorm.DB
}

// NewMemberRepository creates a new member repository.
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{
		Lifecycle: NewLifecycle[model.Member](db, "name ASC", func(tx *gorm.DB) *gorm.DB {
			return tx.Preload("Division.Department")
		}),
		db: db,
	}
}

func (r *memberRepository) Create(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepository) Update(ctx context.Context, member *model.Member) error {
	return updated(r.db.WithContext(ctx).Model(member).
		Select("name", "position", "role", "photo", "division_id").
		Updates(member))
}
