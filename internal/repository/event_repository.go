package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"himti/internal/model"
	"himti/internal/pagination"
)

// EventRepository defines event persistence operations.
type EventRepository interface {
	Lifecycle[model.Event]
	Create(ctx context.Context, event *model.Event) error
	Update(ctx context.Context, event *model.Event) error
}

type eventRepository struct {
	Lifecycle[model.Event]
	db *gorm.DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{
		Lifecycle: NewLifecycle[model.Event](db, "created_at DESC", func(tx *gorm.DB) *gorm.DB {
			return tx.Preload("Galleries", func(tx *gorm.DB) *gorm.DB {
				return tx.Order("created_at DESC")
			})
		}),
		db: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) Update(ctx context.Context, event *model.Event) error {
	return updated(r.db.WithContext(ctx).Model(event).Select("name").Updates(event))
}

// GalleryRepository defines gallery persistence operations.
type GalleryRepository interface {
	Lifecycle[model.Gallery]
	Create(ctx context.Context, gallery *model.Gallery) error
	Update(ctx context.Context, gallery *model.Gallery) error
	ListByEvent(ctx context.Context, eventID uuid.UUID, q pagination.Query) (*pagination.Page[model.Gallery], error)
}

type galleryRepository struct {
	Lifecycle[model.Gallery]
	db *gorm.DB
}

func withEvent(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Event")
}

// NewGalleryRepository creates a new gallery repository.
func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{
		Lifecycle: NewLifecycle[model.Gallery](db, "created_at DESC", withEvent),
		db:        db,
	}
}

func (r *galleryRepository) Create(ctx context.Context, gallery *model.Gallery) error {
	if err := r.db.WithContext(ctx).Create(gallery).Error; err != nil {
		return err
	}
	return withEvent(r.db.WithContext(ctx)).First(gallery, "id = ?", gallery.ID).Error
}

func (r *galleryRepository) Update(ctx context.Context, gallery *model.Gallery) error {
	return updated(r.db.WithContext(ctx).Model(gallery).Select("event_id", "photo_url").Updates(gallery))
}

func (r *galleryRepository) ListByEvent(ctx context.Context, eventID uuid.UUID, q pagination.Query) (*pagination.Page[model.Gallery], error) {
	base := r.db.WithContext(ctx).Model(&model.Gallery{}).Where("event_id = ?", eventID)
	return pagination.Window[model.Gallery](ctx, base, q, func(tx *gorm.DB) *gorm.DB {
		return withEvent(tx).Order("created_at DESC")
	})
}

// BankDataRepository defines bank data persistence. Rows are removed outright.
type BankDataRepository interface {
	Create(ctx context.Context, data *model.BankData) error
	Update(ctx context.Context, data *model.BankData) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.BankData, error)
	List(ctx context.Context, q pagination.Query) (*pagination.Page[model.BankData], error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type bankDataRepository struct {
	db *gorm.DB
}

// NewBankDataRepository creates a new bank data repository.
func NewBankDataRepository(db *gorm.DB) BankDataRepository {
	return &bankDataRepository{db: db}
}

func (r *bankDataRepository) Create(ctx context.Context, data *model.BankData) error {
	return r.db.WithContext(ctx).Create(data).Error
}

func (r *bankDataRepository) Update(ctx context.Context, data *model.BankData) error {
	return updated(r.db.WithContext(ctx).Model(data).Select("title", "link").Updates(data))
}

func (r *bankDataRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.BankData, error) {
	var data model.BankData
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&data).Error; err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *bankDataRepository) List(ctx context.Context, q pagination.Query) (*pagination.Page[model.BankData], error) {
	base := r.db.WithContext(ctx).Model(&model.BankData{})
	return pagination.Window[model.BankData](ctx, base, q, func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at DESC")
	})
}

func (r *bankDataRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.BankData{})
	if res.Error != nil {
		return fmt.Errorf("delete bank data: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
