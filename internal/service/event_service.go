package service

import (
	"context"

	"github.com/google/uuid"

	apperr "himti/internal/errors"
	"himti/internal/model"
	"himti/internal/pagination"
	"himti/internal/repository"
)

const (
	eventLabel   = "Event"
	galleryLabel = "Gallery"
)

type EventInput struct {
	Name string `json:"name" validate:"required"`
}

type UpdateEventInput struct {
	Name *string `json:"name" validate:"omitempty,min=1"`
}

type GalleryInput struct {
	EventID  uuid.UUID `json:"event_id" validate:"required"`
	PhotoURL string    `json:"photo_url" validate:"required"`
}

type UpdateGalleryInput struct {
	EventID  *uuid.UUID `json:"event_id"`
	PhotoURL *string    `json:"photo_url" validate:"omitempty,min=1"`
}

// EventService manages events.
type EventService interface {
	ArchiveService[model.Event]
	Create(ctx context.Context, in EventInput) (*model.Event, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateEventInput) (*model.Event, error)
}

type eventService struct {
	archive[model.Event]
	repo repository.EventRepository
}

// NewEventService creates a new event service.
func NewEventService(repo repository.EventRepository) EventService {
	return &eventService{archive: newArchive[model.Event](repo, eventLabel), repo: repo}
}

func (s *eventService) Create(ctx context.Context, in EventInput) (*model.Event, error) {
	event := &model.Event{Name: in.Name}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, apperr.Internal("Failed to create event", err)
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, id uuid.UUID, in UpdateEventInput) (*model.Event, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		event.Name = *in.Name
	}
	if err := s.repo.Update(ctx, event); err != nil {
		if apperr.IsNotFound(err) {
			return nil, s.notFound()
		}
		return nil, apperr.Internal("Failed to update event", err)
	}
	return event, nil
}

// GalleryService manages event photos.
type GalleryService interface {
	ArchiveService[model.Gallery]
	ListByEvent(ctx context.Context, eventID uuid.UUID, q pagination.Query) (*pagination.Page[model.Gallery], error)
	Create(ctx context.Context, in GalleryInput) (*model.Gallery, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateGalleryInput) (*model.Gallery, error)
}

type galleryService struct {
	archive[model.Gallery]
	repo   repository.GalleryRepository
	events repository.EventRepository
}

// NewGalleryService creates a new gallery service.
func NewGalleryService(repo repository.GalleryRepository, events repository.EventRepository) GalleryService {
	return &galleryService{archive: newArchive[model.Gallery](repo, galleryLabel), repo: repo, events: events}
}

func (s *galleryService) requireEvent(ctx context.Context, id uuid.UUID, missing error) error {
	if _, err := s.events.FindActive(ctx, id); err != nil {
		if apperr.IsNotFound(err) {
			return missing
		}
		return apperr.Internal("Failed to load event", err)
	}
	return nil
}

func (s *galleryService) ListByEvent(ctx context.Context, eventID uuid.UUID, q pagination.Query) (*pagination.Page[model.Gallery], error) {
	if err := s.requireEvent(ctx, eventID, apperr.NotFound("Event not found")); err != nil {
		return nil, err
	}
	page, err := s.repo.ListByEvent(ctx, eventID, q)
	if err != nil {
		return nil, apperr.Internal("Failed to list galleries", err)
	}
	return page, nil
}

func (s *galleryService) Create(ctx context.Context, in GalleryInput) (*model.Gallery, error) {
	if err := s.requireEvent(ctx, in.EventID, apperr.BadRequest("Event not found")); err != nil {
		return nil, err
	}
	gallery := &model.Gallery{EventID: in.EventID, PhotoURL: in.PhotoURL}
	if err := s.repo.Create(ctx, gallery); err != nil {
		return nil, apperr.Internal("Failed to create gallery", err)
	}
	return gallery, nil
}

func (s *galleryService) Update(ctx context.Context, id uuid.UUID, in UpdateGalleryInput) (*model.Gallery, error) {
	gallery, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.EventID != nil {
		if err := s.requireEvent(ctx, *in.EventID, apperr.BadRequest("Event not found")); err != nil {
			return nil, err
		}
		gallery.EventID = *in.EventID
		gallery.Event = nil
	}
	if in.PhotoURL != nil {
		gallery.PhotoURL = *in.PhotoURL
	}
	if err := s.repo.Update(ctx, gallery); err != nil {
		if apperr.IsNotFound(err) {
			return nil, s.notFound()
		}
		return nil, apperr.Internal("Failed to update gallery", err)
	}
	return gallery, nil
}
