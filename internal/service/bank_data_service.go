package service

import (
	"context"

	"github.com/google/uuid"

	apperr "himti/internal/errors"
	"himti/internal/model"
	"himti/internal/pagination"
	"himti/internal/repository"
)

type BankDataInput struct {
	Title string `json:"title" validate:"required"`
	Link  string `json:"link" validate:"required,url"`
}

type UpdateBankDataInput struct {
	Title *string `json:"title" validate:"omitempty,min=1"`
	Link  *string `json:"link" validate:"omitempty,url"`
}

// BankDataService manages shared document links. Deletion is permanent.
type BankDataService interface {
	List(ctx context.Context, q pagination.Query) (*pagination.Page[model.BankData], error)
	Get(ctx context.Context, id uuid.UUID) (*model.BankData, error)
	Create(ctx context.Context, in BankDataInput) (*model.BankData, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateBankDataInput) (*model.BankData, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type bankDataService struct {
	repo repository.BankDataRepository
}

// NewBankDataService creates a new bank data service.
func NewBankDataService(repo repository.BankDataRepository) BankDataService {
	return &bankDataService{repo: repo}
}

var errBankDataNotFound = apperr.NotFound("Bank data not found")

func (s *bankDataService) List(ctx context.Context, q pagination.Query) (*pagination.Page[model.BankData], error) {
	page, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, apperr.Internal("Failed to list bank data", err)
	}
	return page, nil
}

func (s *bankDataService) Get(ctx context.Context, id uuid.UUID) (*model.BankData, error) {
	data, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, errBankDataNotFound
		}
		return nil, apperr.Internal("Failed to load bank data", err)
	}
	return data, nil
}

func (s *bankDataService) Create(ctx context.Context, in BankDataInput) (*model.BankData, error) {
	data := &model.BankData{Title: in.Title, Link: in.Link}
	if err := s.repo.Create(ctx, data); err != nil {
		return nil, apperr.Internal("Failed to create bank data", err)
	}
	return data, nil
}

func (s *bankDataService) Update(ctx context.Context, id uuid.UUID, in UpdateBankDataInput) (*model.BankData, error) {
	data, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		data.Title = *in.Title
	}
	if in.Link != nil {
		data.Link = *in.Link
	}
	if err := s.repo.Update(ctx, data); err != nil {
		if apperr.IsNotFound(err) {
			return nil, errBankDataNotFound
		}
		return nil, apperr.Internal("Failed to update bank data", err)
	}
	return data, nil
}

func (s *bankDataService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if apperr.IsNotFound(err) {
			return errBankDataNotFound
		}
		return apperr.Internal("Failed to delete bank data", err)
	}
	return nil
}
