package store

import (
	"context"
	"fmt"
	"time"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/id"
	"retailhub/internal/core/tx"
	"retailhub/internal/domain"
	"retailhub/pkg/logger"
	"retailhub/pkg/numerator"
)

// Service provides business logic for the Store catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Store]
	repo Repository
}

// NewService creates a new Store service.
func NewService(repo Repository, txm tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Store]{
		Repo:       repo,
		TxManager:  txm,
		Numerator:  num,
		EntityName: "store",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

// prepareForCreate generates the store code when absent.
func (s *Service) prepareForCreate(ctx context.Context, st *Store) error {
	if st.Code == "" {
		code, err := s.Numerator().GetNextNumber(ctx, numerator.DefaultConfig("ST"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		st.Code = code
	}
	return nil
}

// FindActive retrieves all active stores.
func (s *Service) FindActive(ctx context.Context) ([]*Store, error) {
	return s.repo.FindActive(ctx)
}

// SetStatus pauses or resumes a store.
func (s *Service) SetStatus(ctx context.Context, storeID id.ID, status Status) error {
	st, err := s.GetByID(ctx, storeID)
	if err != nil {
		return err
	}

	switch status {
	case StatusActive:
		st.Resume()
	case StatusPaused:
		st.Pause()
	default:
		return apperror.NewValidation("invalid store status").
			WithDetail("value", string(status))
	}

	if err := s.Update(ctx, st); err != nil {
		return err
	}

	logger.Info(ctx, "store status changed",
		"store_id", storeID,
		"status", status,
	)

	return nil
}
