package domain

import (
	"context"
	"errors"
	"fmt"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/entity"
	"stockyard/internal/core/id"
	"stockyard/internal/core/tx"
)

// CatalogService provides generic CRUD operations for catalog entities.
// Concrete catalogs embed it and attach domain rules through hooks.
type CatalogService[T entity.Validatable] struct {
	repo       CatalogRepository[T]
	txManager  tx.Manager
	hooks      *HookRegistry[T]
	entityName string
}

// NewCatalogService creates a new catalog service.
func NewCatalogService[T entity.Validatable](
	repo CatalogRepository[T],
	txManager tx.Manager,
	entityName string,
) *CatalogService[T] {
	return &CatalogService[T]{
		repo:       repo,
		txManager:  txManager,
		hooks:      NewHookRegistry[T](),
		entityName: entityName,
	}
}

// Hooks exposes the hook registry for customization.
func (s *CatalogService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

// Create validates and persists a new entity.
func (s *CatalogService[T]) Create(ctx context.Context, ent T) error {
	if err := ent.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.hooks.Run(ctx, BeforeCreate, ent); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, ent); err != nil {
			return err
		}
		return s.hooks.Run(ctx, AfterCreate, ent)
	})
}

// GetByID retrieves an entity by ID.
func (s *CatalogService[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	ent, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return ent, s.normalizeGetErr(err)
	}
	return ent, nil
}

// GetByCode retrieves an entity by business code.
func (s *CatalogService[T]) GetByCode(ctx context.Context, code string) (T, error) {
	ent, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return ent, s.normalizeGetErr(err)
	}
	return ent, nil
}

// Update validates and persists changes to an existing entity.
func (s *CatalogService[T]) Update(ctx context.Context, ent T) error {
	if err := ent.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.hooks.Run(ctx, BeforeUpdate, ent); err != nil {
			return err
		}
		return s.repo.Update(ctx, ent)
	})
}

// Delete removes an entity by ID.
func (s *CatalogService[T]) Delete(ctx context.Context, entityID id.ID) error {
	ent, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return s.normalizeGetErr(err)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.hooks.Run(ctx, BeforeDelete, ent); err != nil {
			return err
		}
		return s.repo.Delete(ctx, entityID)
	})
}

// List retrieves entities matching the filter.
func (s *CatalogService[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

// coded is implemented by entities carrying a business code.
type coded interface {
	GetCode() string
}

// EnsureUniqueCode is a BeforeCreate hook guarding code uniqueness.
func (s *CatalogService[T]) EnsureUniqueCode() Hook[T] {
	return func(ctx context.Context, ent T) error {
		c, ok := any(ent).(coded)
		if !ok || c.GetCode() == "" {
			return nil
		}
		exists, err := s.repo.ExistsByCode(ctx, c.GetCode())
		if err != nil {
			return err
		}
		if exists {
			return apperror.NewDuplicate(s.entityName, "code", c.GetCode())
		}
		return nil
	}
}

func (s *CatalogService[T]) normalizeValidationErr(err error) error {
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(fmt.Sprintf("%s validation failed: %v", s.entityName, err))
}

func (s *CatalogService[T]) normalizeGetErr(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName)
}
