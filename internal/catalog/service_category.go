// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/taibuivan/libris/internal/platform/apperr"
	"github.com/taibuivan/libris/internal/platform/dberr"
)

// # Category Service

// CategoryService orchestrates business rules for categories, most notably
// the name uniqueness guarantee.
type CategoryService struct {
	store Store
}

// NewCategoryService constructs a new [CategoryService].
func NewCategoryService(store Store) *CategoryService {
	return &CategoryService{store: store}
}

/*
GetAll returns every category with its books hydrated.

Returns:
  - []*Category: Hydrated category entities
  - error: Storage failures
*/
func (service *CategoryService) GetAll(ctx context.Context) ([]*Category, error) {
	uow, err := service.store.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close(ctx)

	return uow.Categories().GetAll(ctx)
}

/*
GetByID returns one category with its books hydrated.

Returns:
  - *Category: The hydrated entity, or nil when no such category exists
  - error: Storage failures
*/
func (service *CategoryService) GetByID(ctx context.Context, id int) (*Category, error) {
	uow, err := service.store.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close(ctx)

	category, err := uow.Categories().GetByID(ctx, id)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, nil
	}
	return category, err
}

/*
Add validates the input and creates a new category with a unique name.

The pre-insert name check gives the friendly error for the common case; the
unique index on categories.name closes the race where two requests pass the
check concurrently, and its violation maps to the same message.

Returns:
  - *Category: The created entity with its generated ID
  - error: "Validation failed.", "Category already exists.", or storage failures
*/
func (service *CategoryService) Add(ctx context.Context, input CategoryInput) (*Category, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	input.Name = strings.TrimSpace(input.Name)

	uow, err := service.store.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	_, err = uow.Categories().GetByName(ctx, input.Name)
	if err == nil {
		uow.Rollback(ctx)
		return nil, apperr.BadRequest("Category already exists.")
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		uow.Rollback(ctx)
		return nil, err
	}

	category := &Category{Name: input.Name, Books: []*Book{}}
	if err := uow.Categories().Add(ctx, category); err != nil {
		uow.Rollback(ctx)
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.BadRequest("Category already exists.")
		}
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return category, nil
}

/*
Update validates the input and renames an existing category. Renaming to a
name held by a different category is rejected.

Returns:
  - *Category: The updated entity
  - error: "Validation failed.", "Category not found.",
    "Category already exists.", or storage failures
*/
func (service *CategoryService) Update(ctx context.Context, id int, input CategoryInput) (*Category, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	input.Name = strings.TrimSpace(input.Name)

	uow, err := service.store.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	category, err := uow.Categories().GetByID(ctx, id)
	if errors.Is(err, dberr.ErrNotFound) {
		uow.Rollback(ctx)
		return nil, apperr.BadRequest("Category not found.")
	}
	if err != nil {
		uow.Rollback(ctx)
		return nil, err
	}

	existing, err := uow.Categories().GetByName(ctx, input.Name)
	if err == nil && existing.ID != id {
		uow.Rollback(ctx)
		return nil, apperr.BadRequest("Category already exists.")
	}
	if err != nil && !errors.Is(err, dberr.ErrNotFound) {
		uow.Rollback(ctx)
		return nil, err
	}

	category.Name = input.Name
	if err := uow.Categories().Update(ctx, category); err != nil {
		uow.Rollback(ctx)
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.BadRequest("Category already exists.")
		}
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return category, nil
}

/*
Delete removes a category and its junction rows in one transaction. Books
that carried the category survive with one fewer tag. Deleting a category
that does not exist is a no-op.

Returns:
  - error: Storage failures
*/
func (service *CategoryService) Delete(ctx context.Context, id int) error {
	uow, err := service.store.NewUnitOfWork(ctx)
	if err != nil {
		return err
	}
	defer uow.Close(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}

	if _, err := uow.Categories().GetByID(ctx, id); err != nil {
		uow.Rollback(ctx)
		if errors.Is(err, dberr.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := uow.BookCategories().DeleteByCategoryID(ctx, id); err != nil {
		uow.Rollback(ctx)
		return err
	}
	if err := uow.Categories().Delete(ctx, id); err != nil {
		uow.Rollback(ctx)
		return err
	}

	return uow.Commit(ctx)
}
