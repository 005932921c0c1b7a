// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/taibuivan/libris/internal/platform/dberr"
)

// # Author Service

// AuthorService orchestrates business rules for authors, including the
// cascading delete that removes an author's books and their category links.
type AuthorService struct {
	store Store
}

// NewAuthorService constructs a new [AuthorService].
func NewAuthorService(store Store) *AuthorService {
	return &AuthorService{store: store}
}

/*
GetAll returns every author with its books hydrated.

Parameters:
  - ctx: context.Context

Returns:
  - []*Author: Hydrated author entities
  - error: Storage failures
*/
func (service *AuthorService) GetAll(ctx context.Context) ([]*Author, error) {
	uow, err := service.store.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close(ctx)

	return uow.Authors().GetAll(ctx)
}

/*
GetByID returns one author with its books hydrated.

Returns:
  - *Author: The hydrated entity, or nil when no such author exists
  - error: Storage failures
*/
func (service *AuthorService) GetByID(ctx context.Context, id int) (*Author, error) {
	uow, err := service.store.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close(ctx)

	author, err := uow.Authors().GetByID(ctx, id)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, nil
	}
	return author, err
}

/*
Add validates the input and creates a new author.

Returns:
  - *Author: The created entity with its generated ID
  - error: "Validation failed." or storage failures
*/
func (service *AuthorService) Add(ctx context.Context, input AuthorInput) (*Author, error) {
	// Validate the raw value first: padded names fail the format rule
	// rather than being silently normalized. Trim only after it passes.
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

	author := &Author{Name: input.Name, Books: []*Book{}}
	if err := uow.Authors().Add(ctx, author); err != nil {
		uow.Rollback(ctx)
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return author, nil
}

/*
Update validates the input and renames an existing author.

Returns:
  - *Author: The updated entity, or nil when no such author exists
  - error: "Validation failed." or storage failures
*/
func (service *AuthorService) Update(ctx context.Context, id int, input AuthorInput) (*Author, error) {
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

	author, err := uow.Authors().GetByID(ctx, id)
	if errors.Is(err, dberr.ErrNotFound) {
		uow.Rollback(ctx)
		return nil, nil
	}
	if err != nil {
		uow.Rollback(ctx)
		return nil, err
	}

	author.Name = input.Name
	if err := uow.Authors().Update(ctx, author); err != nil {
		uow.Rollback(ctx)
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return author, nil
}

/*
Delete removes an author together with all of their books and those books'
category links, in one transaction. Deleting an author that does not exist
is a no-op.

Returns:
  - error: Storage failures
*/
func (service *AuthorService) Delete(ctx context.Context, id int) error {
	uow, err := service.store.NewUnitOfWork(ctx)
	if err != nil {
		return err
	}
	defer uow.Close(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}

	if _, err := uow.Authors().GetByID(ctx, id); err != nil {
		uow.Rollback(ctx)
		if errors.Is(err, dberr.ErrNotFound) {
			return nil
		}
		return err
	}

	// Junction rows go first, then the books, then the author itself,
	// honoring the foreign keys bottom-up.
	books, err := uow.Books().GetByAuthorID(ctx, id)
	if err != nil {
		uow.Rollback(ctx)
		return err
	}
	for _, book := range books {
		if err := uow.BookCategories().DeleteByBookID(ctx, book.ID); err != nil {
			uow.Rollback(ctx)
			return err
		}
		if err := uow.Books().Delete(ctx, book.ID); err != nil {
			uow.Rollback(ctx)
			return err
		}
	}

	if err := uow.Authors().Delete(ctx, id); err != nil {
		uow.Rollback(ctx)
		return err
	}

	return uow.Commit(ctx)
}
