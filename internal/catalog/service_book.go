// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/taibuivan/libris/internal/platform/apperr"
	"github.com/taibuivan/libris/internal/platform/dberr"
	"github.com/taibuivan/libris/internal/platform/filestore"
)

// # Book Service

// BookService orchestrates the transactional write paths for books: every
// create/update validates the author and all categories before touching the
// book row, and the junction rows move in the same transaction.
type BookService struct {
	store Store
	files *filestore.Store
}

// NewBookService constructs a new [BookService].
func NewBookService(store Store, files *filestore.Store) *BookService {
	return &BookService{store: store, files: files}
}

/*
GetAll returns every book with its author and categories hydrated.

Returns:
  - []*Book: Hydrated book entities
  - error: Storage failures
*/
func (service *BookService) GetAll(ctx context.Context) ([]*Book, error) {
	uow, err := service.store.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close(ctx)

	return uow.Books().GetAll(ctx)
}

/*
GetByID returns one book with its author and categories hydrated.

Returns:
  - *Book: The hydrated entity, or nil when no such book exists
  - error: Storage failures
*/
func (service *BookService) GetByID(ctx context.Context, id int) (*Book, error) {
	uow, err := service.store.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close(ctx)

	book, err := uow.Books().GetByID(ctx, id)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, nil
	}
	return book, err
}

/*
Add validates the input, checks the referenced author and every referenced
category, and creates the book with its category links in one transaction.
Any referential failure rolls the whole write back.

Returns:
  - *Book: The created, fully hydrated entity
  - error: "Validation failed.", "Author not found.",
    "Category with ID N not found.", or storage failures
*/
func (service *BookService) Add(ctx context.Context, input BookInput) (*Book, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	input.Title = strings.TrimSpace(input.Title)

	uow, err := service.store.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	if err := service.checkReferences(ctx, uow, input); err != nil {
		uow.Rollback(ctx)
		return nil, err
	}

	book := &Book{Title: input.Title, AuthorID: input.AuthorID}
	if err := uow.Books().Add(ctx, book); err != nil {
		uow.Rollback(ctx)
		return nil, err
	}

	for _, categoryID := range input.CategoryIDs {
		link := &BookCategory{BookID: book.ID, CategoryID: categoryID}
		if err := uow.BookCategories().Add(ctx, link); err != nil {
			uow.Rollback(ctx)
			return nil, err
		}
	}

	// Re-read inside the transaction so the response carries the hydrated
	// author and categories.
	created, err := uow.Books().GetByID(ctx, book.ID)
	if err != nil {
		uow.Rollback(ctx)
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

/*
Update validates the input, re-checks all references, updates the book row,
and fully replaces its category links, all in one transaction.

Returns:
  - *Book: The updated, fully hydrated entity
  - error: "Validation failed.", "Book not found.", "Author not found.",
    "Category with ID N not found.", or storage failures
*/
func (service *BookService) Update(ctx context.Context, id int, input BookInput) (*Book, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	input.Title = strings.TrimSpace(input.Title)

	uow, err := service.store.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Close(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	book, err := uow.Books().GetByID(ctx, id)
	if errors.Is(err, dberr.ErrNotFound) {
		uow.Rollback(ctx)
		return nil, apperr.BadRequest("Book not found.")
	}
	if err != nil {
		uow.Rollback(ctx)
		return nil, err
	}

	if err := service.checkReferences(ctx, uow, input); err != nil {
		uow.Rollback(ctx)
		return nil, err
	}

	book.Title = input.Title
	book.AuthorID = input.AuthorID
	if err := uow.Books().Update(ctx, book); err != nil {
		uow.Rollback(ctx)
		return nil, err
	}

	// Replace the category links wholesale: delete everything, re-insert
	// the requested set.
	if err := uow.BookCategories().DeleteByBookID(ctx, id); err != nil {
		uow.Rollback(ctx)
		return nil, err
	}
	for _, categoryID := range input.CategoryIDs {
		link := &BookCategory{BookID: id, CategoryID: categoryID}
		if err := uow.BookCategories().Add(ctx, link); err != nil {
			uow.Rollback(ctx)
			return nil, err
		}
	}

	updated, err := uow.Books().GetByID(ctx, id)
	if err != nil {
		uow.Rollback(ctx)
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

/*
Delete removes a book and its junction rows in one transaction. Deleting a
book that does not exist is a no-op.

Returns:
  - error: Storage failures
*/
func (service *BookService) Delete(ctx context.Context, id int) error {
	uow, err := service.store.NewUnitOfWork(ctx)
	if err != nil {
		return err
	}
	defer uow.Close(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}

	if _, err := uow.Books().GetByID(ctx, id); err != nil {
		uow.Rollback(ctx)
		if errors.Is(err, dberr.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := uow.BookCategories().DeleteByBookID(ctx, id); err != nil {
		uow.Rollback(ctx)
		return err
	}
	if err := uow.Books().Delete(ctx, id); err != nil {
		uow.Rollback(ctx)
		return err
	}

	return uow.Commit(ctx)
}

/*
UploadImage stores a cover image for the book and records its relative path.

Returns:
  - string: The stored file's path relative to the upload root
  - error: Upload or storage failures
*/
func (service *BookService) UploadImage(ctx context.Context, id int, image io.Reader) (string, error) {
	path, err := service.files.SaveBookImage(image)
	if err != nil {
		return "", err
	}

	uow, err := service.store.NewUnitOfWork(ctx)
	if err != nil {
		return "", err
	}
	defer uow.Close(ctx)

	if err := uow.Begin(ctx); err != nil {
		return "", err
	}
	if err := uow.Books().UpdateImagePath(ctx, id, path); err != nil {
		uow.Rollback(ctx)
		// The row vanished between the handler's check and here; don't
		// leave the file orphaned.
		_ = service.files.Remove(path)
		return "", err
	}
	if err := uow.Commit(ctx); err != nil {
		_ = service.files.Remove(path)
		return "", err
	}
	return path, nil
}

// checkReferences verifies the author and every category in the input exist.
// It reports the first missing reference with the client-facing message.
func (service *BookService) checkReferences(ctx context.Context, uow UnitOfWork, input BookInput) error {
	if _, err := uow.Authors().GetByID(ctx, input.AuthorID); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.BadRequest("Author not found.")
		}
		return err
	}

	for _, categoryID := range input.CategoryIDs {
		if _, err := uow.Categories().GetByID(ctx, categoryID); err != nil {
			if errors.Is(err, dberr.ErrNotFound) {
				return apperr.BadRequest(fmt.Sprintf("Category with ID %d not found.", categoryID))
			}
			return err
		}
	}
	return nil
}
