// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"errors"
)

// ErrTransactionOpen is returned by [UnitOfWork.Begin] when a transaction is
// already in progress on the same unit.
var ErrTransactionOpen = errors.New("catalog: transaction already open")

// # Repository Interfaces
//
// Repositories translate between entities and rows. Missing rows surface as
// dberr.ErrNotFound; every method retries transient failures internally.

// AuthorRepository is the data-access contract for authors.
type AuthorRepository interface {
	// GetAll returns every author hydrated with its books.
	GetAll(ctx context.Context) ([]*Author, error)

	// GetByID returns one author hydrated with its books.
	GetByID(ctx context.Context, id int) (*Author, error)

	// Add inserts the author and fills in its generated ID.
	Add(ctx context.Context, author *Author) error

	// Update persists the author's mutable fields.
	Update(ctx context.Context, author *Author) error

	// Delete removes the author row. Dependent books must be removed first.
	Delete(ctx context.Context, id int) error
}

// BookRepository is the data-access contract for books.
type BookRepository interface {
	// GetAll returns every book hydrated with its author and categories.
	GetAll(ctx context.Context) ([]*Book, error)

	// GetByID returns one book hydrated with its author and categories.
	GetByID(ctx context.Context, id int) (*Book, error)

	// GetByAuthorID returns the (non-hydrated) books of one author.
	GetByAuthorID(ctx context.Context, authorID int) ([]*Book, error)

	// Add inserts the book and fills in its generated ID. Category links
	// are managed separately through [BookCategoryRepository].
	Add(ctx context.Context, book *Book) error

	// Update persists the book's title and author.
	Update(ctx context.Context, book *Book) error

	// Delete removes the book row. Junction rows must be removed first.
	Delete(ctx context.Context, id int) error

	// UpdateImagePath stores the relative path of the book's cover image.
	UpdateImagePath(ctx context.Context, id int, path string) error
}

// CategoryRepository is the data-access contract for categories.
type CategoryRepository interface {
	// GetAll returns every category hydrated with its books.
	GetAll(ctx context.Context) ([]*Category, error)

	// GetByID returns one category hydrated with its books.
	GetByID(ctx context.Context, id int) (*Category, error)

	// GetByName returns the category with the exact given name.
	GetByName(ctx context.Context, name string) (*Category, error)

	// Add inserts the category and fills in its generated ID.
	Add(ctx context.Context, category *Category) error

	// Update persists the category's mutable fields.
	Update(ctx context.Context, category *Category) error

	// Delete removes the category row.
	Delete(ctx context.Context, id int) error
}

// BookCategoryRepository manages the book_categories junction table.
type BookCategoryRepository interface {
	// GetByBookID returns the junction rows of one book.
	GetByBookID(ctx context.Context, bookID int) ([]*BookCategory, error)

	// Add inserts a single junction row.
	Add(ctx context.Context, link *BookCategory) error

	// DeleteByBookID removes every junction row of one book.
	DeleteByBookID(ctx context.Context, bookID int) error

	// DeleteByCategoryID removes every junction row of one category.
	DeleteByCategoryID(ctx context.Context, categoryID int) error
}

// # Unit of Work

/*
UnitOfWork binds the four repositories to one database connection so that a
multi-statement write commits or rolls back as a whole.

# Contract

  - Begin starts a transaction; a second Begin fails with [ErrTransactionOpen].
  - Repository calls between Begin and Commit run inside the transaction;
    outside of one they run directly on the connection.
  - Commit/Rollback end the transaction; both are safe to call when none is
    open.
  - Close releases the connection, rolling back any transaction still open.
    It must be deferred immediately after acquisition and is idempotent.
*/
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context)
	Close(ctx context.Context)

	Authors() AuthorRepository
	Books() BookRepository
	Categories() CategoryRepository
	BookCategories() BookCategoryRepository
}

// Store hands out units of work. It is the only seam the services depend on,
// which keeps them testable without a database.
type Store interface {
	NewUnitOfWork(ctx context.Context) (UnitOfWork, error)
}
