// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/libris/internal/platform/database/schema"
	"github.com/taibuivan/libris/internal/platform/dberr"
)

// # Book Repository Implementation

// pgxBookRepository implements [BookRepository] on the unit of work's
// connection.
type pgxBookRepository struct {
	uow *pgxUnitOfWork
}

// bookSelect joins each book to its author (inner: a book always has one)
// and its categories (left: it may have none after a category delete).
func bookSelect(where string) string {
	return fmt.Sprintf(`
		SELECT b.%s, b.%s, b.%s, b.%s, a.%s, a.%s, c.%s, c.%s
		FROM %s b
		JOIN %s a ON a.%s = b.%s
		LEFT JOIN %s bc ON bc.%s = b.%s
		LEFT JOIN %s c ON c.%s = bc.%s
		%s
		ORDER BY b.%s, c.%s`,
		schema.Book.ID, schema.Book.Title, schema.Book.AuthorID, schema.Book.ImagePath,
		schema.Author.ID, schema.Author.Name,
		schema.Category.ID, schema.Category.Name,
		schema.Book.Table,
		schema.Author.Table, schema.Author.ID, schema.Book.AuthorID,
		schema.BookCategory.Table, schema.BookCategory.BookID, schema.Book.ID,
		schema.Category.Table, schema.Category.ID, schema.BookCategory.CategoryID,
		where,
		schema.Book.ID, schema.Category.ID,
	)
}

/*
GetAll returns every book with its author and categories hydrated.

Each book appears once per linked category in the raw result set; the fold
collapses the duplicates in first-seen order.
*/
func (repository *pgxBookRepository) GetAll(ctx context.Context) ([]*Book, error) {
	query := bookSelect("")

	var books []*Book
	err := repository.uow.retrier.Do(ctx, func(ctx context.Context) error {
		rows, err := repository.uow.db().Query(ctx, query)
		if err != nil {
			return dberr.Wrap(err, "list books")
		}
		defer rows.Close()

		books, err = foldBookRows(rows)
		return err
	})
	return books, err
}

// GetByID returns one hydrated book, or dberr.ErrNotFound.
func (repository *pgxBookRepository) GetByID(ctx context.Context, id int) (*Book, error) {
	query := bookSelect(fmt.Sprintf("WHERE b.%s = $1", schema.Book.ID))

	var book *Book
	err := repository.uow.retrier.Do(ctx, func(ctx context.Context) error {
		rows, err := repository.uow.db().Query(ctx, query, id)
		if err != nil {
			return dberr.Wrap(err, "get book")
		}
		defer rows.Close()

		books, err := foldBookRows(rows)
		if err != nil {
			return err
		}
		if len(books) == 0 {
			return dberr.ErrNotFound
		}
		book = books[0]
		return nil
	})
	return book, err
}

// GetByAuthorID returns the plain book rows of one author, without
// hydration. The author delete cascade uses this to find dependent books.
func (repository *pgxBookRepository) GetByAuthorID(ctx context.Context, authorID int) ([]*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s`,
		schema.Book.ID, schema.Book.Title, schema.Book.AuthorID, schema.Book.ImagePath,
		schema.Book.Table, schema.Book.AuthorID, schema.Book.ID,
	)

	var books []*Book
	err := repository.uow.retrier.Do(ctx, func(ctx context.Context) error {
		rows, err := repository.uow.db().Query(ctx, query, authorID)
		if err != nil {
			return dberr.Wrap(err, "list books by author")
		}
		defer rows.Close()

		collected := []*Book{}
		for rows.Next() {
			book := &Book{Categories: []*Category{}}
			if err := rows.Scan(&book.ID, &book.Title, &book.AuthorID, &book.ImagePath); err != nil {
				return dberr.Wrap(err, "scan book row")
			}
			collected = append(collected, book)
		}
		if err := rows.Err(); err != nil {
			return dberr.Wrap(err, "iterate book rows")
		}
		books = collected
		return nil
	})
	return books, err
}

// Add inserts the book and fills in its generated ID.
func (repository *pgxBookRepository) Add(ctx context.Context, book *Book) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		schema.Book.Table, schema.Book.Title, schema.Book.AuthorID, schema.Book.ID)

	return repository.uow.retrier.Do(ctx, func(ctx context.Context) error {
		if err := repository.uow.db().QueryRow(ctx, query, book.Title, book.AuthorID).Scan(&book.ID); err != nil {
			return dberr.Wrap(err, "insert book")
		}
		return nil
	})
}

// Update persists the book's title and author.
func (repository *pgxBookRepository) Update(ctx context.Context, book *Book) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.Book.Table, schema.Book.Title, schema.Book.AuthorID, schema.Book.ID)

	return repository.uow.retrier.Do(ctx, func(ctx context.Context) error {
		tag, err := repository.uow.db().Exec(ctx, query, book.ID, book.Title, book.AuthorID)
		if err != nil {
			return dberr.Wrap(err, "update book")
		}
		if tag.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}
		return nil
	})
}

// Delete removes the book row. Junction rows must be deleted first.
func (repository *pgxBookRepository) Delete(ctx context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.Book.Table, schema.Book.ID)

	return repository.uow.retrier.Do(ctx, func(ctx context.Context) error {
		tag, err := repository.uow.db().Exec(ctx, query, id)
		if err != nil {
			return dberr.Wrap(err, "delete book")
		}
		if tag.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}
		return nil
	})
}

// UpdateImagePath stores the relative path of the book's cover image.
func (repository *pgxBookRepository) UpdateImagePath(ctx context.Context, id int, path string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.Book.Table, schema.Book.ImagePath, schema.Book.ID)

	return repository.uow.retrier.Do(ctx, func(ctx context.Context) error {
		tag, err := repository.uow.db().Exec(ctx, query, id, path)
		if err != nil {
			return dberr.Wrap(err, "update book image path")
		}
		if tag.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}
		return nil
	})
}

// foldBookRows collapses the join result set into distinct books in
// first-seen order, attaching the author once and appending each category.
func foldBookRows(rows pgx.Rows) ([]*Book, error) {
	byID := make(map[int]*Book)
	ordered := []*Book{}

	for rows.Next() {
		var (
			bookID       int
			title        string
			authorID     int
			imagePath    *string
			joinedAuthID int
			authorName   string
			categoryID   *int
			categoryName *string
		)
		if err := rows.Scan(&bookID, &title, &authorID, &imagePath,
			&joinedAuthID, &authorName, &categoryID, &categoryName); err != nil {
			return nil, dberr.Wrap(err, "scan book row")
		}

		book, seen := byID[bookID]
		if !seen {
			book = &Book{
				ID:        bookID,
				Title:     title,
				AuthorID:  authorID,
				ImagePath: imagePath,
				Author: &Author{
					ID:    joinedAuthID,
					Name:  authorName,
					Books: []*Book{},
				},
				Categories: []*Category{},
			}
			byID[bookID] = book
			ordered = append(ordered, book)
		}

		if categoryID != nil {
			book.Categories = append(book.Categories, &Category{
				ID:    *categoryID,
				Name:  *categoryName,
				Books: []*Book{},
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate book rows")
	}
	return ordered, nil
}
