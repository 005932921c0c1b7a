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

// # Author Repository Implementation

// pgxAuthorRepository implements [AuthorRepository] on the unit of work's
// connection.
type pgxAuthorRepository struct {
	uow *pgxUnitOfWork
}

// authorSelect joins authors to their books; the fold in [foldAuthorRows]
// relies on the ORDER BY to keep each author's rows contiguous.
func authorSelect(where string) string {
	return fmt.Sprintf(`
		SELECT a.%s, a.%s, b.%s, b.%s, b.%s, b.%s
		FROM %s a
		LEFT JOIN %s b ON b.%s = a.%s
		%s
		ORDER BY a.%s, b.%s`,
		schema.Author.ID, schema.Author.Name,
		schema.Book.ID, schema.Book.Title, schema.Book.AuthorID, schema.Book.ImagePath,
		schema.Author.Table,
		schema.Book.Table, schema.Book.AuthorID, schema.Author.ID,
		where,
		schema.Author.ID, schema.Book.ID,
	)
}

/*
GetAll returns every author with its books hydrated.

The one-to-many result set is folded in first-seen order: one Author per
distinct id, with its joined book rows appended as they stream in.
*/
func (repository *pgxAuthorRepository) GetAll(ctx context.Context) ([]*Author, error) {
	query := authorSelect("")

	var authors []*Author
	err := repository.uow.retrier.Do(ctx, func(ctx context.Context) error {
		rows, err := repository.uow.db().Query(ctx, query)
		if err != nil {
			return dberr.Wrap(err, "list authors")
		}
		defer rows.Close()

		authors, err = foldAuthorRows(rows)
		return err
	})
	return authors, err
}

// GetByID returns one author with its books hydrated, or dberr.ErrNotFound.
func (repository *pgxAuthorRepository) GetByID(ctx context.Context, id int) (*Author, error) {
	query := authorSelect(fmt.Sprintf("WHERE a.%s = $1", schema.Author.ID))

	var author *Author
	err := repository.uow.retrier.Do(ctx, func(ctx context.Context) error {
		rows, err := repository.uow.db().Query(ctx, query, id)
		if err != nil {
			return dberr.Wrap(err, "get author")
		}
		defer rows.Close()

		authors, err := foldAuthorRows(rows)
		if err != nil {
			return err
		}
		if len(authors) == 0 {
			return dberr.ErrNotFound
		}
		author = authors[0]
		return nil
	})
	return author, err
}

// Add inserts the author and fills in its generated ID.
func (repository *pgxAuthorRepository) Add(ctx context.Context, author *Author) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) RETURNING %s`,
		schema.Author.Table, schema.Author.Name, schema.Author.ID)

	err := repository.uow.retrier.Do(ctx, func(ctx context.Context) error {
		if err := repository.uow.db().QueryRow(ctx, query, author.Name).Scan(&author.ID); err != nil {
			return dberr.Wrap(err, "insert author")
		}
		return nil
	})
	if err != nil {
		return err
	}

	if author.Books == nil {
		author.Books = []*Book{}
	}
	return nil
}

// Update persists the author's name.
func (repository *pgxAuthorRepository) Update(ctx context.Context, author *Author) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.Author.Table, schema.Author.Name, schema.Author.ID)

	return repository.uow.retrier.Do(ctx, func(ctx context.Context) error {
		tag, err := repository.uow.db().Exec(ctx, query, author.ID, author.Name)
		if err != nil {
			return dberr.Wrap(err, "update author")
		}
		if tag.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}
		return nil
	})
}

// Delete removes the author row. Books referencing it must go first or the
// foreign key rejects the delete.
func (repository *pgxAuthorRepository) Delete(ctx context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.Author.Table, schema.Author.ID)

	return repository.uow.retrier.Do(ctx, func(ctx context.Context) error {
		tag, err := repository.uow.db().Exec(ctx, query, id)
		if err != nil {
			return dberr.Wrap(err, "delete author")
		}
		if tag.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}
		return nil
	})
}

// foldAuthorRows collapses the LEFT JOIN result set into distinct authors in
// first-seen order. A NULL book id means the author has no books.
func foldAuthorRows(rows pgx.Rows) ([]*Author, error) {
	byID := make(map[int]*Author)
	ordered := []*Author{}

	for rows.Next() {
		var (
			authorID     int
			authorName   string
			bookID       *int
			bookTitle    *string
			bookAuthorID *int
			imagePath    *string
		)
		if err := rows.Scan(&authorID, &authorName, &bookID, &bookTitle, &bookAuthorID, &imagePath); err != nil {
			return nil, dberr.Wrap(err, "scan author row")
		}

		author, seen := byID[authorID]
		if !seen {
			author = &Author{ID: authorID, Name: authorName, Books: []*Book{}}
			byID[authorID] = author
			ordered = append(ordered, author)
		}

		if bookID != nil {
			author.Books = append(author.Books, &Book{
				ID:         *bookID,
				Title:      *bookTitle,
				AuthorID:   *bookAuthorID,
				ImagePath:  imagePath,
				Categories: []*Category{},
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate author rows")
	}
	return ordered, nil
}
