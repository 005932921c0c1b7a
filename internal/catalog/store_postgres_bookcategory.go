// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"

	"github.com/taibuivan/libris/internal/platform/database/schema"
	"github.com/taibuivan/libris/internal/platform/dberr"
)

// # Book-Category Junction Repository Implementation

// pgxBookCategoryRepository implements [BookCategoryRepository] on the unit
// of work's connection.
type pgxBookCategoryRepository struct {
	uow *pgxUnitOfWork
}

// GetByBookID returns the junction rows of one book in category order.
func (repository *pgxBookCategoryRepository) GetByBookID(ctx context.Context, bookID int) ([]*BookCategory, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s`,
		schema.BookCategory.BookID, schema.BookCategory.CategoryID,
		schema.BookCategory.Table, schema.BookCategory.BookID,
		schema.BookCategory.CategoryID,
	)

	var links []*BookCategory
	err := repository.uow.retrier.Do(ctx, func(ctx context.Context) error {
		rows, err := repository.uow.db().Query(ctx, query, bookID)
		if err != nil {
			return dberr.Wrap(err, "list book categories")
		}
		defer rows.Close()

		collected := []*BookCategory{}
		for rows.Next() {
			link := &BookCategory{}
			if err := rows.Scan(&link.BookID, &link.CategoryID); err != nil {
				return dberr.Wrap(err, "scan book category row")
			}
			collected = append(collected, link)
		}
		if err := rows.Err(); err != nil {
			return dberr.Wrap(err, "iterate book category rows")
		}
		links = collected
		return nil
	})
	return links, err
}

// Add inserts a single junction row. Inserting a pair that already exists
// violates the composite primary key and fails permanently.
func (repository *pgxBookCategoryRepository) Add(ctx context.Context, link *BookCategory) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.BookCategory.Table, schema.BookCategory.BookID, schema.BookCategory.CategoryID)

	return repository.uow.retrier.Do(ctx, func(ctx context.Context) error {
		if _, err := repository.uow.db().Exec(ctx, query, link.BookID, link.CategoryID); err != nil {
			return dberr.Wrap(err, "insert book category")
		}
		return nil
	})
}

// DeleteByBookID removes every junction row of one book. Zero rows is not
// an error: the update path calls this unconditionally before relinking.
func (repository *pgxBookCategoryRepository) DeleteByBookID(ctx context.Context, bookID int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.BookCategory.Table, schema.BookCategory.BookID)

	return repository.uow.retrier.Do(ctx, func(ctx context.Context) error {
		if _, err := repository.uow.db().Exec(ctx, query, bookID); err != nil {
			return dberr.Wrap(err, "delete book categories by book")
		}
		return nil
	})
}

// DeleteByCategoryID removes every junction row of one category, leaving the
// affected books in place with one fewer tag.
func (repository *pgxBookCategoryRepository) DeleteByCategoryID(ctx context.Context, categoryID int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.BookCategory.Table, schema.BookCategory.CategoryID)

	return repository.uow.retrier.Do(ctx, func(ctx context.Context) error {
		if _, err := repository.uow.db().Exec(ctx, query, categoryID); err != nil {
			return dberr.Wrap(err, "delete book categories by category")
		}
		return nil
	})
}
