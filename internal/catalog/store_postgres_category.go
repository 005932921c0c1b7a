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

// # Category Repository Implementation

// pgxCategoryRepository implements [CategoryRepository] on the unit of
// work's connection.
type pgxCategoryRepository struct {
	uow *pgxUnitOfWork
}

// categorySelect joins categories to their books through the junction table.
func categorySelect(where string) string {
	return fmt.Sprintf(`
		SELECT c.%s, c.%s, b.%s, b.%s, b.%s, b.%s
		FROM %s c
		LEFT JOIN %s bc ON bc.%s = c.%s
		LEFT JOIN %s b ON b.%s = bc.%s
		%s
		ORDER BY c.%s, b.%s`,
		schema.Category.ID, schema.Category.Name,
		schema.Book.ID, schema.Book.Title, schema.Book.AuthorID, schema.Book.ImagePath,
		schema.Category.Table,
		schema.BookCategory.Table, schema.BookCategory.CategoryID, schema.Category.ID,
		schema.Book.Table, schema.Book.ID, schema.BookCategory.BookID,
		where,
		schema.Category.ID, schema.Book.ID,
	)
}

// GetAll returns every category with its books hydrated, folded in
// first-seen order.
func (repository *pgxCategoryRepository) GetAll(ctx context.Context) ([]*Category, error) {
	query := categorySelect("")

	var categories []*Category
	err := repository.uow.retrier.Do(ctx, func(ctx context.Context) error {
		rows, err := repository.uow.db().Query(ctx, query)
		if err != nil {
			return dberr.Wrap(err, "list categories")
		}
		defer rows.Close()

		categories, err = foldCategoryRows(rows)
		return err
	})
	return categories, err
}

// GetByID returns one hydrated category, or dberr.ErrNotFound.
func (repository *pgxCategoryRepository) GetByID(ctx context.Context, id int) (*Category, error) {
	query := categorySelect(fmt.Sprintf("WHERE c.%s = $1", schema.Category.ID))

	var category *Category
	err := repository.uow.retrier.Do(ctx, func(ctx context.Context) error {
		rows, err := repository.uow.db().Query(ctx, query, id)
		if err != nil {
			return dberr.Wrap(err, "get category")
		}
		defer rows.Close()

		categories, err := foldCategoryRows(rows)
		if err != nil {
			return err
		}
		if len(categories) == 0 {
			return dberr.ErrNotFound
		}
		category = categories[0]
		return nil
	})
	return category, err
}

// GetByName returns the category with the exact given name, without
// hydration. The create path uses this for the uniqueness check.
func (repository *pgxCategoryRepository) GetByName(ctx context.Context, name string) (*Category, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.Category.ID, schema.Category.Name, schema.Category.Table, schema.Category.Name)

	var category *Category
	err := repository.uow.retrier.Do(ctx, func(ctx context.Context) error {
		found := &Category{Books: []*Book{}}
		if err := repository.uow.db().QueryRow(ctx, query, name).Scan(&found.ID, &found.Name); err != nil {
			return dberr.Wrap(err, "get category by name")
		}
		category = found
		return nil
	})
	return category, err
}

// Add inserts the category and fills in its generated ID.
func (repository *pgxCategoryRepository) Add(ctx context.Context, category *Category) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) RETURNING %s`,
		schema.Category.Table, schema.Category.Name, schema.Category.ID)

	err := repository.uow.retrier.Do(ctx, func(ctx context.Context) error {
		if err := repository.uow.db().QueryRow(ctx, query, category.Name).Scan(&category.ID); err != nil {
			return dberr.Wrap(err, "insert category")
		}
		return nil
	})
	if err != nil {
		return err
	}

	if category.Books == nil {
		category.Books = []*Book{}
	}
	return nil
}

// Update persists the category's name.
func (repository *pgxCategoryRepository) Update(ctx context.Context, category *Category) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.Category.Table, schema.Category.Name, schema.Category.ID)

	return repository.uow.retrier.Do(ctx, func(ctx context.Context) error {
		tag, err := repository.uow.db().Exec(ctx, query, category.ID, category.Name)
		if err != nil {
			return dberr.Wrap(err, "update category")
		}
		if tag.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}
		return nil
	})
}

// Delete removes the category row. Junction rows must be deleted first.
func (repository *pgxCategoryRepository) Delete(ctx context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.Category.Table, schema.Category.ID)

	return repository.uow.retrier.Do(ctx, func(ctx context.Context) error {
		tag, err := repository.uow.db().Exec(ctx, query, id)
		if err != nil {
			return dberr.Wrap(err, "delete category")
		}
		if tag.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}
		return nil
	})
}

// foldCategoryRows collapses the join result set into distinct categories in
// first-seen order. A NULL book id means the category has no books.
func foldCategoryRows(rows pgx.Rows) ([]*Category, error) {
	byID := make(map[int]*Category)
	ordered := []*Category{}

	for rows.Next() {
		var (
			categoryID   int
			categoryName string
			bookID       *int
			bookTitle    *string
			bookAuthorID *int
			imagePath    *string
		)
		if err := rows.Scan(&categoryID, &categoryName, &bookID, &bookTitle, &bookAuthorID, &imagePath); err != nil {
			return nil, dberr.Wrap(err, "scan category row")
		}

		category, seen := byID[categoryID]
		if !seen {
			category = &Category{ID: categoryID, Name: categoryName, Books: []*Book{}}
			byID[categoryID] = category
			ordered = append(ordered, category)
		}

		if bookID != nil {
			category.Books = append(category.Books, &Book{
				ID:         *bookID,
				Title:      *bookTitle,
				AuthorID:   *bookAuthorID,
				ImagePath:  imagePath,
				Categories: []*Category{},
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate category rows")
	}
	return ordered, nil
}
