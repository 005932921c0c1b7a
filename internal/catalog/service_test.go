// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/libris/internal/catalog"
	"github.com/taibuivan/libris/internal/platform/apperr"
	"github.com/taibuivan/libris/internal/platform/filestore"
)

// # Author Service Tests

/*
TestAuthorService_AddAndGet creates an author and reads it back through the
service, verifying the empty books collection.
*/
func TestAuthorService_AddAndGet(t *testing.T) {
	store := newFakeStore()
	service := catalog.NewAuthorService(store)

	created, err := service.Add(context.Background(), catalog.AuthorInput{Name: "Ada Lovelace"})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", created.Name)
	assert.NotZero(t, created.ID)
	assert.Empty(t, created.Books)

	fetched, err := service.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Ada Lovelace", fetched.Name)
	assert.NotNil(t, fetched.Books)
}

/*
TestAuthorService_Add_ValidationFailure rejects bad names with the per-field
details and leaves the store untouched.
*/
func TestAuthorService_Add_ValidationFailure(t *testing.T) {
	store := newFakeStore()
	service := catalog.NewAuthorService(store)

	tests := []struct {
		name        string
		input       string
		wantMessage string
	}{
		{"empty", "", "Author name is required."},
		{"digits", "Author 42", "Author name must contain only alphabetic characters and single spaces between words."},
		{"double_space", "Ada  Lovelace", "Author name must contain only alphabetic characters and single spaces between words."},
		{"padded", "  Ada Lovelace  ", "Author name must contain only alphabetic characters and single spaces between words."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Add(context.Background(), catalog.AuthorInput{Name: tt.input})
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "Validation failed.", ae.Message)
			require.NotEmpty(t, ae.Errors)
			assert.Equal(t, "Name", ae.Errors[0].PropertyName)
			assert.Equal(t, tt.wantMessage, ae.Errors[0].ErrorMessage)
		})
	}

	authors, err := service.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, authors)
}

/*
TestAuthorService_Update_Missing reports an unknown author as nil so the
handler can shape the 404.
*/
func TestAuthorService_Update_Missing(t *testing.T) {
	store := newFakeStore()
	service := catalog.NewAuthorService(store)

	author, err := service.Update(context.Background(), 42, catalog.AuthorInput{Name: "Ada"})
	require.NoError(t, err)
	assert.Nil(t, author)
}

/*
TestAuthorService_Delete_Cascade removes the author's books and their
category links in the same operation, leaving the categories themselves.
*/
func TestAuthorService_Delete_Cascade(t *testing.T) {
	store := newFakeStore()
	authorID := store.seedAuthor("Frank Herbert")
	fiction := store.seedCategory("Fiction")
	store.seedBook("Dune", authorID, fiction)
	store.seedBook("Dune Messiah", authorID, fiction)

	other := store.seedAuthor("Ursula Le Guin")
	keptBook := store.seedBook("The Dispossessed", other, fiction)

	authorService := catalog.NewAuthorService(store)
	bookService := catalog.NewBookService(store, nil)
	categoryService := catalog.NewCategoryService(store)

	require.NoError(t, authorService.Delete(context.Background(), authorID))

	gone, err := authorService.GetByID(context.Background(), authorID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	books, err := bookService.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, keptBook, books[0].ID)

	// The category survives and only references the remaining book.
	category, err := categoryService.GetByID(context.Background(), fiction)
	require.NoError(t, err)
	require.NotNil(t, category)
	require.Len(t, category.Books, 1)
	assert.Equal(t, keptBook, category.Books[0].ID)
}

/*
TestAuthorService_Delete_Idempotent treats deleting a missing author as a
no-op.
*/
func TestAuthorService_Delete_Idempotent(t *testing.T) {
	store := newFakeStore()
	service := catalog.NewAuthorService(store)

	assert.NoError(t, service.Delete(context.Background(), 99))
}

// # Category Service Tests

/*
TestCategoryService_Add_PaddedName rejects a padded name on the raw value
instead of normalizing it.
*/
func TestCategoryService_Add_PaddedName(t *testing.T) {
	store := newFakeStore()
	service := catalog.NewCategoryService(store)

	_, err := service.Add(context.Background(), catalog.CategoryInput{Name: "  Fiction  "})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "Validation failed.", ae.Message)
	require.NotEmpty(t, ae.Errors)
	assert.Equal(t, "Category name must contain only alphabetic characters and single spaces between words.", ae.Errors[0].ErrorMessage)

	categories, err := service.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, categories)
}

/*
TestCategoryService_Add_Duplicate enforces name uniqueness with the
documented message.
*/
func TestCategoryService_Add_Duplicate(t *testing.T) {
	store := newFakeStore()
	service := catalog.NewCategoryService(store)

	_, err := service.Add(context.Background(), catalog.CategoryInput{Name: "Fiction"})
	require.NoError(t, err)

	_, err = service.Add(context.Background(), catalog.CategoryInput{Name: "Fiction"})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "Category already exists.", ae.Message)
	assert.Equal(t, 400, ae.HTTPStatus)
}

/*
TestCategoryService_Update_RenameToExisting rejects renaming a category onto
another category's name, but allows a self-rename.
*/
func TestCategoryService_Update_RenameToExisting(t *testing.T) {
	store := newFakeStore()
	fiction := store.seedCategory("Fiction")
	store.seedCategory("History")
	service := catalog.NewCategoryService(store)

	_, err := service.Update(context.Background(), fiction, catalog.CategoryInput{Name: "History"})
	require.Error(t, err)
	assert.Equal(t, "Category already exists.", apperr.As(err).Message)

	// Keeping its own name is fine.
	updated, err := service.Update(context.Background(), fiction, catalog.CategoryInput{Name: "Fiction"})
	require.NoError(t, err)
	assert.Equal(t, "Fiction", updated.Name)
}

/*
TestCategoryService_Update_Missing reports an unknown category with the
service-level message.
*/
func TestCategoryService_Update_Missing(t *testing.T) {
	store := newFakeStore()
	service := catalog.NewCategoryService(store)

	_, err := service.Update(context.Background(), 42, catalog.CategoryInput{Name: "Fiction"})
	require.Error(t, err)
	assert.Equal(t, "Category not found.", apperr.As(err).Message)
}

/*
TestCategoryService_Delete_DetachesBooks removes the category and its links;
the books that carried it survive with the category gone from their set.
*/
func TestCategoryService_Delete_DetachesBooks(t *testing.T) {
	store := newFakeStore()
	authorID := store.seedAuthor("Frank Herbert")
	fiction := store.seedCategory("Fiction")
	bookID := store.seedBook("Dune", authorID, fiction)

	categoryService := catalog.NewCategoryService(store)
	bookService := catalog.NewBookService(store, nil)

	require.NoError(t, categoryService.Delete(context.Background(), fiction))

	book, err := bookService.GetByID(context.Background(), bookID)
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Empty(t, book.Categories)
}

// # Book Service Tests

/*
TestBookService_Add_Success creates a book with its category links and
returns the hydrated entity.
*/
func TestBookService_Add_Success(t *testing.T) {
	store := newFakeStore()
	authorID := store.seedAuthor("Frank Herbert")
	fiction := store.seedCategory("Fiction")
	scifi := store.seedCategory("Science")
	service := catalog.NewBookService(store, nil)

	book, err := service.Add(context.Background(), catalog.BookInput{
		Title:       "Dune",
		AuthorID:    authorID,
		CategoryIDs: []int{fiction, scifi},
	})
	require.NoError(t, err)

	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, authorID, book.AuthorID)
	require.NotNil(t, book.Author)
	assert.Equal(t, "Frank Herbert", book.Author.Name)
	require.Len(t, book.Categories, 2)
	assert.Equal(t, fiction, book.Categories[0].ID)
	assert.Equal(t, scifi, book.Categories[1].ID)
}

/*
TestBookService_Add_TitleValidation rejects titles with padding, consecutive
spaces, or semicolons on the raw value, before any trimming happens.
*/
func TestBookService_Add_TitleValidation(t *testing.T) {
	store := newFakeStore()
	authorID := store.seedAuthor("Frank Herbert")
	fiction := store.seedCategory("Fiction")
	service := catalog.NewBookService(store, nil)

	tests := []struct {
		name        string
		title       string
		wantMessage string
	}{
		{"padded", "  Dune  ", "Book title must be a valid string without leading, trailing, or consecutive spaces and must not contain semicolons."},
		{"trailing_space", "Dune ", "Book title must be a valid string without leading, trailing, or consecutive spaces and must not contain semicolons."},
		{"semicolon", "Dune; Messiah", "Book title must be a valid string without leading, trailing, or consecutive spaces and must not contain semicolons."},
		{"double_space", "Dune  Messiah", "Book title must not contain consecutive spaces."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Add(context.Background(), catalog.BookInput{
				Title:       tt.title,
				AuthorID:    authorID,
				CategoryIDs: []int{fiction},
			})
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "Validation failed.", ae.Message)
			require.NotEmpty(t, ae.Errors)
			assert.Equal(t, "Title", ae.Errors[0].PropertyName)
			assert.Equal(t, tt.wantMessage, ae.Errors[0].ErrorMessage)
		})
	}

	books, err := service.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
}

/*
TestBookService_Add_AuthorMissing rejects the write before anything is
persisted.
*/
func TestBookService_Add_AuthorMissing(t *testing.T) {
	store := newFakeStore()
	fiction := store.seedCategory("Fiction")
	service := catalog.NewBookService(store, nil)

	_, err := service.Add(context.Background(), catalog.BookInput{
		Title:       "Dune",
		AuthorID:    42,
		CategoryIDs: []int{fiction},
	})
	require.Error(t, err)
	assert.Equal(t, "Author not found.", apperr.As(err).Message)

	books, err := service.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
}

/*
TestBookService_Add_CategoryMissing names the first offending category id
and persists nothing.
*/
func TestBookService_Add_CategoryMissing(t *testing.T) {
	store := newFakeStore()
	authorID := store.seedAuthor("Frank Herbert")
	fiction := store.seedCategory("Fiction")
	service := catalog.NewBookService(store, nil)

	_, err := service.Add(context.Background(), catalog.BookInput{
		Title:       "Dune",
		AuthorID:    authorID,
		CategoryIDs: []int{fiction, 99},
	})
	require.Error(t, err)
	assert.Equal(t, "Category with ID 99 not found.", apperr.As(err).Message)

	books, err := service.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
}

/*
TestBookService_Update_ReplacesCategories fully replaces the link set in one
transaction.
*/
func TestBookService_Update_ReplacesCategories(t *testing.T) {
	store := newFakeStore()
	authorID := store.seedAuthor("Frank Herbert")
	fiction := store.seedCategory("Fiction")
	scifi := store.seedCategory("Science")
	history := store.seedCategory("History")
	bookID := store.seedBook("Dune", authorID, fiction, scifi)
	service := catalog.NewBookService(store, nil)

	updated, err := service.Update(context.Background(), bookID, catalog.BookInput{
		Title:       "Dune",
		AuthorID:    authorID,
		CategoryIDs: []int{history},
	})
	require.NoError(t, err)

	require.Len(t, updated.Categories, 1)
	assert.Equal(t, history, updated.Categories[0].ID)

	// A fresh read agrees: the old links are gone.
	fetched, err := service.GetByID(context.Background(), bookID)
	require.NoError(t, err)
	require.Len(t, fetched.Categories, 1)
	assert.Equal(t, history, fetched.Categories[0].ID)
}

/*
TestBookService_Update_Missing rejects updates to unknown books with the
service-level message.
*/
func TestBookService_Update_Missing(t *testing.T) {
	store := newFakeStore()
	authorID := store.seedAuthor("Frank Herbert")
	fiction := store.seedCategory("Fiction")
	service := catalog.NewBookService(store, nil)

	_, err := service.Update(context.Background(), 42, catalog.BookInput{
		Title:       "Dune",
		AuthorID:    authorID,
		CategoryIDs: []int{fiction},
	})
	require.Error(t, err)
	assert.Equal(t, "Book not found.", apperr.As(err).Message)
}

/*
TestBookService_UploadImage stores the file and records its relative path on
the book row.
*/
func TestBookService_UploadImage(t *testing.T) {
	store := newFakeStore()
	authorID := store.seedAuthor("Frank Herbert")
	fiction := store.seedCategory("Fiction")
	bookID := store.seedBook("Dune", authorID, fiction)

	files, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	service := catalog.NewBookService(store, files)

	// Minimal PNG magic so content sniffing accepts the payload.
	payload := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

	path, err := service.UploadImage(context.Background(), bookID, bytes.NewReader(payload))
	require.NoError(t, err)
	assert.Contains(t, path, "books/")
	assert.Contains(t, path, ".png")

	book, err := service.GetByID(context.Background(), bookID)
	require.NoError(t, err)
	require.NotNil(t, book.ImagePath)
	assert.Equal(t, path, *book.ImagePath)
}

/*
TestBookService_UploadImage_RejectsNonImage refuses payloads that are not a
recognized image format and records nothing.
*/
func TestBookService_UploadImage_RejectsNonImage(t *testing.T) {
	store := newFakeStore()
	authorID := store.seedAuthor("Frank Herbert")
	bookID := store.seedBook("Dune", authorID)

	files, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	service := catalog.NewBookService(store, files)

	_, err = service.UploadImage(context.Background(), bookID, bytes.NewReader([]byte("just some text")))
	require.Error(t, err)
	assert.Equal(t, "Uploaded file is not a valid image.", apperr.As(err).Message)

	book, err := service.GetByID(context.Background(), bookID)
	require.NoError(t, err)
	assert.Nil(t, book.ImagePath)
}
