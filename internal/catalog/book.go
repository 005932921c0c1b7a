// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"strings"

	"github.com/taibuivan/libris/internal/platform/validate"
)

// # Book Entity

// Book is a catalogue entry written by exactly one author and tagged with
// one or more categories.
type Book struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	AuthorID  int     `json:"authorId"`
	ImagePath *string `json:"imagePath,omitempty"`

	// Author is hydrated on book reads; it is nil when the book itself is
	// nested under an author.
	Author *Author `json:"author,omitempty"`

	// Categories is always serialized, even when empty.
	Categories []*Category `json:"categories"`
}

// BookCategory is one row of the book_categories junction table.
type BookCategory struct {
	BookID     int `json:"bookId"`
	CategoryID int `json:"categoryId"`
}

// # Book Input

// BookInput is the write payload for creating or updating a book.
//
// CategoryIDs fully replaces the book's category links on update.
type BookInput struct {
	Title       string `json:"title"`
	AuthorID    int    `json:"authorId"`
	CategoryIDs []int  `json:"categoryIds"`
}

// Validate checks the raw input against the book business rules; callers
// trim the title only after validation passes. Referential checks
// (author/category existence) happen later, inside the write transaction.
func (input *BookInput) Validate() error {
	v := &validate.Validator{}
	v.Required("Title", input.Title, "Book title is required.").
		Length("Title", input.Title, 1, 255, "Book title must be between 1 and 255 characters.").
		Matches("Title", input.Title, titlePattern, "Book title must be a valid string without leading, trailing, or consecutive spaces and must not contain semicolons.").
		Custom("Title", strings.Contains(input.Title, "  "), "Book title must not contain consecutive spaces.").
		Positive("AuthorId", input.AuthorID, "Author ID is required.").
		NotEmptyIDs("CategoryIds", input.CategoryIDs, "At least one category ID is required.")
	return v.Err()
}
