// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "github.com/taibuivan/libris/internal/platform/validate"

// # Category Entity

// Category is a genre/topic label that books can be tagged with.
// Category names are unique across the catalogue.
type Category struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Books []*Book `json:"books"`
}

// # Category Input

// CategoryInput is the write payload for creating or updating a category.
type CategoryInput struct {
	Name string `json:"name"`
}

// Validate checks the input against the category business rules.
func (input *CategoryInput) Validate() error {
	v := &validate.Validator{}
	v.Required("Name", input.Name, "Category name is required.").
		Length("Name", input.Name, 1, 255, "Category name must be between 1 and 255 characters.").
		Matches("Name", input.Name, namePattern, "Category name must contain only alphabetic characters and single spaces between words.")
	return v.Err()
}
