// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "github.com/taibuivan/libris/internal/platform/validate"

// # Author Entity

// Author is a writer in the catalogue.
//
// Books is always serialized, even when empty, so clients can iterate it
// without nil checks.
type Author struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Books []*Book `json:"books"`
}

// # Author Input

// AuthorInput is the write payload for creating or updating an author.
type AuthorInput struct {
	Name string `json:"name"`
}

// Validate checks the input against the author business rules.
// It returns a "Validation failed." error carrying per-field details.
func (input *AuthorInput) Validate() error {
	v := &validate.Validator{}
	v.Required("Name", input.Name, "Author name is required.").
		Length("Name", input.Name, 1, 255, "Author name must be between 1 and 255 characters.").
		Matches("Name", input.Name, namePattern, "Author name must contain only alphabetic characters and single spaces between words.")
	return v.Err()
}
