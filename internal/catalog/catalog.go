// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog implements the library catalogue domain: authors, books,
categories, and the book-category junction that ties them together.

# Architecture

The package is layered top-down:

  - Handler (http_*.go): translates REST requests into service calls.
  - Services (service_*.go): business rules, referential checks, and the
    transactional write paths.
  - Store / UnitOfWork (store.go, store_postgres*.go): data access behind
    narrow repository interfaces, with all writes funnelled through a single
    transaction per request.

All three entity families live in one package because they form a single
aggregate: a book cannot be created, updated, or deleted without touching
its author and category links in the same transaction.
*/
package catalog

import "regexp"

// namePattern accepts alphabetic words separated by single spaces.
// Leading/trailing spaces and consecutive spaces are rejected.
var namePattern = regexp.MustCompile(`^[a-zA-Z]+( [a-zA-Z]+)*$`)

// titlePattern accepts word characters and common punctuation. The first and
// last characters must not be whitespace, and semicolons are excluded from
// the character set entirely.
var titlePattern = regexp.MustCompile(`^[\w.,'!@#$%^&*()+=-]([\w .,'!@#$%^&*()+=-]*[\w.,'!@#$%^&*()+=-])?$`)

// Wire field names accepted by the write endpoints. Bodies whose key set
// differs from these (case-insensitively) are rejected before validation.
var (
	authorFields   = []string{"name"}
	categoryFields = []string{"name"}
	bookFields     = []string{"title", "authorId", "categoryIds"}
)
