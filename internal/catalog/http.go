// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"github.com/go-chi/chi/v5"
)

// # HTTP Layer

// Handler implements the HTTP layer for the catalogue. It translates web
// requests into domain service calls; the concrete endpoints live in
// http_author.go, http_book.go, and http_category.go.
type Handler struct {
	authors    *AuthorService
	books      *BookService
	categories *CategoryService
}

// NewHandler constructs a new catalogue [Handler] with its service
// dependencies.
func NewHandler(authors *AuthorService, books *BookService, categories *CategoryService) *Handler {
	return &Handler{authors: authors, books: books, categories: categories}
}

// Routes returns a [chi.Router] configured with all catalogue endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// # Author Endpoints
	router.Route("/authors", func(r chi.Router) {
		r.Get("/", handler.listAuthors)
		r.Post("/", handler.createAuthor)
		r.Get("/{id}", handler.getAuthor)
		r.Put("/{id}", handler.updateAuthor)
		r.Delete("/{id}", handler.deleteAuthor)
	})

	// # Book Endpoints
	router.Route("/books", func(r chi.Router) {
		r.Get("/", handler.listBooks)
		r.Post("/", handler.createBook)
		r.Get("/{id}", handler.getBook)
		r.Put("/{id}", handler.updateBook)
		r.Delete("/{id}", handler.deleteBook)
		r.Post("/{id}/uploadImage", handler.uploadBookImage)
	})

	// # Category Endpoints
	router.Route("/categories", func(r chi.Router) {
		r.Get("/", handler.listCategories)
		r.Post("/", handler.createCategory)
		r.Get("/{id}", handler.getCategory)
		r.Put("/{id}", handler.updateCategory)
		r.Delete("/{id}", handler.deleteCategory)
	})

	return router
}
