// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/taibuivan/libris/internal/platform/apperr"
	"github.com/taibuivan/libris/internal/platform/constants"
	requestutil "github.com/taibuivan/libris/internal/platform/request"
	"github.com/taibuivan/libris/internal/platform/respond"
)

/*
GET /books.

Response:
  - 200: All books with their author and categories
*/
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.books.GetAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Books retrieved successfully.", books)
}

/*
GET /books/{id}.

Response:
  - 200: The book with its author and categories
  - 400: Invalid id
  - 404: Unknown id
*/
func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.books.GetByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if book == nil {
		respond.Error(writer, request, apperr.NotFound(fmt.Sprintf("Book with ID %d not found.", id)))
		return
	}

	respond.OK(writer, "Book retrieved successfully.", book)
}

/*
POST /books.

Request:
  - Body: {"title": string, "authorId": int, "categoryIds": [int]} —
    exactly this key set

Response:
  - 201: The created book, hydrated, with a Location header
  - 400: Malformed body, validation failure, or a missing author/category
*/
func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input BookInput
	if err := requestutil.DecodeStrict(request, &input, bookFields...); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.books.Add(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, fmt.Sprintf("/books/%d", book.ID), "Book created successfully.", book)
}

/*
PUT /books/{id}.

Replaces the book's title, author, and complete category set.

Response:
  - 200: The updated book, hydrated
  - 400: Invalid id, malformed body, validation failure, unknown book, or a
    missing author/category
*/
func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input BookInput
	if err := requestutil.DecodeStrict(request, &input, bookFields...); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.books.Update(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Book updated successfully.", book)
}

/*
DELETE /books/{id}.

Removes the book and its category links.

Response:
  - 200: Deleted
  - 400: Invalid id
  - 404: Unknown id
*/
func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.books.GetByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if book == nil {
		respond.Error(writer, request, apperr.NotFound(fmt.Sprintf("Book with ID %d not found.", id)))
		return
	}

	if err := handler.books.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Book deleted successfully.", nil)
}

/*
POST /books/{id}/uploadImage.

Accepts a multipart form with a single image file of at most 2 MB and stores
it as the book's cover.

Response:
  - 200: {"FilePath": string} — the stored image's relative path
  - 400: Invalid id, no file, oversized file, or non-image content
  - 404: Unknown book
*/
func (handler *Handler) uploadBookImage(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.books.GetByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if book == nil {
		respond.Error(writer, request, apperr.NotFound(fmt.Sprintf("Book with ID %d not found.", id)))
		return
	}

	fileHeader, err := firstUploadedFile(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if fileHeader.Size > constants.MaxImageUploadBytes {
		respond.Error(writer, request, apperr.BadRequest("File size exceeds 2 MB"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer file.Close()

	path, err := handler.books.UploadImage(request.Context(), id, file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, struct {
		FilePath string `json:"FilePath"`
	}{FilePath: path})
}

// firstUploadedFile returns the first file part of the multipart form, no
// matter which field name it was sent under.
func firstUploadedFile(request *http.Request) (*multipart.FileHeader, error) {
	if err := request.ParseMultipartForm(constants.MaxImageUploadBytes); err != nil {
		return nil, apperr.BadRequest("No file uploaded")
	}
	for _, headers := range request.MultipartForm.File {
		if len(headers) > 0 {
			return headers[0], nil
		}
	}
	return nil, apperr.BadRequest("No file uploaded")
}
