// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"fmt"
	"net/http"

	"github.com/taibuivan/libris/internal/platform/apperr"
	requestutil "github.com/taibuivan/libris/internal/platform/request"
	"github.com/taibuivan/libris/internal/platform/respond"
)

// authorID parses the {id} path parameter. The author endpoints carry a
// more verbose invalid-id message than the rest of the API; this is part of
// the documented contract.
func authorID(request *http.Request) (int, error) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		return 0, apperr.BadRequest("Invalid ID format, ID should be a number.")
	}
	return id, nil
}

/*
GET /authors.

Response:
  - 200: All authors with their books
*/
func (handler *Handler) listAuthors(writer http.ResponseWriter, request *http.Request) {
	authors, err := handler.authors.GetAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Authors retrieved successfully.", authors)
}

/*
GET /authors/{id}.

Response:
  - 200: The author with its books
  - 400: Invalid id
  - 404: Unknown id
*/
func (handler *Handler) getAuthor(writer http.ResponseWriter, request *http.Request) {
	id, err := authorID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	author, err := handler.authors.GetByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if author == nil {
		respond.Error(writer, request, apperr.NotFound(fmt.Sprintf("Author with ID %d not found.", id)))
		return
	}

	respond.OK(writer, "Author retrieved successfully.", author)
}

/*
POST /authors.

Request:
  - Body: {"name": string} — exactly this key set

Response:
  - 201: The created author, with a Location header
  - 400: Malformed body, unexpected keys, or validation failure
*/
func (handler *Handler) createAuthor(writer http.ResponseWriter, request *http.Request) {
	var input AuthorInput
	if err := requestutil.DecodeStrict(request, &input, authorFields...); err != nil {
		respond.Error(writer, request, err)
		return
	}

	author, err := handler.authors.Add(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, fmt.Sprintf("/authors/%d", author.ID), "Author created successfully.", author)
}

/*
PUT /authors/{id}.

Response:
  - 200: The updated author
  - 400: Invalid id, malformed body, or validation failure
  - 404: Unknown id
*/
func (handler *Handler) updateAuthor(writer http.ResponseWriter, request *http.Request) {
	id, err := authorID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input AuthorInput
	if err := requestutil.DecodeStrict(request, &input, authorFields...); err != nil {
		respond.Error(writer, request, err)
		return
	}

	author, err := handler.authors.Update(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if author == nil {
		respond.Error(writer, request, apperr.NotFound(fmt.Sprintf("Author with ID %d not found.", id)))
		return
	}

	respond.OK(writer, "Author updated successfully.", author)
}

/*
DELETE /authors/{id}.

Removes the author, all of their books, and those books' category links.

Response:
  - 200: Deleted
  - 400: Invalid id
  - 404: Unknown id
*/
func (handler *Handler) deleteAuthor(writer http.ResponseWriter, request *http.Request) {
	id, err := authorID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	author, err := handler.authors.GetByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if author == nil {
		respond.Error(writer, request, apperr.NotFound(fmt.Sprintf("Author with ID %d not found.", id)))
		return
	}

	if err := handler.authors.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Author deleted successfully.", nil)
}
