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

/*
GET /categories.

Response:
  - 200: All categories with their books
*/
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.categories.GetAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Categories retrieved successfully.", categories)
}

/*
GET /categories/{id}.

Response:
  - 200: The category with its books
  - 400: Invalid id
  - 404: Unknown id
*/
func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.categories.GetByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if category == nil {
		respond.Error(writer, request, apperr.NotFound(fmt.Sprintf("Category with ID %d not found.", id)))
		return
	}

	respond.OK(writer, "Category retrieved successfully.", category)
}

/*
POST /categories.

Request:
  - Body: {"name": string} — exactly this key set

Response:
  - 201: The created category, with a Location header
  - 400: Malformed body, validation failure, or duplicate name
*/
func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input CategoryInput
	if err := requestutil.DecodeStrict(request, &input, categoryFields...); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.categories.Add(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, fmt.Sprintf("/categories/%d", category.ID), "Category created successfully.", category)
}

/*
PUT /categories/{id}.

Response:
  - 200: The updated category
  - 400: Invalid id, malformed body, validation failure, unknown category,
    or duplicate name
*/
func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CategoryInput
	if err := requestutil.DecodeStrict(request, &input, categoryFields...); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.categories.Update(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Category updated successfully.", category)
}

/*
DELETE /categories/{id}.

Removes the category and detaches it from all books; the books themselves
survive.

Response:
  - 200: Deleted
  - 400: Invalid id
  - 404: Unknown id
*/
func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.categories.GetByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if category == nil {
		respond.Error(writer, request, apperr.NotFound(fmt.Sprintf("Category with ID %d not found.", id)))
		return
	}

	if err := handler.categories.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Category deleted successfully.", nil)
}
