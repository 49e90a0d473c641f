package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// statusFromServiceError maps a book service failure to its HTTP status code.
func statusFromServiceError(err error) int {
	switch {
	case errors.Is(err, ErrInvalidBookInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrBookNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBookAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// messageFromServiceError provides the client-facing wording of a failure.
// Unclassified store faults stay generic on the wire.
func messageFromServiceError(err error) string {
	switch {
	case errors.Is(err, ErrInvalidBookInput):
		return "Invalid title or ISBN number"
	case errors.Is(err, ErrBookNotFound):
		return "Book not found"
	case errors.Is(err, ErrBookAlreadyExists):
		return "Book already exists"
	case errors.Is(err, ErrBookUpdateFailed):
		return "Something went wrong while updating the book"
	case errors.Is(err, ErrBookDeleteFailed):
		return "Something went wrong while deleting the book"
	default:
		return "failed to process the request"
	}
}

func (api *APIHandler) sendServiceError(w http.ResponseWriter, requestID string, err error) {
	errResp := NewAPIError(requestID, statusFromServiceError(err), messageFromServiceError(err))
	if werr := WriteErrorResponse(w, errResp); werr != nil {
		api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(werr))
	}
}

// CreateBook godoc
// @Summary Create a new book
// @Accept json
// @Produce json
// @Success 201 {object} Book
// @Router /book/add [post]
func (api *APIHandler) CreateBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	var in CreateBookInput
	if err := DecodeRequestBody(r, &in); err != nil {
		api.logger.Error("failed to decode book creation request", zap.String("request.id", requestID), zap.Error(err))
		api.sendServiceError(w, requestID, ErrInvalidBookInput)
		return
	}

	book, err := api.bookService.Create(r.Context(), in)
	if err != nil {
		api.logger.Error("failed to create book", zap.String("request.id", requestID), zap.Error(err))
		api.sendServiceError(w, requestID, err)
		return
	}
	api.logger.Info("success to create book", zap.String("request.id", requestID), zap.Int64("book.id", book.ID))
	if err = WriteJSONResponse(w, http.StatusCreated, book); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetAllBooks godoc
// @Summary List all live books
// @Produce json
// @Success 200 {array} Book
// @Router /book [get]
func (api *APIHandler) GetAllBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	books, err := api.bookService.GetAll(r.Context())
	if err != nil {
		api.logger.Error("failed to get all books", zap.String("request.id", requestID), zap.Error(err))
		api.sendServiceError(w, requestID, err)
		return
	}
	if books == nil {
		books = []Book{}
	}
	api.logger.Info("success to get all books", zap.String("request.id", requestID), zap.Int("books.total", len(books)))
	if err = WriteJSONResponse(w, http.StatusOK, books); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetOneBook godoc
// @Summary Fetch a book by its id
// @Produce json
// @Success 200 {object} Book
// @Router /book/{id} [get]
func (api *APIHandler) GetOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	id, err := ParseBookIDParam(ps)
	if err != nil {
		api.logger.Error("book id provided is not valid", zap.String("book.id", ps.ByName("id")), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "book id provided is not valid")
		if werr := WriteErrorResponse(w, errResp); werr != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(werr))
		}
		return
	}

	book, err := api.bookService.GetOne(r.Context(), id)
	if err != nil {
		api.logger.Error("failed to get book", zap.Int64("book.id", id), zap.String("request.id", requestID), zap.Error(err))
		api.sendServiceError(w, requestID, err)
		return
	}
	api.logger.Info("success to get book", zap.Int64("book.id", id), zap.String("request.id", requestID))
	if err = WriteJSONResponse(w, http.StatusOK, book); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// UpdateBook godoc
// @Summary Update the title of a book
// @Accept json
// @Produce json
// @Success 200 {object} APIMessage
// @Router /book/{id} [put]
func (api *APIHandler) UpdateBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	id, err := ParseBookIDParam(ps)
	if err != nil {
		api.logger.Error("book id provided is not valid", zap.String("book.id", ps.ByName("id")), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "book id provided is not valid")
		if werr := WriteErrorResponse(w, errResp); werr != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(werr))
		}
		return
	}

	var in UpdateBookInput
	if err = DecodeRequestBody(r, &in); err != nil {
		api.logger.Error("failed to decode book update request", zap.String("request.id", requestID), zap.Error(err))
		api.sendServiceError(w, requestID, ErrInvalidBookInput)
		return
	}

	if err = api.bookService.Update(r.Context(), id, in); err != nil {
		api.logger.Error("failed to update book", zap.Int64("book.id", id), zap.String("request.id", requestID), zap.Error(err))
		api.sendServiceError(w, requestID, err)
		return
	}
	api.logger.Info("success to update book", zap.Int64("book.id", id), zap.String("request.id", requestID))
	if err = WriteJSONResponse(w, http.StatusOK, APIMessage{Message: "Book updated successfully"}); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// DeleteOneBook godoc
// @Summary Soft delete a book by its id
// @Produce json
// @Success 200 {object} APIMessage
// @Router /book/{id} [delete]
func (api *APIHandler) DeleteOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	id, err := ParseBookIDParam(ps)
	if err != nil {
		api.logger.Error("book id provided is not valid", zap.String("book.id", ps.ByName("id")), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "book id provided is not valid")
		if werr := WriteErrorResponse(w, errResp); werr != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(werr))
		}
		return
	}

	if err = api.bookService.Delete(r.Context(), id); err != nil {
		api.logger.Error("failed to delete book", zap.Int64("book.id", id), zap.String("request.id", requestID), zap.Error(err))
		api.sendServiceError(w, requestID, err)
		return
	}
	api.logger.Info("success to delete book", zap.Int64("book.id", id), zap.String("request.id", requestID))
	if err = WriteJSONResponse(w, http.StatusOK, APIMessage{Message: "Book deleted successfully"}); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}
