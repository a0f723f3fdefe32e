package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"notekeeper/internal/auth"
	apperrors "notekeeper/internal/errors"
	"notekeeper/internal/service"
)

// NoteHandler handles note endpoints. Every route is behind the auth gate;
// the owning user id is always the verified caller's, never client input.
type NoteHandler struct {
	noteService service.NoteService
}

// NewNoteHandler creates a new note handler.
func NewNoteHandler(noteService service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// AddNoteRequest represents a note creation request. A client-supplied
// userID field is ignored by binding.
type AddNoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Subject string `json:"subject" validate:"required"`
}

// MessageResponse represents a plain acknowledgment response.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// callerObjectID resolves the verified caller bound by the auth gate.
func callerObjectID(c echo.Context) (primitive.ObjectID, *echo.HTTPError) {
	owner, err := primitive.ObjectIDFromHex(auth.CallerID(c))
	if err != nil {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: "invalid token",
			Code:  "TOKEN_INVALID",
		})
	}
	return owner, nil
}

// List godoc
// @Summary List the caller's notes
// @Tags note
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Note
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /note [get]
func (h *NoteHandler) List(c echo.Context) error {
	owner, httpErr := callerObjectID(c)
	if httpErr != nil {
		return httpErr
	}

	notes, err := h.noteService.List(c.Request().Context(), owner)
	if err != nil {
		mapped := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, notes)
}

// Add godoc
// @Summary Add a note for the caller
// @Tags note
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddNoteRequest true "Note payload"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /note/addnote [post]
func (h *NoteHandler) Add(c echo.Context) error {
	owner, httpErr := callerObjectID(c)
	if httpErr != nil {
		return httpErr
	}

	var req AddNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "VALIDATION",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION",
		})
	}

	if _, err := h.noteService.Create(c.Request().Context(), owner, req.Title, req.Subject); err != nil {
		mapped := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, MessageResponse{Msg: "Notes added"})
}

// Update godoc
// @Summary Update the caller's note by id
// @Tags note
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Param request body map[string]interface{} true "Partial note fields"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /note/updatenote/{id} [patch]
func (h *NoteHandler) Update(c echo.Context) error {
	owner, httpErr := callerObjectID(c)
	if httpErr != nil {
		return httpErr
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid note id",
			Code:  "VALIDATION",
		})
	}

	patch := map[string]interface{}{}
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "VALIDATION",
		})
	}
	if len(patch) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "empty patch",
			Code:  "VALIDATION",
		})
	}

	if err := h.noteService.Update(c.Request().Context(), owner, id, patch); err != nil {
		mapped := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, MessageResponse{Msg: "notes updated"})
}

// Delete godoc
// @Summary Delete the caller's note by id
// @Tags note
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /note/deletenote/{id} [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	owner, httpErr := callerObjectID(c)
	if httpErr != nil {
		return httpErr
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid note id",
			Code:  "VALIDATION",
		})
	}

	if err := h.noteService.Delete(c.Request().Context(), owner, id); err != nil {
		mapped := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, MessageResponse{Msg: "notes deleted"})
}
