package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"mediaccess/internal/delivery/http/middleware"
	"mediaccess/internal/domain/entity"
	"mediaccess/internal/login"
	"mediaccess/internal/projection"
	"mediaccess/internal/store"
	"mediaccess/internal/usecase"
	"mediaccess/pkg/response"
	"mediaccess/pkg/validator"
)

// decodeRequest reads and validates a JSON body. It writes the error response
// and returns false when the body is unusable.
func decodeRequest(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}

	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}

// chatOwnerFrom scopes chat sessions to the caller's token or role
func chatOwnerFrom(r *http.Request) string {
	tokenID, _ := middleware.GetTokenIDFromContext(r.Context())
	return usecase.ChatOwner(roleFrom(r), tokenID)
}

// roleFrom returns the role set by AuthMiddleware, STAFF when none was set
func roleFrom(r *http.Request) entity.Role {
	if role, ok := middleware.GetRoleFromContext(r.Context()); ok {
		return role
	}
	return entity.RoleStaff
}

// writeError maps use case and store errors onto HTTP statuses.
// Anything unrecognised becomes a 500 with the fallback message.
func writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrPatientNotFound),
		errors.Is(err, usecase.ErrTraineeNotFound),
		errors.Is(err, usecase.ErrProposalNotFound),
		errors.Is(err, usecase.ErrTaskNotFound),
		errors.Is(err, usecase.ErrSLACheckNotFound),
		errors.Is(err, usecase.ErrGuideNotFound),
		errors.Is(err, usecase.ErrNotificationNotFound),
		errors.Is(err, usecase.ErrDocumentNotFound),
		errors.Is(err, usecase.ErrUnknownEndpoint),
		errors.Is(err, store.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, usecase.ErrForbidden):
		response.Forbidden(w, err.Error())
	case errors.Is(err, store.ErrInvalidTransition),
		errors.Is(err, store.ErrProposalClosed),
		errors.Is(err, store.ErrDuplicateID):
		response.Conflict(w, err.Error())
	case errors.Is(err, store.ErrInvalidValue),
		errors.Is(err, entity.ErrInvalidRole),
		errors.Is(err, login.ErrUnknownMethod),
		errors.Is(err, usecase.ErrUnknownTaskType),
		errors.Is(err, usecase.ErrUnknownSupervisor),
		errors.Is(err, projection.ErrUnknownProposalView):
		response.BadRequest(w, err.Error())
	case errors.Is(err, usecase.ErrArchiveDisabled):
		response.ServiceUnavailable(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
