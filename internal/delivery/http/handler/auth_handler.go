package handler

import (
	"context"
	"errors"
	"net/http"

	"mediaccess/internal/delivery/dto"
	"mediaccess/internal/usecase"
	"mediaccess/pkg/response"
	"mediaccess/pkg/validator"
)

type AuthHandler struct {
	sessionUsecase usecase.SessionUsecase
	validator      *validator.CustomValidator
}

func NewAuthHandler(sessionUsecase usecase.SessionUsecase, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		sessionUsecase: sessionUsecase,
		validator:      validator,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeRequest(w, r, h.validator, &req) {
		return
	}

	resp, err := h.sessionUsecase.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAccessDenied):
			response.Failure(w, http.StatusUnauthorized, "Biometric Access Denied", resp)
		case errors.Is(err, context.Canceled):
			// client went away mid-scan, nobody is listening
		default:
			writeError(w, err, "Failed to login")
		}
		return
	}

	response.Success(w, http.StatusOK, "Login successful", resp)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Session retrieved successfully", h.sessionUsecase.Me(r.Context(), roleFrom(r)))
}

func (h *AuthHandler) Roles(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Roles retrieved successfully", h.sessionUsecase.Roles(r.Context()))
}
