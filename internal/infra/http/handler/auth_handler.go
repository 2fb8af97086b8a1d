package handler

import (
	"errors"
	"net/http"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/http/middleware"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/usecase"
)

type AuthHandler struct {
	registerUC       *usecase.RegisterUserUseCase
	loginUC          *usecase.LoginUseCase
	changePasswordUC *usecase.ChangePasswordUseCase
}

func NewAuthHandler(
	registerUC *usecase.RegisterUserUseCase,
	loginUC *usecase.LoginUseCase,
	changePasswordUC *usecase.ChangePasswordUseCase,
) *AuthHandler {
	return &AuthHandler{
		registerUC:       registerUC,
		loginUC:          loginUC,
		changePasswordUC: changePasswordUC,
	}
}

type RegisterRequest struct {
	PhoneNumber      string  `json:"phone_number" validate:"required,min=6,max=20"`
	Email            *string `json:"email" validate:"omitempty,email"`
	Password         string  `json:"password" validate:"required,min=8,max=72"`
	AccountType      string  `json:"account_type" validate:"omitempty,oneof=individual corporate"`
	SubscriptionType string  `json:"subscription_type" validate:"omitempty,oneof=none basic corporate"`
}

// auditBody is the request as written to the audit trail, password excluded.
func (r RegisterRequest) auditBody() map[string]any {
	body := map[string]any{
		"phone_number":      r.PhoneNumber,
		"account_type":      r.AccountType,
		"subscription_type": r.SubscriptionType,
	}
	if r.Email != nil {
		body["email"] = *r.Email
	}
	return body
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	meta := requestMeta(r)

	var req RegisterRequest
	if fields, err := decode(r, &req); err != nil {
		reason := err.Error()
		if fields != nil {
			reason = "Validation failed"
		}
		h.registerUC.RecordFailure(ctx, req.PhoneNumber, req.auditBody(), reason, meta)
		respondInvalid(w, fields, err)
		return
	}

	output, err := h.registerUC.Execute(ctx, usecase.RegisterUserInput{
		PhoneNumber:      req.PhoneNumber,
		Email:            emptyToNil(req.Email),
		Password:         req.Password,
		AccountType:      domain.AccountType(req.AccountType),
		SubscriptionType: domain.SubscriptionType(req.SubscriptionType),
		Meta:             meta,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			respondError(w, http.StatusBadRequest, "A user with this phone number or email already exists")
			return
		}
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toAuthResponse("User registered successfully", output))
}

type LoginRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required_without=Email"`
	Email       string `json:"email" validate:"omitempty,email"`
	Password    string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if fields, err := decode(r, &req); err != nil {
		respondInvalid(w, fields, err)
		return
	}

	output, err := h.loginUC.Execute(r.Context(), usecase.LoginInput{
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Password:    req.Password,
		Meta:        requestMeta(r),
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toAuthResponse("Login successful", output))
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if fields, err := decode(r, &req); err != nil {
		respondInvalid(w, fields, err)
		return
	}

	err := h.changePasswordUC.Execute(r.Context(), usecase.ChangePasswordInput{
		User:            middleware.UserFromContext(r.Context()),
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		Meta:            requestMeta(r),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Current password is incorrect")
			return
		}
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
