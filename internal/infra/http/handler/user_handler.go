package handler

import (
	"fmt"
	"net/http"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/http/middleware"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/usecase"
)

type UserHandler struct {
	manageUC       *usecase.ManageUsersUseCase
	createUC       *usecase.CreateUserUseCase
	addCreditsUC   *usecase.AddCreditsUseCase
	subscriptionUC *usecase.UpdateSubscriptionUseCase
	walletUC       *usecase.GetWalletUseCase
}

func NewUserHandler(
	manageUC *usecase.ManageUsersUseCase,
	createUC *usecase.CreateUserUseCase,
	addCreditsUC *usecase.AddCreditsUseCase,
	subscriptionUC *usecase.UpdateSubscriptionUseCase,
	walletUC *usecase.GetWalletUseCase,
) *UserHandler {
	return &UserHandler{
		manageUC:       manageUC,
		createUC:       createUC,
		addCreditsUC:   addCreditsUC,
		subscriptionUC: subscriptionUC,
		walletUC:       walletUC,
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r)
	users, total, err := h.manageUC.List(r.Context(), middleware.UserFromContext(r.Context()), page.toPage())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newPage(users, total, page, toUserResponse))
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	user, err := h.manageUC.Get(r.Context(), middleware.UserFromContext(r.Context()), id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(*user))
}

type UpdateUserRequest struct {
	PhoneNumber      *string `json:"phone_number" validate:"omitempty,min=6,max=20"`
	Email            *string `json:"email" validate:"omitempty,email"`
	UserType         *string `json:"user_type" validate:"omitempty,oneof=customer maintenance admin"`
	AccountType      *string `json:"account_type" validate:"omitempty,oneof=individual corporate"`
	SubscriptionType *string `json:"subscription_type" validate:"omitempty,oneof=none basic corporate"`
	IsActive         *bool   `json:"is_active"`
}

// Update serves both PUT and PATCH; absent fields are left unchanged.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	var req UpdateUserRequest
	if fields, err := decode(r, &req); err != nil {
		respondInvalid(w, fields, err)
		return
	}

	user, err := h.manageUC.Update(r.Context(), middleware.UserFromContext(r.Context()), id, usecase.UpdateUserInput{
		PhoneNumber:      req.PhoneNumber,
		Email:            req.Email,
		UserType:         enumPtr[domain.UserType](req.UserType),
		AccountType:      enumPtr[domain.AccountType](req.AccountType),
		SubscriptionType: enumPtr[domain.SubscriptionType](req.SubscriptionType),
		IsActive:         req.IsActive,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(*user))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err := h.manageUC.Delete(r.Context(), id); err != nil {
		respondDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type CreateUserRequest struct {
	PhoneNumber      string  `json:"phone_number" validate:"required,min=6,max=20"`
	Email            *string `json:"email" validate:"omitempty,email"`
	Password         string  `json:"password" validate:"required,min=8,max=72"`
	UserType         string  `json:"user_type" validate:"omitempty,oneof=customer maintenance admin"`
	AccountType      string  `json:"account_type" validate:"omitempty,oneof=individual corporate"`
	SubscriptionType string  `json:"subscription_type" validate:"omitempty,oneof=none basic corporate"`
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if fields, err := decode(r, &req); err != nil {
		respondInvalid(w, fields, err)
		return
	}

	user, err := h.createUC.Execute(r.Context(), usecase.CreateUserInput{
		Admin:            middleware.UserFromContext(r.Context()),
		PhoneNumber:      req.PhoneNumber,
		Email:            emptyToNil(req.Email),
		Password:         req.Password,
		UserType:         domain.UserType(req.UserType),
		AccountType:      domain.AccountType(req.AccountType),
		SubscriptionType: domain.SubscriptionType(req.SubscriptionType),
		Meta:             requestMeta(r),
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"user":    toUserResponse(*user),
	})
}

type AddCreditsRequest struct {
	Credits int64 `json:"credits" validate:"required,gt=0"`
}

func (h *UserHandler) AddCredits(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	var req AddCreditsRequest
	if fields, err := decode(r, &req); err != nil {
		respondInvalid(w, fields, err)
		return
	}

	output, err := h.addCreditsUC.Execute(r.Context(), usecase.AddCreditsInput{
		Admin:   middleware.UserFromContext(r.Context()),
		UserID:  id,
		Credits: req.Credits,
		Meta:    requestMeta(r),
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":     fmt.Sprintf("Added %d credits", output.Credits),
		"new_balance": output.NewBalance,
	})
}

type UpdateSubscriptionRequest struct {
	SubscriptionType string `json:"subscription_type" validate:"required,oneof=none basic corporate"`
	DurationDays     int    `json:"duration_days" validate:"omitempty,min=1,max=365"`
}

func (h *UserHandler) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	var req UpdateSubscriptionRequest
	if fields, err := decode(r, &req); err != nil {
		respondInvalid(w, fields, err)
		return
	}

	user, err := h.subscriptionUC.Execute(r.Context(), usecase.UpdateSubscriptionInput{
		Admin:            middleware.UserFromContext(r.Context()),
		UserID:           id,
		SubscriptionType: domain.SubscriptionType(req.SubscriptionType),
		DurationDays:     req.DurationDays,
		Meta:             requestMeta(r),
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Subscription updated successfully",
		"user":    toUserResponse(*user),
	})
}

func (h *UserHandler) Wallet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Wallet not found")
		return
	}
	wallet, err := h.walletUC.Execute(r.Context(), middleware.UserFromContext(r.Context()), id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toWalletResponse(wallet))
}

func enumPtr[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}
