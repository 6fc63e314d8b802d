package dto

import (
	"time"

	"github.com/controle-financeiro/backend/internal/domain/entity"
)

// CreateAccountRequest represents the request body for account creation.
type CreateAccountRequest struct {
	Name            string `json:"name" binding:"required,min=1,max=255"`
	Type            string `json:"type" binding:"required"`
	Currency        string `json:"currency,omitempty"`
	ShowOnDashboard *bool  `json:"show_on_dashboard,omitempty"`
}

// UpdateAccountRequest represents the request body for account update.
// Omitted fields are left unchanged.
type UpdateAccountRequest struct {
	Name            *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Type            *string `json:"type,omitempty"`
	Currency        *string `json:"currency,omitempty"`
	ShowOnDashboard *bool   `json:"show_on_dashboard,omitempty"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	Currency        string    `json:"currency"`
	ShowOnDashboard bool      `json:"show_on_dashboard"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToAccountResponse converts an account entity to its response form.
func ToAccountResponse(account *entity.Account) AccountResponse {
	return AccountResponse{
		ID:              account.ID.String(),
		Name:            account.Name,
		Type:            string(account.Type),
		Currency:        string(account.Currency),
		ShowOnDashboard: account.ShowOnDashboard,
		CreatedAt:       account.CreatedAt,
		UpdatedAt:       account.UpdatedAt,
	}
}

// ToAccountListResponse converts a slice of accounts.
func ToAccountListResponse(accounts []*entity.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i, account := range accounts {
		responses[i] = ToAccountResponse(account)
	}
	return responses
}

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
	Kind string `json:"kind" binding:"required"`
}

// UpdateCategoryRequest represents the request body for category update.
type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Kind *string `json:"kind,omitempty"`
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a category entity to its response form.
func ToCategoryResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID.String(),
		Name:      category.Name,
		Kind:      string(category.Kind),
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// ToCategoryListResponse converts a slice of categories.
func ToCategoryListResponse(categories []*entity.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		responses[i] = ToCategoryResponse(category)
	}
	return responses
}
