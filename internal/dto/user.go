package dto

import "github.com/spems-app/spems_backend/internal/core/domain"

// RegisterRequest defines the data needed to create a new user account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest defines the credentials for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the issued access token and the user it belongs to.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID string `json:"userID"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID: user.UserID,
		Email:  user.Email,
		Name:   user.Name,
	}
}

// UpdateUserRequest defines the data allowed for updating a user profile.
type UpdateUserRequest struct {
	Name *string `json:"name"`
}

// PreferencesResponse defines the data returned for user preferences.
type PreferencesResponse struct {
	Theme            string `json:"theme"`
	Currency         string `json:"currency"`
	BudgetAlerts     bool   `json:"budgetAlerts"`
	MonthlyReports   bool   `json:"monthlyReports"`
	ExpenseReminders bool   `json:"expenseReminders"`
	Language         string `json:"language"`
}

// ToPreferencesResponse converts domain.UserPreferences to its DTO.
func ToPreferencesResponse(p *domain.UserPreferences) PreferencesResponse {
	return PreferencesResponse{
		Theme:            p.Theme,
		Currency:         p.Currency,
		BudgetAlerts:     p.BudgetAlerts,
		MonthlyReports:   p.MonthlyReports,
		ExpenseReminders: p.ExpenseReminders,
		Language:         p.Language,
	}
}

// UpdatePreferencesRequest defines the data allowed for updating preferences.
type UpdatePreferencesRequest struct {
	Theme            *string `json:"theme" binding:"omitempty,oneof=light dark"`
	Currency         *string `json:"currency" binding:"omitempty,currencycode"`
	BudgetAlerts     *bool   `json:"budgetAlerts"`
	MonthlyReports   *bool   `json:"monthlyReports"`
	ExpenseReminders *bool   `json:"expenseReminders"`
	Language         *string `json:"language" binding:"omitempty,max=10"`
}

// GoogleExchangeCodeRequest carries the authorization artifacts from the
// frontend OAuth flow back to the API.
type GoogleExchangeCodeRequest struct {
	Code    string `json:"code"`
	IDToken string `json:"idToken"`
}
