package dto

import "itdocsapi/models"

// LoginRequest carries account credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

// AccountCreateRequest registers a new API account.
type AccountCreateRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"omitempty,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Groups   []uint `json:"groups"`
}

// AccountUpdateRequest replaces an account. An empty password keeps the
// current one, a nil is_active keeps the current state.
type AccountUpdateRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"omitempty,email,max=254"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
	IsActive *bool  `json:"is_active"`
	Groups   []uint `json:"groups"`
}

// AccountGroupCreateRequest creates an account group.
type AccountGroupCreateRequest struct {
	Name string `json:"name" validate:"required,max=150"`
}

// AccountView is the public representation of an account.
type AccountView struct {
	ID       uint                  `json:"id"`
	Username string                `json:"username"`
	Email    string                `json:"email"`
	IsActive bool                  `json:"is_active"`
	Groups   []models.AccountGroup `json:"groups"`
}

// NewAccountView hides the password hash of account.
func NewAccountView(a models.Account) AccountView {
	groups := a.Groups
	if groups == nil {
		groups = []models.AccountGroup{}
	}
	return AccountView{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
		IsActive: a.IsActive,
		Groups:   groups,
	}
}
