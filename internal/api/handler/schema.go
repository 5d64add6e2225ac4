package handler

import (
	"time"

	"github.com/taplejung/menu-system/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"max=254"`
	Password string `json:"password" validate:"max=72"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"max=72"`
	NewPassword     string `json:"newPassword"     validate:"max=72"`
}

// userResponse is the public projection of a staff account.
type userResponse struct {
	ID    int64       `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	User    userResponse `json:"user"`
}

// --- Staff ---

type addStaffRequest struct {
	Name     string `json:"name"     validate:"max=100"`
	Email    string `json:"email"    validate:"max=254"`
	Password string `json:"password" validate:"max=72"`
	Role     string `json:"role"`
}

type staffResponse struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// --- Menu ---

type menuItemRequest struct {
	Name        string  `json:"name"        validate:"max=100"`
	Category    string  `json:"category"    validate:"max=100"`
	Price       *int64  `json:"price"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	MeatType    *string `json:"meat_type"   validate:"omitempty,max=50"`
	SpiceLevel  *string `json:"spice_level" validate:"omitempty,max=50"`
}

// --- Shared ---

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type createdResponse struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type importResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

func toUserResponse(u *domain.StaffAccount) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func toStaffResponse(u domain.StaffAccount) staffResponse {
	return staffResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}
