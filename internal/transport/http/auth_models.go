package http

import (
	"time"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

// ErrorResponse represents a generic error payload.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid credentials"`
}

// AuthRole models the role information included in auth responses.
type AuthRole struct {
	ID          string  `json:"id"`
	RoleName    string  `json:"role_name" example:"admin"`
	Description *string `json:"description,omitempty"`
}

// AuthUser is the sanitized user representation returned by auth endpoints.
type AuthUser struct {
	ID               string     `json:"id"`
	Email            string     `json:"email" example:"agente@viajes.mx"`
	Username         *string    `json:"username,omitempty"`
	FullName         *string    `json:"full_name,omitempty"`
	UserImageURL     *string    `json:"user_image_url,omitempty"`
	AgencyID         *string    `json:"agency_id,omitempty"`
	Roles            []AuthRole `json:"roles,omitempty"`
	ProfileCompleted bool       `json:"profile_completed"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// AuthTokenResponse is returned by endpoints that issue JWT tokens.
type AuthTokenResponse struct {
	Token     string   `json:"token"`
	ExpiresAt string   `json:"expires_at" example:"2026-04-10T09:30:00Z"`
	User      AuthUser `json:"user"`
}

// RegisterRequest carries email registration fields.
type RegisterRequest struct {
	Email    string `json:"email" example:"agente@viajes.mx"`
	Password string `json:"password" example:"StrongPass!2026"`
}

// LoginRequest carries email login fields.
type LoginRequest struct {
	Email    string `json:"email" example:"agente@viajes.mx"`
	Password string `json:"password" example:"StrongPass!2026"`
}

// GoogleLoginRequest carries the Google ID token for login.
type GoogleLoginRequest struct {
	IDToken string `json:"id_token"`
}

// ChangePasswordRequest captures the payload for password updates.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func toAuthUser(user *domain.User) AuthUser {
	out := AuthUser{
		ID:               user.ID.String(),
		Email:            user.Email,
		Username:         user.Username,
		FullName:         user.FullName,
		UserImageURL:     user.ImageURL,
		ProfileCompleted: user.ProfileCompleted,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
	if user.AgencyID != nil {
		agencyID := user.AgencyID.String()
		out.AgencyID = &agencyID
	}
	for _, role := range user.Roles {
		out.Roles = append(out.Roles, AuthRole{
			ID:          role.ID.String(),
			RoleName:    role.Name,
			Description: role.Description,
		})
	}
	return out
}
