package auth

import "go-attendance/internal/domain"

type SessionLoginRequest struct {
	IDToken   string   `json:"id_token" binding:"required"`
	UserType  string   `json:"user_type" binding:"required"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SessionResponse struct {
	AccessToken string           `json:"access_token"`
	ExpiresAt   int64            `json:"expires_at"`
	Principal   domain.Principal `json:"principal"`
}
