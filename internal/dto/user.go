package dto

import (
	"github.com/blossom-focus/blossom-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
	Provider string `json:"provider"`
}

// TokenResponse is returned on successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"username"`
	Email       string `json:"email"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Verified: user.Verified,
		Provider: string(user.Provider),
	}
}

// ToTokenResponse builds the login payload
func ToTokenResponse(user models.User, accessToken string) TokenResponse {
	return TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		Username:    user.Username,
		Email:       user.Email,
	}
}
