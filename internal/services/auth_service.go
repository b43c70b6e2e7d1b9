// internal/services/auth_service.go
package services

import (
	"fmt"
	"strings"

	"github.com/freshcart/freshcart-backend/internal/utils"
)

// AuthService signs whatever identity the client presents. Identity is
// proven upstream by the sign-in provider, so no user lookup happens here.
type AuthService struct {
	jwt *utils.JWTManager
}

type IssueTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name,omitempty"`
	Photo string `json:"photo,omitempty"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"` // in seconds
}

func NewAuthService(jwt *utils.JWTManager) *AuthService {
	return &AuthService{jwt: jwt}
}

func (s *AuthService) IssueToken(req *IssueTokenRequest) (*TokenResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateJWT(req.Email, req.Name, req.Photo)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &TokenResponse{
		Token:     token,
		ExpiresIn: int64(s.jwt.TTL().Seconds()),
	}, nil
}
