// internal/services/user_service.go
package services

import (
	"context"
	"strings"

	"github.com/freshcart/freshcart-backend/internal/i18n"
	"github.com/freshcart/freshcart-backend/internal/models"
	"github.com/freshcart/freshcart-backend/internal/repository"
)

type UserService struct {
	users repository.UserRepository
	now   func() string
}

type SaveUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name,omitempty"`
	Photo string `json:"photo,omitempty"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,role"`
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users, now: models.NowISO}
}

// SaveUser records a sign-in. New users start with the user role; the
// returned flag reports whether a document was inserted.
func (s *UserService) SaveUser(ctx context.Context, req *SaveUserRequest) (*models.WriteResult, bool, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validateRequest(req); err != nil {
		return nil, false, err
	}

	now := s.now()
	result, err := s.users.Upsert(ctx, &models.User{
		Email:        req.Email,
		Name:         req.Name,
		Photo:        req.Photo,
		Role:         models.RoleUser,
		CreatedAt:    now,
		LastLoggedIn: now,
	})
	if err != nil {
		return nil, false, storeError("save user", err, i18n.KeyUserNotFound, i18n.KeyResourceConflict)
	}

	return result, result.UpsertedCount > 0, nil
}

// GetRole returns the stored role for email. It is also the lookup used by
// the role gate middleware.
func (s *UserService) GetRole(ctx context.Context, email string) (models.Role, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", storeError("find user", err, i18n.KeyUserNotFound, i18n.KeyResourceConflict)
	}
	if user.Role == "" {
		return models.RoleUser, nil
	}
	return user.Role, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, storeError("list users", err, i18n.KeyUserNotFound, i18n.KeyResourceConflict)
	}
	return users, nil
}

func (s *UserService) UpdateRole(ctx context.Context, id string, req *UpdateRoleRequest) (*models.WriteResult, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	result, err := s.users.UpdateRole(ctx, oid, models.Role(req.Role))
	if err != nil {
		return nil, storeError("update user role", err, i18n.KeyUserNotFound, i18n.KeyResourceConflict)
	}
	if result.MatchedCount == 0 {
		return nil, notFound(i18n.KeyUserNotFound)
	}
	return result, nil
}
