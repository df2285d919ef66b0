package services

import (
	"context"
	"fmt"
	"time"

	"eventrewards/internal/domain"
)

type userService struct {
	userRepo       domain.UserRepository
	contextTimeout time.Duration
}

func NewUserService(userRepo domain.UserRepository, timeout time.Duration) domain.UserService {
	return &userService{
		userRepo:       userRepo,
		contextTimeout: timeout,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, wrapUserErr("get user", err)
	}
	return user.Profile(), nil
}

// UpdateRole changes a user's role. Setting the role the user already has is a conflict.
func (s *userService) UpdateRole(ctx context.Context, userID string, role domain.Role) (*domain.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !role.Assignable() {
		return nil, fmt.Errorf("%w: role must be one of user, operator, auditor, admin", domain.ErrInvalidInput)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, wrapUserErr("get user", err)
	}
	if user.Role == role {
		return nil, domain.ErrRoleAlreadySet
	}
	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return nil, wrapUserErr("update role", err)
	}
	user.Role = role
	return user.Profile(), nil
}
