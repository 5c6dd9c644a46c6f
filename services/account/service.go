// Package account wraps the upstream auth and profile surfaces: login,
// logout, password reset, B2B activation/selection, profile management.
package account

import (
	"context"
	"fmt"
	"strings"

	"clarimed/models"
	"clarimed/upstream"
)

// API is the slice of the upstream client this service needs.
type API interface {
	Login(ctx context.Context, email, password string) (*upstream.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
	ActivateB2B(ctx context.Context, email, token string) error
	ListB2BAccounts(ctx context.Context, token string) ([]models.B2BAccount, error)
	SelectB2BAccount(ctx context.Context, token, accountID string) (*upstream.LoginResponse, error)
	Profile(ctx context.Context, token string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, token string, profile models.Profile) (*models.Profile, error)
}

type Service interface {
	Login(ctx context.Context, email, password string) (*upstream.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
	ActivateB2B(ctx context.Context, email, token string) error
	AvailableAccounts(ctx context.Context, token string) ([]models.B2BAccount, error)
	SelectAccount(ctx context.Context, token, accountID string) (*upstream.LoginResponse, error)
	Profile(ctx context.Context, token string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, token string, profile models.Profile) (*models.Profile, error)
}

// DefaultAccountService is the production implementation.
type DefaultAccountService struct {
	API API
}

func (s *DefaultAccountService) Login(ctx context.Context, email, password string) (*upstream.LoginResponse, error) {
	if !strings.Contains(email, "@") || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	return s.API.Login(ctx, email, password)
}

func (s *DefaultAccountService) Logout(ctx context.Context, token string) error {
	return s.API.Logout(ctx, token)
}

func (s *DefaultAccountService) RequestPasswordReset(ctx context.Context, email string) error {
	if !strings.Contains(email, "@") {
		return fmt.Errorf("please enter a valid email address")
	}
	return s.API.RequestPasswordReset(ctx, email)
}

func (s *DefaultAccountService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return fmt.Errorf("the reset link is invalid or expired")
	}
	return s.API.ConfirmPasswordReset(ctx, token, newPassword)
}

func (s *DefaultAccountService) ActivateB2B(ctx context.Context, email, token string) error {
	if email == "" || token == "" {
		return fmt.Errorf("the activation link is invalid or expired")
	}
	return s.API.ActivateB2B(ctx, email, token)
}

// AvailableAccounts lists the sub-accounts selectable in the switcher.
// Non-B2B users get an empty list from upstream; they still see their own
// account so the switcher UI always has something to show.
func (s *DefaultAccountService) AvailableAccounts(ctx context.Context, token string) ([]models.B2BAccount, error) {
	accounts, err := s.API.ListB2BAccounts(ctx, token)
	if err != nil {
		return nil, err
	}
	if len(accounts) > 0 {
		return accounts, nil
	}

	profile, err := s.API.Profile(ctx, token)
	if err != nil {
		return nil, err
	}
	return []models.B2BAccount{
		{
			ID:     profile.ID,
			Name:   strings.TrimSpace(profile.GivenName + " " + profile.FamilyName),
			Email:  profile.Email,
			Active: true,
		},
	}, nil
}

func (s *DefaultAccountService) SelectAccount(ctx context.Context, token, accountID string) (*upstream.LoginResponse, error) {
	return s.API.SelectB2BAccount(ctx, token, accountID)
}

func (s *DefaultAccountService) Profile(ctx context.Context, token string) (*models.Profile, error) {
	return s.API.Profile(ctx, token)
}

func (s *DefaultAccountService) UpdateProfile(ctx context.Context, token string, profile models.Profile) (*models.Profile, error) {
	return s.API.UpdateProfile(ctx, token, profile)
}
