// Package services contains the application services behind the console's
// login screen.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/forsa-manager/internal/client/client"
	"github.com/dmitrijs2005/forsa-manager/internal/client/models"
	"github.com/dmitrijs2005/forsa-manager/internal/common"
	"github.com/dmitrijs2005/forsa-manager/internal/logging"
)

var ErrMissingCredentials = errors.New("phone number and password are required")

// AuthService signs the operator in and out.
//
// Contract:
//   - Login: validate input, authenticate against the API, reject accounts
//     without admin rights, and persist the resulting Session.
//   - Logout: drop the Session and return to the login screen.
type AuthService interface {
	Login(ctx context.Context, phoneNumber string, password []byte) (models.Session, error)
	Logout(ctx context.Context) error
}

// SessionKeeper is the part of session.Gate the service writes through.
type SessionKeeper interface {
	Establish(ctx context.Context, s models.Session) error
	Logout(ctx context.Context) error
}

type authService struct {
	client   client.Client
	sessions SessionKeeper
	log      logging.Logger
}

func NewAuthService(c client.Client, sessions SessionKeeper, log logging.Logger) AuthService {
	return &authService{client: c, sessions: sessions, log: log}
}

// Login wipes password before returning.
func (a *authService) Login(ctx context.Context, phoneNumber string, password []byte) (models.Session, error) {
	defer common.WipeByteArray(password)

	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" || len(password) == 0 {
		return models.Session{}, ErrMissingCredentials
	}

	resp, err := a.client.Login(ctx, phoneNumber, string(password))
	if err != nil {
		return models.Session{}, fmt.Errorf("login error: %w", err)
	}

	if !resp.UserIsAdmin {
		a.log.Warn(ctx, "login refused for non-admin account", "phone", phoneNumber)
		return models.Session{}, client.ErrNotAdmin
	}

	s := resp.Session()
	if err := a.sessions.Establish(ctx, s); err != nil {
		return models.Session{}, fmt.Errorf("session saving error: %w", err)
	}
	return s, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.sessions.Logout(ctx)
}
