package client

import (
	"context"

	"github.com/dmitrijs2005/forsa-manager/internal/client/models"
)

type Client interface {
	Login(ctx context.Context, phoneNumber, password string) (*models.LoginResponse, error)
	Dashboard(ctx context.Context) (*models.Dashboard, error)

	ListUsers(ctx context.Context, page, limit int) ([]models.User, error)
	UpdateUser(ctx context.Context, userID string, isSpecial bool) error
	DeleteUser(ctx context.Context, userID string) error

	ListPendingAds(ctx context.Context) ([]models.Ad, error)
	ApproveAd(ctx context.Context, adID string) error
	RejectAd(ctx context.Context, adID string) error

	ListImages(ctx context.Context) ([]models.ImageRecord, error)
	UploadImage(ctx context.Context, content string) (*models.ImageRecord, error)
	DeleteImage(ctx context.Context, imageID string) error
}

// TokenSource yields the bearer token of the current session.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
