package moderation

import (
	"context"

	"github.com/dmitrijs2005/forsa-manager/internal/client/collection"
	"github.com/dmitrijs2005/forsa-manager/internal/client/models"
	"github.com/dmitrijs2005/forsa-manager/internal/logging"
)

type UserAPI interface {
	UpdateUser(ctx context.Context, userID string, isSpecial bool) error
	DeleteUser(ctx context.Context, userID string) error
}

type Users struct {
	api   UserAPI
	store *collection.Store[models.User]
	runner
}

func NewUsers(api UserAPI, store *collection.Store[models.User], confirm Confirmer, log logging.Logger) *Users {
	if log == nil {
		log = logging.Discard()
	}
	return &Users{api: api, store: store, runner: runner{confirm: confirm, log: log}}
}

// Delete removes the user account server-side and then from the store.
func (u *Users) Delete(ctx context.Context, userID string) (string, error) {
	return u.run(ctx, ActionDelete, userID,
		func(ctx context.Context) error { return u.api.DeleteUser(ctx, userID) },
		func() error { return u.store.Remove(userID) },
	)
}

// ToggleSpecial flips the user's special flag.
func (u *Users) ToggleSpecial(ctx context.Context, userID string) (string, error) {
	current, ok := u.store.Get(userID)
	if !ok {
		return "", collection.ErrNotFound
	}
	want := !current.IsSpecial

	return u.run(ctx, ActionSpecial, userID,
		func(ctx context.Context) error { return u.api.UpdateUser(ctx, userID, want) },
		func() error {
			return u.store.Patch(userID, func(x *models.User) { x.IsSpecial = want })
		},
	)
}

// Busy reports whether an action on userID is outstanding.
func (u *Users) Busy(userID string) bool {
	return u.flight.busy(userID)
}
