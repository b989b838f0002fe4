// Package session guards every screen of the console behind an
// authenticated operator Session.
//
// The Gate is the single owner of the persisted Session. Components never
// keep a copy past one operation; they call Require (or Token) each time,
// so an invalidation triggered anywhere is seen everywhere on the next call.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/forsa-manager/internal/client/models"
	"github.com/dmitrijs2005/forsa-manager/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/forsa-manager/internal/logging"
)

var ErrNoSession = errors.New("not signed in")

// Redirect is the navigation side effect performed whenever the operator
// must be sent back to the login screen.
type Redirect func(ctx context.Context)

type Gate struct {
	mu      sync.Mutex
	store   metadata.Repository
	toLogin Redirect
	log     logging.Logger
}

func NewGate(store metadata.Repository, toLogin Redirect, log logging.Logger) *Gate {
	if toLogin == nil {
		toLogin = func(context.Context) {}
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Gate{store: store, toLogin: toLogin, log: log}
}

// Current reads the stored Session without any redirect. ok is false when
// nobody is signed in.
func (g *Gate) Current(ctx context.Context) (s models.Session, ok bool, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	values, err := g.store.List(ctx)
	if err != nil {
		return models.Session{}, false, fmt.Errorf("read session: %w", err)
	}
	s, ok = decode(values)
	return s, ok, nil
}

// Require returns the stored Session. When there is none it redirects to
// login and returns ErrNoSession.
func (g *Gate) Require(ctx context.Context) (models.Session, error) {
	s, ok, err := g.Current(ctx)
	if err != nil {
		return models.Session{}, err
	}
	if !ok {
		g.toLogin(ctx)
		return models.Session{}, ErrNoSession
	}
	return s, nil
}

// Token implements client.TokenSource.
func (g *Gate) Token(ctx context.Context) (string, error) {
	s, err := g.Require(ctx)
	if err != nil {
		return "", err
	}
	return s.Token, nil
}

// Establish persists s, replacing any previous Session.
func (g *Gate) Establish(ctx context.Context, s models.Session) error {
	if s.Token == "" {
		return errors.New("session without token")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.store.SetMany(ctx, encode(s)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	g.log.Info(ctx, "session established", "user", s.Name)
	return nil
}

// Invalidate removes the whole Session and redirects to login. The
// redirect happens even if storage fails, so the operator is never left
// on a gated screen.
func (g *Gate) Invalidate(ctx context.Context) error {
	g.mu.Lock()
	err := g.store.DeleteMany(ctx, Keys)
	g.mu.Unlock()

	g.toLogin(ctx)

	if err != nil {
		g.log.Error(ctx, "failed to clear session", "error", err)
		return fmt.Errorf("clear session: %w", err)
	}
	g.log.Info(ctx, "session cleared")
	return nil
}

// Logout is the operator-initiated Invalidate.
func (g *Gate) Logout(ctx context.Context) error {
	return g.Invalidate(ctx)
}

// OnUnauthorized adapts Invalidate to the API client's 401 hook.
func (g *Gate) OnUnauthorized(ctx context.Context) {
	_ = g.Invalidate(ctx)
}
