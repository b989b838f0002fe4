// Package moderation executes the operator's state-changing actions on
// single list items: approving or rejecting a pending ad, deleting a user
// and toggling a user's special flag.
//
// Every action follows the same steps. The operator confirms first; a
// declined prompt sends nothing. The request goes out, and only a success
// response changes the local collection (remove, or patch in place) with
// the pagination reclamped. A 401 has already cleared the session inside
// the API client, so nothing local is touched. Any other failure is
// returned as a *Failure carrying the operator-facing text.
//
// While a request for an id is outstanding a second action on the same id
// fails fast with ErrInFlight.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/forsa-manager/internal/client/client"
	"github.com/dmitrijs2005/forsa-manager/internal/client/session"
	"github.com/dmitrijs2005/forsa-manager/internal/logging"
)

var (
	ErrCancelled = errors.New("action cancelled")
	ErrInFlight  = errors.New("an action on this item is already running")
	// ErrNoIdentifier rejects items the server listed without an id.
	ErrNoIdentifier = errors.New("item has no identifier")
)

// Confirmer asks the operator to confirm a destructive step.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm approves every prompt.
var AlwaysConfirm = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionDelete  Action = "delete"
	ActionSpecial Action = "special"
)

type actionText struct {
	prompt  string
	success string
	failed  string
	generic string
}

var texts = map[Action]actionText{
	ActionApprove: {
		prompt:  "Are you sure you want to approve this advertisement?",
		success: "Advertisement approved successfully!",
		failed:  "Failed to approve ad",
		generic: "An error occurred while approving the ad. Please try again.",
	},
	ActionReject: {
		prompt:  "Are you sure you want to reject this advertisement? This action cannot be undone.",
		success: "Advertisement rejected successfully!",
		failed:  "Failed to reject ad",
		generic: "An error occurred while rejecting the ad. Please try again.",
	},
	ActionDelete: {
		prompt:  "Are you sure you want to delete this user? This action cannot be undone.",
		success: "User deleted successfully!",
		failed:  "Failed to delete user",
		generic: "An error occurred while deleting the user. Please try again.",
	},
	ActionSpecial: {
		prompt:  "Change the special status of this user?",
		success: "User special status updated!",
		failed:  "Failed to update status",
		generic: "Error updating special status.",
	},
}

// Failure is a rejected or undeliverable action other than a 401.
type Failure struct {
	Action Action
	ID     string
	Err    error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Action, f.ID, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Message is the text shown to the operator: the server's message when it
// sent one, a generic retry hint when no response arrived.
func (f *Failure) Message() string {
	t := texts[f.Action]
	var apiErr *client.APIError
	if errors.As(f.Err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = "Unknown error"
		}
		return t.failed + ": " + msg
	}
	return t.generic
}

// inFlight is the set of ids with an outstanding request.
type inFlight struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func (f *inFlight) acquire(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ids == nil {
		f.ids = make(map[string]struct{})
	}
	if _, busy := f.ids[id]; busy {
		return false
	}
	f.ids[id] = struct{}{}
	return true
}

func (f *inFlight) release(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.ids, id)
}

func (f *inFlight) busy(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.ids[id]
	return ok
}

type runner struct {
	confirm Confirmer
	flight  inFlight
	log     logging.Logger
}

// run is the shared action template. send issues the request; apply
// updates the local collection and is only called after send succeeds.
func (r *runner) run(ctx context.Context, action Action, id string, send func(context.Context) error, apply func() error) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%s: %w", action, ErrNoIdentifier)
	}
	if !r.flight.acquire(id) {
		return "", ErrInFlight
	}
	defer r.flight.release(id)

	t := texts[action]
	ok, err := r.confirm.Confirm(ctx, t.prompt)
	if err != nil {
		return "", fmt.Errorf("confirm %s: %w", action, err)
	}
	if !ok {
		return "", ErrCancelled
	}

	log := r.log.With("action", string(action), "id", id)

	if err := send(ctx); err != nil {
		if errors.Is(err, client.ErrUnauthorized) || errors.Is(err, session.ErrNoSession) ||
			errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		log.Warn(ctx, "action failed", "error", err)
		return "", &Failure{Action: action, ID: id, Err: err}
	}

	if err := apply(); err != nil {
		// the server accepted; a missing local item only means it was
		// already gone from this snapshot
		log.Warn(ctx, "local update skipped", "error", err)
	}
	log.Info(ctx, "action applied")
	return t.success, nil
}
