package moderation

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/forsa-manager/internal/client/collection"
	"github.com/dmitrijs2005/forsa-manager/internal/client/models"
	"github.com/dmitrijs2005/forsa-manager/internal/logging"
)

type AdAPI interface {
	ApproveAd(ctx context.Context, adID string) error
	RejectAd(ctx context.Context, adID string) error
}

// Ads moderates pending ads and tracks the ad open in the detail view.
type Ads struct {
	api   AdAPI
	store *collection.Store[models.Ad]
	runner

	mu   sync.Mutex
	open string
}

func NewAds(api AdAPI, store *collection.Store[models.Ad], confirm Confirmer, log logging.Logger) *Ads {
	if log == nil {
		log = logging.Discard()
	}
	return &Ads{api: api, store: store, runner: runner{confirm: confirm, log: log}}
}

// Open shows adID in the detail view.
func (a *Ads) Open(adID string) (models.Ad, error) {
	if adID == "" {
		return models.Ad{}, ErrNoIdentifier
	}
	ad, ok := a.store.Get(adID)
	if !ok {
		return models.Ad{}, collection.ErrNotFound
	}
	a.mu.Lock()
	a.open = adID
	a.mu.Unlock()
	return ad, nil
}

// Close dismisses the detail view.
func (a *Ads) Close() {
	a.mu.Lock()
	a.open = ""
	a.mu.Unlock()
}

// Opened returns the ad in the detail view, if any.
func (a *Ads) Opened() (models.Ad, bool) {
	a.mu.Lock()
	id := a.open
	a.mu.Unlock()
	if id == "" {
		return models.Ad{}, false
	}
	return a.store.Get(id)
}

func (a *Ads) Approve(ctx context.Context, adID string) (string, error) {
	return a.run(ctx, ActionApprove, adID,
		func(ctx context.Context) error { return a.api.ApproveAd(ctx, adID) },
		func() error { return a.settle(adID) },
	)
}

func (a *Ads) Reject(ctx context.Context, adID string) (string, error) {
	return a.run(ctx, ActionReject, adID,
		func(ctx context.Context) error { return a.api.RejectAd(ctx, adID) },
		func() error { return a.settle(adID) },
	)
}

// settle removes a decided ad and closes its detail view.
func (a *Ads) settle(adID string) error {
	a.mu.Lock()
	if a.open == adID {
		a.open = ""
	}
	a.mu.Unlock()
	return a.store.Remove(adID)
}

func (a *Ads) Busy(adID string) bool {
	return a.flight.busy(adID)
}
