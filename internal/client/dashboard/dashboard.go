// Package dashboard fetches the summary counters shown on the home screen.
package dashboard

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/forsa-manager/internal/client/models"
	"github.com/dmitrijs2005/forsa-manager/internal/logging"
)

type API interface {
	Dashboard(ctx context.Context) (*models.Dashboard, error)
}

// Counters is what the home screen renders. Available is false whenever
// the fetch failed or any counter was missing; in that case every counter
// shows the placeholder.
type Counters struct {
	Users       string
	PendingAds  string
	ApprovedAds string
	Available   bool
}

func unavailable() Counters {
	return Counters{Users: "-", PendingAds: "-", ApprovedAds: "-"}
}

type Aggregator struct {
	api API
	log logging.Logger
}

func New(api API, log logging.Logger) *Aggregator {
	if log == nil {
		log = logging.Discard()
	}
	return &Aggregator{api: api, log: log}
}

// Fetch performs one request. It never returns partial counters. The
// error is returned so callers can react to a 401, but the Counters are
// always safe to render.
func (a *Aggregator) Fetch(ctx context.Context) (Counters, error) {
	d, err := a.api.Dashboard(ctx)
	if err != nil {
		a.log.Error(ctx, "dashboard fetch failed", "error", err)
		return unavailable(), fmt.Errorf("dashboard: %w", err)
	}
	if d == nil || !d.Complete() {
		a.log.Warn(ctx, "dashboard response incomplete")
		return unavailable(), nil
	}

	return Counters{
		Users:       models.CounterText(d.UserCount),
		PendingAds:  models.CounterText(d.NotApprovedAdsCount),
		ApprovedAds: models.CounterText(d.ApprovedAdsCount),
		Available:   true,
	}, nil
}
