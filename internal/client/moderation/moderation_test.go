package moderation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrijs2005/forsa-manager/internal/client/client"
	"github.com/dmitrijs2005/forsa-manager/internal/client/collection"
	"github.com/dmitrijs2005/forsa-manager/internal/client/models"
	"github.com/dmitrijs2005/forsa-manager/internal/client/repositories"
	"github.com/dmitrijs2005/forsa-manager/internal/client/session"
	"github.com/dmitrijs2005/forsa-manager/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI records calls and returns the configured error.
type fakeAPI struct {
	mu    sync.Mutex
	err   error
	calls []string
	gate  chan struct{}
}

func (f *fakeAPI) record(call string) error {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return f.err
}

func (f *fakeAPI) UpdateUser(_ context.Context, id string, special bool) error {
	return f.record(fmt.Sprintf("update %s %v", id, special))
}
func (f *fakeAPI) DeleteUser(_ context.Context, id string) error { return f.record("delete " + id) }
func (f *fakeAPI) ApproveAd(_ context.Context, id string) error  { return f.record("approve " + id) }
func (f *fakeAPI) RejectAd(_ context.Context, id string) error   { return f.record("reject " + id) }

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type answer struct {
	ok      bool
	err     error
	prompts []string
}

func (a *answer) Confirm(_ context.Context, prompt string) (bool, error) {
	a.prompts = append(a.prompts, prompt)
	return a.ok, a.err
}

func loadedUsers(t *testing.T, n int) *collection.Store[models.User] {
	t.Helper()
	users := make([]models.User, n)
	for i := range users {
		users[i] = models.User{ID: fmt.Sprintf("u%d", i), FirstName: "N"}
	}
	s := collection.NewUsers(2, func(context.Context) ([]models.User, error) { return users, nil }, nil)
	require.NoError(t, s.Load(context.Background()))
	return s
}

func loadedAds(t *testing.T, ids ...string) *collection.Store[models.Ad] {
	t.Helper()
	ads := make([]models.Ad, len(ids))
	for i, id := range ids {
		ads[i] = models.Ad{ID: id, AdTitle: "ad " + id}
	}
	s := collection.NewAds(18, func(context.Context) ([]models.Ad, error) { return ads, nil }, nil)
	require.NoError(t, s.Load(context.Background()))
	return s
}

func TestDelete_Success(t *testing.T) {
	store := loadedUsers(t, 3)
	api := &fakeAPI{}
	conf := &answer{ok: true}
	m := NewUsers(api, store, conf, logging.Discard())

	msg, err := m.Delete(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "User deleted successfully!", msg)
	assert.Equal(t, []string{"delete u1"}, api.Calls())
	assert.Equal(t, []string{"Are you sure you want to delete this user? This action cannot be undone."}, conf.prompts)

	_, ok := store.Get("u1")
	assert.False(t, ok)
	assert.Equal(t, 1, store.State().TotalPages)
}

func TestMissingID_NothingSent(t *testing.T) {
	users := []models.User{{FirstName: "A"}, {FirstName: "B"}, {ID: "u1", FirstName: "C"}}
	store := collection.NewUsers(5, func(context.Context) ([]models.User, error) { return users, nil }, nil)
	require.NoError(t, store.Load(context.Background()))
	api := &fakeAPI{}
	conf := &answer{ok: true}
	m := NewUsers(api, store, conf, nil)

	id := store.Current()[0].ItemID()
	_, err := m.Delete(context.Background(), id)
	require.ErrorIs(t, err, ErrNoIdentifier)
	_, err = m.ToggleSpecial(context.Background(), id)
	require.ErrorIs(t, err, ErrNoIdentifier)

	assert.Empty(t, api.Calls())
	assert.Empty(t, conf.prompts)
	all, visible := store.Counts()
	assert.Equal(t, 3, all)
	assert.Equal(t, 3, visible)
}

func TestMissingID_AdNotDecided(t *testing.T) {
	store := loadedAds(t, "", "a1")
	api := &fakeAPI{}
	m := NewAds(api, store, AlwaysConfirm, nil)

	_, err := m.Open("")
	require.ErrorIs(t, err, ErrNoIdentifier)
	_, err = m.Approve(context.Background(), "")
	require.ErrorIs(t, err, ErrNoIdentifier)
	_, err = m.Reject(context.Background(), "")
	require.ErrorIs(t, err, ErrNoIdentifier)
	assert.Empty(t, api.Calls())
	all, _ := store.Counts()
	assert.Equal(t, 2, all)
}

func TestDeclined_NothingSent(t *testing.T) {
	store := loadedUsers(t, 3)
	api := &fakeAPI{}
	m := NewUsers(api, store, &answer{ok: false}, nil)

	_, err := m.Delete(context.Background(), "u1")
	require.ErrorIs(t, err, ErrCancelled)
	assert.Empty(t, api.Calls())
	all, _ := store.Counts()
	assert.Equal(t, 3, all)
	assert.False(t, m.Busy("u1"))
}

func TestConfirmError(t *testing.T) {
	api := &fakeAPI{}
	m := NewUsers(api, loadedUsers(t, 1), &answer{err: errors.New("stdin closed")}, nil)

	_, err := m.Delete(context.Background(), "u0")
	require.ErrorContains(t, err, "stdin closed")
	assert.Empty(t, api.Calls())
}

func TestServerRejection_StateUnchanged(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"with message", &client.APIError{Status: 404, Message: "User not found"}, "Failed to delete user: User not found"},
		{"without message", &client.APIError{Status: 500}, "Failed to delete user: Unknown error"},
		{"network", fmt.Errorf("%w: refused", client.ErrUnavailable), "An error occurred while deleting the user. Please try again."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := loadedUsers(t, 3)
			m := NewUsers(&fakeAPI{err: tt.err}, store, AlwaysConfirm, nil)

			_, err := m.Delete(context.Background(), "u1")

			var f *Failure
			require.ErrorAs(t, err, &f)
			assert.Equal(t, tt.msg, f.Message())
			require.ErrorIs(t, err, tt.err)

			_, ok := store.Get("u1")
			assert.True(t, ok)
		})
	}
}

func TestToggleSpecial(t *testing.T) {
	store := loadedUsers(t, 2)
	api := &fakeAPI{}
	m := NewUsers(api, store, AlwaysConfirm, nil)
	ctx := context.Background()

	msg, err := m.ToggleSpecial(ctx, "u0")
	require.NoError(t, err)
	assert.Equal(t, "User special status updated!", msg)
	u, _ := store.Get("u0")
	assert.True(t, u.IsSpecial)

	_, err = m.ToggleSpecial(ctx, "u0")
	require.NoError(t, err)
	u, _ = store.Get("u0")
	assert.False(t, u.IsSpecial)

	assert.Equal(t, []string{"update u0 true", "update u0 false"}, api.Calls())

	_, err = m.ToggleSpecial(ctx, "ghost")
	require.ErrorIs(t, err, collection.ErrNotFound)
}

func TestToggleSpecial_FailureLeavesFlag(t *testing.T) {
	store := loadedUsers(t, 1)
	m := NewUsers(&fakeAPI{err: &client.APIError{Status: 400, Message: "nope"}}, store, AlwaysConfirm, nil)

	_, err := m.ToggleSpecial(context.Background(), "u0")
	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, "Failed to update status: nope", f.Message())

	u, _ := store.Get("u0")
	assert.False(t, u.IsSpecial)
}

func TestInFlight_DuplicateRejected(t *testing.T) {
	store := loadedUsers(t, 2)
	api := &fakeAPI{gate: make(chan struct{})}
	m := NewUsers(api, store, AlwaysConfirm, nil)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := m.Delete(ctx, "u0")
		done <- err
	}()
	require.Eventually(t, func() bool { return len(api.Calls()) == 1 }, timeout, tick)
	assert.True(t, m.Busy("u0"))

	_, err := m.Delete(ctx, "u0")
	require.ErrorIs(t, err, ErrInFlight)
	_, err = m.ToggleSpecial(ctx, "u0")
	require.ErrorIs(t, err, ErrInFlight)

	close(api.gate)
	require.NoError(t, <-done)
	assert.False(t, m.Busy("u0"))
	assert.Len(t, api.Calls(), 1)
}

func TestApproveReject_RemoveAndCloseDetail(t *testing.T) {
	store := loadedAds(t, "a1", "a2", "a3")
	api := &fakeAPI{}
	m := NewAds(api, store, AlwaysConfirm, nil)
	ctx := context.Background()

	ad, err := m.Open("a1")
	require.NoError(t, err)
	assert.Equal(t, "ad a1", ad.AdTitle)

	msg, err := m.Approve(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Advertisement approved successfully!", msg)
	_, open := m.Opened()
	assert.False(t, open)

	_, err = m.Open("a3")
	require.NoError(t, err)
	msg, err = m.Reject(ctx, "a2")
	require.NoError(t, err)
	assert.Equal(t, "Advertisement rejected successfully!", msg)

	opened, open := m.Opened()
	require.True(t, open, "detail view of another ad stays open")
	assert.Equal(t, "a3", opened.ID)

	all, visible := store.Counts()
	assert.Equal(t, 1, all)
	assert.Equal(t, 1, visible)
	assert.Equal(t, []string{"approve a1", "reject a2"}, api.Calls())

	_, err = m.Open("a1")
	require.ErrorIs(t, err, collection.ErrNotFound)
	m.Close()
	_, open = m.Opened()
	assert.False(t, open)
}

func TestApprove_FailureKeepsDetailOpen(t *testing.T) {
	store := loadedAds(t, "a1")
	m := NewAds(&fakeAPI{err: &client.APIError{Status: 409, Message: "already approved"}}, store, AlwaysConfirm, nil)

	_, err := m.Open("a1")
	require.NoError(t, err)

	_, err = m.Approve(context.Background(), "a1")
	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, "Failed to approve ad: already approved", f.Message())

	_, open := m.Opened()
	assert.True(t, open)
}

func TestSuccessOnMissingLocalItemStillReported(t *testing.T) {
	store := loadedAds(t, "a1")
	m := NewAds(&fakeAPI{}, store, AlwaysConfirm, nil)

	msg, err := m.Reject(context.Background(), "elsewhere")
	require.NoError(t, err)
	assert.NotEmpty(t, msg)
}

// A moderation call answered with 401 clears the session and leaves both
// collections as they were.
func TestUnauthorized_ClearsSessionAndKeepsItems(t *testing.T) {
	ctx := context.Background()

	repos, err := repositories.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	defer repos.Close()

	redirected := 0
	gate := session.NewGate(repos.Metadata, func(context.Context) { redirected++ }, logging.Discard())
	require.NoError(t, gate.Establish(ctx, models.Session{Token: "expired", IsAdmin: true}))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	api := client.NewHTTPClient(srv.URL,
		client.WithTokenSource(gate),
		client.WithUnauthorizedHook(gate.OnUnauthorized),
	)

	users := loadedUsers(t, 3)
	ads := loadedAds(t, "a1", "a2")

	_, err = NewUsers(api, users, AlwaysConfirm, nil).Delete(ctx, "u1")
	require.ErrorIs(t, err, client.ErrUnauthorized)

	_, ok, err := gate.Current(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "session must be cleared")
	assert.Equal(t, 1, redirected)

	_, ok = users.Get("u1")
	assert.True(t, ok)
	all, visible := users.Counts()
	assert.Equal(t, 3, all)
	assert.Equal(t, 3, visible)

	// with no session the next action never reaches the server
	_, err = NewAds(api, ads, AlwaysConfirm, nil).Approve(ctx, "a1")
	require.ErrorIs(t, err, session.ErrNoSession)
	all, visible = ads.Counts()
	assert.Equal(t, 2, all)
	assert.Equal(t, 2, visible)
}
