package collection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/forsa-manager/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeUsers(n int) []models.User {
	users := make([]models.User, n)
	for i := range users {
		users[i] = models.User{
			ID:          fmt.Sprintf("u%03d", i),
			FirstName:   fmt.Sprintf("First%d", i),
			LastName:    "Last",
			PhoneNumber: fmt.Sprintf("9660%04d", i),
		}
	}
	return users
}

func static[T any](items []T) Fetcher[T] {
	return func(context.Context) ([]T, error) { return items, nil }
}

// checkInvariants asserts the pagination invariant and all/visible membership.
func checkInvariants[T models.Item](t *testing.T, s *Store[T]) {
	t.Helper()
	st := s.State()
	all, visible := s.Counts()

	want := max(1, (visible+st.PageSize-1)/st.PageSize)
	assert.Equal(t, want, st.TotalPages, "totalPages")
	assert.GreaterOrEqual(t, st.CurrentPage, 1)
	assert.LessOrEqual(t, st.CurrentPage, st.TotalPages)
	assert.LessOrEqual(t, visible, all)

	s.mu.Lock()
	defer s.mu.Unlock()
	ids := map[string]bool{}
	for _, it := range s.all {
		ids[it.ItemID()] = true
	}
	for _, it := range s.visible {
		assert.True(t, ids[it.ItemID()], "visible item %s missing from all", it.ItemID())
	}
}

func TestNewStore_Empty(t *testing.T) {
	s := NewUsers(10, static[models.User](nil), nil)

	assert.Equal(t, PageState{PageSize: 10, CurrentPage: 1, TotalPages: 1}, s.State())
	assert.False(t, s.Loaded())
	assert.Empty(t, s.Current())
	checkInvariants(t, s)
}

func TestLoad_ResetsState(t *testing.T) {
	s := NewUsers(200, static(makeUsers(205)), nil)
	ctx := context.Background()

	require.NoError(t, s.Load(ctx))
	assert.True(t, s.Loaded())
	assert.Equal(t, PageState{PageSize: 200, CurrentPage: 1, TotalPages: 2}, s.State())
	checkInvariants(t, s)

	require.NoError(t, s.SetSearch(FieldName, "First1"))
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, Query{}, s.Query())
	all, visible := s.Counts()
	assert.Equal(t, 205, all)
	assert.Equal(t, 205, visible)
}

func TestLoad_FailureLeavesStateUntouched(t *testing.T) {
	boom := errors.New("network down")
	fail := false
	s := NewUsers(10, func(context.Context) ([]models.User, error) {
		if fail {
			return nil, boom
		}
		return makeUsers(25), nil
	}, nil)
	ctx := context.Background()

	require.NoError(t, s.Load(ctx))
	require.NoError(t, s.GoTo(3))

	fail = true
	err := s.Load(ctx)
	require.ErrorIs(t, err, boom)

	assert.Equal(t, 3, s.State().CurrentPage)
	all, _ := s.Counts()
	assert.Equal(t, 25, all)
}

func TestLoad_StaleResponseDiscarded(t *testing.T) {
	first := make(chan []models.User)
	var calls atomic.Int32
	s := NewUsers(10, func(ctx context.Context) ([]models.User, error) {
		if calls.Add(1) == 1 {
			return <-first, nil
		}
		return makeUsers(3), nil
	}, nil)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- s.Load(ctx) }()

	// wait until the first load is blocked inside its fetch
	require.Eventually(t, func() bool { return calls.Load() == 1 }, timeout, tick)

	require.NoError(t, s.Load(ctx))
	first <- makeUsers(50)

	require.ErrorIs(t, <-done, ErrStaleResponse)
	all, _ := s.Counts()
	assert.Equal(t, 3, all, "the older response must not overwrite the newer snapshot")
}

func TestLoad_StaleFailureIgnored(t *testing.T) {
	first := make(chan error)
	var calls atomic.Int32
	s := NewUsers(10, func(ctx context.Context) ([]models.User, error) {
		if calls.Add(1) == 1 {
			return nil, <-first
		}
		return makeUsers(2), nil
	}, nil)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- s.Load(ctx) }()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, timeout, tick)

	require.NoError(t, s.Load(ctx))
	first <- errors.New("late failure")

	require.ErrorIs(t, <-done, ErrStaleResponse)
	assert.True(t, s.Loaded())
}

func TestSetSearch_BeforeLoadRejected(t *testing.T) {
	s := NewUsers(10, static(makeUsers(5)), nil)
	require.ErrorIs(t, s.SetSearch(FieldName, "x"), ErrNotLoaded)
}

func TestSetSearch_AdsUnsupported(t *testing.T) {
	s := NewAds(18, static([]models.Ad{{ID: "a"}}), nil)
	require.NoError(t, s.Load(context.Background()))
	require.ErrorIs(t, s.SetSearch(FieldName, "x"), ErrSearchUnsupported)
}

func TestSetSearch_PhoneSubset(t *testing.T) {
	users := []models.User{
		{ID: "1", PhoneNumber: "+966555100"},
		{ID: "2", PhoneNumber: "+966444100"},
		{ID: "3", PhoneNumber: "555"},
		{ID: "4", PhoneNumber: ""},
		{ID: "5", PhoneNumber: "1-555-0"},
	}
	s := NewUsers(2, static(users), nil)
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.SetSearch(FieldPhone, "555"))

	var got []string
	for p := 1; p <= s.State().TotalPages; p++ {
		page, err := s.Page(p)
		require.NoError(t, err)
		for _, u := range page {
			got = append(got, u.ID)
		}
	}

	var want []string
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.PhoneNumber), "555") {
			want = append(want, u.ID)
		}
	}
	assert.Equal(t, want, got)
	checkInvariants(t, s)
}

func TestSetSearch_Name(t *testing.T) {
	users := []models.User{
		{ID: "1", FirstName: "Ahmed", LastName: "Ali"},
		{ID: "2", FirstName: "Sara", LastName: "Ahmed"},
		{ID: "3", FirstName: "Omar", LastName: "Khan"},
	}
	s := NewUsers(10, static(users), nil)
	require.NoError(t, s.Load(context.Background()))

	tests := []struct {
		term string
		want []string
	}{
		{"AHMED", []string{"1", "2"}},
		{"  med a", []string{"1"}},
		{"khan", []string{"3"}},
		{"zzz", nil},
		{"", []string{"1", "2", "3"}},
		{"   ", []string{"1", "2", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			require.NoError(t, s.SetSearch(FieldName, tt.term))
			var got []string
			for _, u := range s.Current() {
				got = append(got, u.ID)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, s.State().CurrentPage)
			checkInvariants(t, s)
		})
	}
}

func TestSetSearch_Idempotent(t *testing.T) {
	s := NewUsers(7, static(makeUsers(40)), nil)
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.SetSearch(FieldPhone, "00"))
	once := snapshot(s)
	require.NoError(t, s.SetSearch(FieldPhone, "00"))
	twice := snapshot(s)

	assert.Equal(t, once, twice)
}

func snapshot[T models.Item](s *Store[T]) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.visible...)
}

func TestPage_Bounds(t *testing.T) {
	s := NewUsers(10, static(makeUsers(25)), nil)
	require.NoError(t, s.Load(context.Background()))
	require.NoError(t, s.GoTo(2))
	before := s.State()

	for _, n := range []int{0, -1, 4} {
		_, err := s.Page(n)
		require.ErrorIs(t, err, ErrPageOutOfRange)
		require.ErrorIs(t, s.GoTo(n), ErrPageOutOfRange)
		assert.Equal(t, before, s.State())
	}

	last, err := s.Page(3)
	require.NoError(t, err)
	assert.Len(t, last, 5)
	assert.Equal(t, "u020", last[0].ID)
}

func TestPage_ReturnsCopy(t *testing.T) {
	s := NewUsers(10, static(makeUsers(3)), nil)
	require.NoError(t, s.Load(context.Background()))

	p, err := s.Page(1)
	require.NoError(t, err)
	p[0].FirstName = "mutated"

	u, ok := s.Get("u000")
	require.True(t, ok)
	assert.Equal(t, "First0", u.FirstName)
}

func TestRemove_AbsentFromBothSets(t *testing.T) {
	s := NewUsers(5, static(makeUsers(12)), nil)
	require.NoError(t, s.Load(context.Background()))
	require.NoError(t, s.SetSearch(FieldName, "first1"))

	require.NoError(t, s.Remove("u010"))

	_, ok := s.Get("u010")
	assert.False(t, ok)
	for p := 1; p <= s.State().TotalPages; p++ {
		page, err := s.Page(p)
		require.NoError(t, err)
		for _, u := range page {
			assert.NotEqual(t, "u010", u.ID)
		}
	}
	require.NoError(t, s.ClearSearch())
	for _, u := range snapshot(s) {
		assert.NotEqual(t, "u010", u.ID)
	}
	checkInvariants(t, s)

	require.ErrorIs(t, s.Remove("u010"), ErrNotFound)
}

func TestRemove_NotVisibleStillRemovedFromAll(t *testing.T) {
	s := NewUsers(5, static(makeUsers(12)), nil)
	require.NoError(t, s.Load(context.Background()))
	require.NoError(t, s.SetSearch(FieldName, "first1"))

	require.NoError(t, s.Remove("u002"))
	all, _ := s.Counts()
	assert.Equal(t, 11, all)
	checkInvariants(t, s)
}

func TestDeleteSixOnLastPage_Reclamps(t *testing.T) {
	s := NewUsers(200, static(makeUsers(205)), nil)
	require.NoError(t, s.Load(context.Background()))
	require.Equal(t, 2, s.State().TotalPages)

	require.NoError(t, s.GoTo(2))
	page2 := s.Current()
	require.Len(t, page2, 5)

	victims := []string{"u000"}
	for _, u := range page2 {
		victims = append(victims, u.ID)
	}
	for _, id := range victims {
		require.NoError(t, s.Remove(id))
		checkInvariants(t, s)
	}

	assert.Equal(t, PageState{PageSize: 200, CurrentPage: 1, TotalPages: 1}, s.State())
	assert.Len(t, s.Current(), 199)
}

func TestRemove_LastItemKeepsOnePage(t *testing.T) {
	s := NewUsers(3, static(makeUsers(1)), nil)
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.Remove("u000"))
	assert.Equal(t, PageState{PageSize: 3, CurrentPage: 1, TotalPages: 1}, s.State())
	assert.Empty(t, s.Current())
}

func TestPatch_BothSets(t *testing.T) {
	s := NewUsers(5, static(makeUsers(6)), nil)
	require.NoError(t, s.Load(context.Background()))
	require.NoError(t, s.SetSearch(FieldPhone, "0003"))

	require.NoError(t, s.Patch("u003", func(u *models.User) { u.IsSpecial = !u.IsSpecial }))

	u, ok := s.Get("u003")
	require.True(t, ok)
	assert.True(t, u.IsSpecial)
	require.Len(t, s.Current(), 1)
	assert.True(t, s.Current()[0].IsSpecial)

	require.ErrorIs(t, s.Patch("nope", func(*models.User) {}), ErrNotFound)
}

func TestRemovePatch_EmptyIDRejected(t *testing.T) {
	users := []models.User{{FirstName: "A"}, {FirstName: "B"}, {ID: "u1"}}
	s := NewUsers(5, static(users), nil)
	require.NoError(t, s.Load(context.Background()))

	require.ErrorIs(t, s.Remove(""), ErrNotFound)
	require.ErrorIs(t, s.Patch("", func(u *models.User) { u.IsSpecial = true }), ErrNotFound)

	all, visible := s.Counts()
	assert.Equal(t, 3, all)
	assert.Equal(t, 3, visible)
	for _, u := range s.Current() {
		assert.False(t, u.IsSpecial)
	}
}

func TestPaginationWindow(t *testing.T) {
	tests := []struct {
		current, total int
		want           Window
	}{
		{1, 1, Window{Pages: []int{1}}},
		{1, 10, Window{Pages: []int{1, 2, 3}, HasNext: true}},
		{5, 10, Window{Pages: []int{3, 4, 5, 6, 7}, HasPrev: true, HasNext: true}},
		{10, 10, Window{Pages: []int{8, 9, 10}, HasPrev: true}},
		{2, 3, Window{Pages: []int{1, 2, 3}, HasPrev: true, HasNext: true}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.current, tt.total), func(t *testing.T) {
			assert.Equal(t, tt.want, pageWindow(tt.current, tt.total, 2))
		})
	}

	s := NewAds(18, static(make([]models.Ad, 40)), nil)
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, Window{Pages: []int{1, 2, 3}, HasNext: true}, s.PaginationWindow())
}

func TestParseField(t *testing.T) {
	f, err := ParseField(" Phone ")
	require.NoError(t, err)
	assert.Equal(t, FieldPhone, f)

	_, err = ParseField("email")
	require.ErrorIs(t, err, ErrUnknownField)
}

func TestNew_ClampsPageSize(t *testing.T) {
	s := NewUsers(0, static(makeUsers(3)), nil)
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, 3, s.State().TotalPages)
}

func TestInvariants_AcrossOperationSequence(t *testing.T) {
	s := NewUsers(4, static(makeUsers(30)), nil)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	ops := []func(){
		func() { _ = s.GoTo(8) },
		func() { _ = s.SetSearch(FieldName, "first2") },
		func() { _ = s.GoTo(3) },
		func() { _ = s.Remove("u020") },
		func() { _ = s.Remove("u021") },
		func() { _ = s.Remove("u022") },
		func() { _ = s.Remove("u023") },
		func() { _ = s.SetSearch(FieldPhone, "") },
		func() { _ = s.GoTo(7) },
		func() { _ = s.Remove("u029") },
		func() { _ = s.Load(ctx) },
	}
	for _, op := range ops {
		op()
		checkInvariants(t, s)
	}
}
