package collection

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/forsa-manager/internal/client/models"
	"github.com/dmitrijs2005/forsa-manager/internal/logging"
)

// Fetcher performs the single bounded request that fills a Store.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

type PageState struct {
	PageSize    int
	CurrentPage int
	TotalPages  int
}

type Store[T models.Item] struct {
	name     string
	pageSize int
	fetch    Fetcher[T]
	match    Matcher[T]
	log      logging.Logger

	mu      sync.Mutex
	all     []T
	visible []T
	query   Query
	current int
	total   int
	loaded  bool
	seq     uint64
}

// New builds an empty store. match may be nil, in which case SetSearch
// always fails with ErrSearchUnsupported.
func New[T models.Item](name string, pageSize int, fetch Fetcher[T], match Matcher[T], log logging.Logger) *Store[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Store[T]{
		name:     name,
		pageSize: pageSize,
		fetch:    fetch,
		match:    match,
		log:      log.With("collection", name),
		current:  1,
		total:    1,
	}
}

func NewUsers(pageSize int, fetch Fetcher[models.User], log logging.Logger) *Store[models.User] {
	return New("users", pageSize, fetch, MatchUser, log)
}

func NewAds(pageSize int, fetch Fetcher[models.Ad], log logging.Logger) *Store[models.Ad] {
	return New[models.Ad]("ads", pageSize, fetch, nil, log)
}

// Load replaces the whole collection with a fresh fetch and resets the
// search and the current page. On failure nothing changes.
func (s *Store[T]) Load(ctx context.Context) error {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	items, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		s.log.Debug(ctx, "discarding superseded load", "seq", seq, "latest", s.seq)
		return ErrStaleResponse
	}
	if err != nil {
		s.log.Warn(ctx, "load failed", "error", err)
		return fmt.Errorf("load %s: %w", s.name, err)
	}

	s.all = append([]T(nil), items...)
	s.visible = append([]T(nil), items...)
	s.query = Query{}
	s.loaded = true
	s.current = 1
	s.reclamp()

	s.log.Info(ctx, "loaded", "items", len(s.all), "pages", s.total)
	return nil
}

// SetSearch filters the visible items and returns to page 1. Running it
// twice with the same arguments gives the same result as running it once.
func (s *Store[T]) SetSearch(field Field, term string) error {
	if s.match == nil {
		return ErrSearchUnsupported
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return ErrNotLoaded
	}

	s.query = Query{Field: field, Term: strings.TrimSpace(term)}
	s.visible = s.filter()
	s.current = 1
	s.reclamp()
	return nil
}

// ClearSearch shows every item again.
func (s *Store[T]) ClearSearch() error {
	return s.SetSearch(FieldName, "")
}

func (s *Store[T]) filter() []T {
	term := strings.ToLower(s.query.Term)
	if term == "" {
		return append([]T(nil), s.all...)
	}
	out := make([]T, 0, len(s.all))
	for _, it := range s.all {
		if s.match(it, s.query.Field, term) {
			out = append(out, it)
		}
	}
	return out
}

// Page returns a copy of page n of the visible items.
func (s *Store[T]) Page(n int) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < 1 || n > s.total {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrPageOutOfRange, n, s.total)
	}
	return s.slice(n), nil
}

func (s *Store[T]) slice(n int) []T {
	lo := (n - 1) * s.pageSize
	if lo >= len(s.visible) {
		return []T{}
	}
	hi := min(lo+s.pageSize, len(s.visible))
	return append([]T(nil), s.visible[lo:hi]...)
}

// GoTo makes n the current page.
func (s *Store[T]) GoTo(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < 1 || n > s.total {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrPageOutOfRange, n, s.total)
	}
	s.current = n
	return nil
}

// Current returns the items of the current page.
func (s *Store[T]) Current() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slice(s.current)
}

func (s *Store[T]) State() PageState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PageState{PageSize: s.pageSize, CurrentPage: s.current, TotalPages: s.total}
}

func (s *Store[T]) Query() Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *Store[T]) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Counts reports the sizes of the full and visible sets.
func (s *Store[T]) Counts() (all, visible int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.all), len(s.visible)
}

// Get looks an item up by id among all items.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.all {
		if it.ItemID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Remove drops the item with id from both sets and reclamps.
func (s *Store[T]) Remove(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrNotFound)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all, found := removeID(s.all, id)
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.all = all
	s.visible, _ = removeID(s.visible, id)
	s.reclamp()
	return nil
}

// Patch applies fn to the item with id in both sets. Membership of the
// visible set is kept as is.
func (s *Store[T]) Patch(id string, fn func(*T)) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrNotFound)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.all {
		if s.all[i].ItemID() == id {
			fn(&s.all[i])
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	for i := range s.visible {
		if s.visible[i].ItemID() == id {
			fn(&s.visible[i])
		}
	}
	s.reclamp()
	return nil
}

func removeID[T models.Item](items []T, id string) ([]T, bool) {
	out := items[:0:0]
	found := false
	for _, it := range items {
		if it.ItemID() == id {
			found = true
			continue
		}
		out = append(out, it)
	}
	return out, found
}

func (s *Store[T]) reclamp() {
	s.total = max(1, (len(s.visible)+s.pageSize-1)/s.pageSize)
	s.current = min(max(s.current, 1), s.total)
}

// Window is the pagination control: page numbers within two of the
// current page, plus whether first/prev and next/last are usable.
type Window struct {
	Pages   []int
	HasPrev bool
	HasNext bool
}

func (s *Store[T]) PaginationWindow() Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pageWindow(s.current, s.total, 2)
}

func pageWindow(current, total, delta int) Window {
	lo := max(1, current-delta)
	hi := min(total, current+delta)
	pages := make([]int, 0, hi-lo+1)
	for p := lo; p <= hi; p++ {
		pages = append(pages, p)
	}
	return Window{Pages: pages, HasPrev: current > 1, HasNext: current < total}
}
