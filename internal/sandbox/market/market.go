// Package market is the sandbox's in-memory marketplace: users, ads
// awaiting approval and the application image gallery.
package market

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/forsa-manager/internal/sandbox/auth"
	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrBadCredentials = errors.New("invalid phone number or password")
	ErrAlreadyDecided = errors.New("ad is already approved")
	ErrEmptyContent   = errors.New("image content is empty")
)

type User struct {
	ID            string `json:"_id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	PhoneNumber   string `json:"phoneNumber"`
	ProfileImage  string `json:"profileImage,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	IsVerified    bool   `json:"isVerified"`
	IsSpecial     bool   `json:"isSpecial"`
	IsAdmin       bool   `json:"isAdmin"`

	passwordHash string
}

func (u User) Name() string {
	return u.FirstName + " " + u.LastName
}

type Ad struct {
	ID              string `json:"_id"`
	AdTitle         string `json:"adTitle"`
	Price           int    `json:"price"`
	CurrencyName    string `json:"currencyName"`
	Pic1            string `json:"pic1,omitempty"`
	Pic2            string `json:"pic2,omitempty"`
	Pic3            string `json:"pic3,omitempty"`
	Pic4            string `json:"pic4,omitempty"`
	Pic5            string `json:"pic5,omitempty"`
	Pic6            string `json:"pic6,omitempty"`
	UserName        string `json:"userName"`
	UserPhone       string `json:"userPhone"`
	CategoryName    string `json:"categoryName"`
	SubCategoryName string `json:"subCategoryName"`
	CityName        string `json:"cityName"`
	RegionName      string `json:"regionName"`
	Description     string `json:"description"`
	CreateDate      string `json:"createDate"`
	Approved        bool   `json:"isApproved"`
}

type Image struct {
	ID      string `json:"_id"`
	Content string `json:"content"`
}

type Counts struct {
	UserCount           int `json:"userCount"`
	NotApprovedAdsCount int `json:"notApprovedAdsCount"`
	ApprovedAdsCount    int `json:"approvedAdsCount"`
}

// Market is safe for concurrent use. Slices keep insertion order.
type Market struct {
	mu     sync.RWMutex
	users  []User
	ads    []Ad
	images []Image
	now    func() time.Time
}

func New() *Market {
	return &Market{now: time.Now}
}

// AddUser stores u with a bcrypt hash of password and returns the stored
// record. An empty ID is replaced by a fresh one. Users added without a
// password cannot log in.
func (m *Market) AddUser(u User, password string) (User, error) {
	if password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return User{}, fmt.Errorf("hash password: %w", err)
		}
		u.passwordHash = hash
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append(m.users, u)
	return u, nil
}

func (m *Market) AddAd(a Ad) Ad {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreateDate == "" {
		a.CreateDate = m.now().UTC().Format(time.RFC3339)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.ads = append(m.ads, a)
	return a
}

// Authenticate checks a phone number and password pair.
func (m *Market) Authenticate(phone, password string) (User, error) {
	m.mu.RLock()
	i := slices.IndexFunc(m.users, func(u User) bool { return u.PhoneNumber == phone })
	var u User
	if i >= 0 {
		u = m.users[i]
	}
	m.mu.RUnlock()

	if i < 0 || u.passwordHash == "" || !auth.CheckPassword(u.passwordHash, password) {
		return User{}, ErrBadCredentials
	}
	return u, nil
}

func (m *Market) User(id string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
}

// Users returns page p (1-based) of at most limit users. A limit below 1
// returns everyone.
func (m *Market) Users(page, limit int) []User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit < 1 {
		return slices.Clone(m.users)
	}
	page = max(page, 1)
	lo := min((page-1)*limit, len(m.users))
	hi := min(lo+limit, len(m.users))
	return slices.Clone(m.users[lo:hi])
}

func (m *Market) SetSpecial(id string, special bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].IsSpecial = special
			return nil
		}
	}
	return fmt.Errorf("user %s: %w", id, ErrNotFound)
}

// DeleteUser removes the user and every ad they posted.
func (m *Market) DeleteUser(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.users, func(u User) bool { return u.ID == id })
	if i < 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	phone := m.users[i].PhoneNumber
	m.users = slices.Delete(m.users, i, i+1)
	m.ads = slices.DeleteFunc(m.ads, func(a Ad) bool { return a.UserPhone == phone })
	return nil
}

func (m *Market) PendingAds() []Ad {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Ad, 0, len(m.ads))
	for _, a := range m.ads {
		if !a.Approved {
			out = append(out, a)
		}
	}
	return out
}

func (m *Market) Approve(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.ads {
		if m.ads[i].ID != id {
			continue
		}
		if m.ads[i].Approved {
			return ErrAlreadyDecided
		}
		m.ads[i].Approved = true
		return nil
	}
	return fmt.Errorf("ad %s: %w", id, ErrNotFound)
}

// Reject deletes a pending ad.
func (m *Market) Reject(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.ads, func(a Ad) bool { return a.ID == id })
	if i < 0 {
		return fmt.Errorf("ad %s: %w", id, ErrNotFound)
	}
	if m.ads[i].Approved {
		return ErrAlreadyDecided
	}
	m.ads = slices.Delete(m.ads, i, i+1)
	return nil
}

func (m *Market) Counts() Counts {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c := Counts{UserCount: len(m.users)}
	for _, a := range m.ads {
		if a.Approved {
			c.ApprovedAdsCount++
		} else {
			c.NotApprovedAdsCount++
		}
	}
	return c
}

func (m *Market) Images() []Image {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.images)
}

func (m *Market) AddImage(content string) (Image, error) {
	if content == "" {
		return Image{}, ErrEmptyContent
	}
	img := Image{ID: uuid.NewString(), Content: content}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.images = append(m.images, img)
	return img, nil
}

func (m *Market) DeleteImage(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.images, func(img Image) bool { return img.ID == id })
	if i < 0 {
		return fmt.Errorf("image %s: %w", id, ErrNotFound)
	}
	m.images = slices.Delete(m.images, i, i+1)
	return nil
}
