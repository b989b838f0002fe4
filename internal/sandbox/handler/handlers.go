package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/forsa-manager/internal/logging"
	"github.com/dmitrijs2005/forsa-manager/internal/sandbox/auth"
	"github.com/dmitrijs2005/forsa-manager/internal/sandbox/market"
	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	market *market.Market
	secret []byte
	ttl    time.Duration
	log    logging.Logger
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}

// bodyTooLarge answers 413 when err comes from a body over its RequestSize
// limit.
func bodyTooLarge(w http.ResponseWriter, err error) bool {
	var mbe *http.MaxBytesError
	if !errors.As(err, &mbe) {
		return false
	}
	writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
	return true
}

// marketError maps a market error onto a response.
func (h *Handlers) marketError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, market.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, market.ErrAlreadyDecided):
		writeError(w, http.StatusConflict, "Advertisement is already approved")
	case errors.Is(err, market.ErrEmptyContent):
		writeError(w, http.StatusBadRequest, "Image content is required")
	default:
		h.log.Error(r.Context(), "request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

type loginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type loginResponse struct {
	Token             string `json:"token"`
	UserID            string `json:"userId"`
	UserName          string `json:"userName"`
	UserPhone         string `json:"userPhone"`
	UserProfileImage  string `json:"userProfileImage"`
	UserAccountNumber string `json:"userAccountNumber"`
	UserIsVerified    bool   `json:"userIsVerified"`
	UserIsAdmin       bool   `json:"userIsAdmin"`
}

// Login answers 200 for any valid account. Whether a non-admin may use the
// console is left to the console.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	err := decode(r, &req)
	if bodyTooLarge(w, err) {
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	if req.PhoneNumber == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Phone number and password are required")
		return
	}

	u, err := h.market.Authenticate(req.PhoneNumber, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid phone number or password")
		return
	}

	token, err := auth.GenerateToken(u.ID, u.IsAdmin, h.secret, h.ttl)
	if err != nil {
		h.log.Error(r.Context(), "token generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:             token,
		UserID:            u.ID,
		UserName:          u.Name(),
		UserPhone:         u.PhoneNumber,
		UserProfileImage:  u.ProfileImage,
		UserAccountNumber: u.AccountNumber,
		UserIsVerified:    u.IsVerified,
		UserIsAdmin:       u.IsAdmin,
	})
}

type userIDRequest struct {
	UserID    string `json:"userId"`
	IsSpecial *bool  `json:"isSpecial,omitempty"`
}

// DeleteAccount lets an admin delete anyone and a member only themselves.
func (h *Handlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	var req userIDRequest
	err := decode(r, &req)
	if bodyTooLarge(w, err) {
		return
	}
	if err != nil || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	claims, _ := ClaimsFrom(r.Context())
	if !claims.IsAdmin && claims.UserID != req.UserID {
		writeError(w, http.StatusForbidden, "You can only delete your own account")
		return
	}
	if err := h.market.DeleteUser(req.UserID); err != nil {
		h.marketError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Account deleted"})
}

func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.market.Counts())
}

// ListUsers answers {users: [...]}; page and limit default to 1 and all.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, err1 := queryInt(r, "page", 1)
	limit, err2 := queryInt(r, "limit", 0)
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "page and limit must be integers")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": h.market.Users(page, limit)})
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req userIDRequest
	err := decode(r, &req)
	if bodyTooLarge(w, err) {
		return
	}
	if err != nil || req.UserID == "" || req.IsSpecial == nil {
		writeError(w, http.StatusBadRequest, "userId and isSpecial are required")
		return
	}
	if err := h.market.SetSpecial(req.UserID, *req.IsSpecial); err != nil {
		h.marketError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "User updated"})
}

// PendingAds answers a bare array.
func (h *Handlers) PendingAds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.market.PendingAds())
}

func (h *Handlers) ApproveAd(w http.ResponseWriter, r *http.Request) {
	if err := h.market.Approve(chi.URLParam(r, "id")); err != nil {
		h.marketError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Ad approved"})
}

func (h *Handlers) RejectAd(w http.ResponseWriter, r *http.Request) {
	if err := h.market.Reject(chi.URLParam(r, "id")); err != nil {
		h.marketError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Ad rejected"})
}

func (h *Handlers) ListImages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.market.Images())
}

type imageRequest struct {
	Content string `json:"content"`
}

func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	var req imageRequest
	err := decode(r, &req)
	if bodyTooLarge(w, err) {
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	img, err := h.market.AddImage(req.Content)
	if err != nil {
		h.marketError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, img)
}

func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	if err := h.market.DeleteImage(chi.URLParam(r, "id")); err != nil {
		h.marketError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Image deleted"})
}
