// Package handler serves the marketplace REST API used by the admin
// console, backed by an in-memory market.Market.
package handler

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/forsa-manager/internal/logging"
	"github.com/dmitrijs2005/forsa-manager/internal/sandbox/market"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

const (
	maxBodyBytes      = 64 << 10
	maxImageBodyBytes = 8 << 20
)

type Options struct {
	Logger    logging.Logger
	SecretKey []byte
	TokenTTL  time.Duration
	// BasePath prefixes every route, e.g. "/api". Empty mounts at the root.
	BasePath string
}

// NewRouter builds the API.
//
//	POST   /user/login
//	DELETE /user/delete-account          bearer
//	GET    /manager/dashboard-data       bearer, admin
//	GET    /manager/users-list           bearer, admin
//	POST   /manager/update-user          bearer, admin
//	GET    /manager/notApproved-ads      bearer, admin
//	PUT    /manager/approve-ad/{id}      bearer, admin
//	DELETE /manager/reject-ad/{id}       bearer, admin
//	GET    /manager/images-mgm           bearer, admin
//	POST   /manager/images-mgm           bearer, admin
//	DELETE /manager/images-mgm/{id}      bearer, admin
func NewRouter(m *market.Market, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	h := &Handlers{market: m, secret: opts.SecretKey, ttl: opts.TokenTTL, log: opts.Logger}

	root := chi.NewRouter()
	root.Use(
		chiMiddleware.Recoverer,
		RequestID,
		Logging(opts.Logger),
		chiMiddleware.AllowContentType("application/json"),
	)

	small := chiMiddleware.RequestSize(maxBodyBytes)

	routes := func(r chi.Router) {
		r.With(small).Post("/user/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(opts.SecretKey))
			r.With(small).Delete("/user/delete-account", h.DeleteAccount)

			r.Route("/manager", func(r chi.Router) {
				r.Use(RequireAdmin)
				r.Get("/dashboard-data", h.Dashboard)
				r.Get("/users-list", h.ListUsers)
				r.With(small).Post("/update-user", h.UpdateUser)
				r.Get("/notApproved-ads", h.PendingAds)
				r.Put("/approve-ad/{id}", h.ApproveAd)
				r.Delete("/reject-ad/{id}", h.RejectAd)
				r.Get("/images-mgm", h.ListImages)
				r.With(chiMiddleware.RequestSize(maxImageBodyBytes)).Post("/images-mgm", h.UploadImage)
				r.Delete("/images-mgm/{id}", h.DeleteImage)
			})
		})
	}

	if opts.BasePath != "" {
		root.Route(opts.BasePath, routes)
	} else {
		routes(root)
	}
	return root
}
