package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sgshs/eventportal/internal/middleware"
	"github.com/sgshs/eventportal/internal/session"
)

// NewRouter constructs the portal's HTTP handler.
//
// Routes:
//
//	POST /api/auth/phone            → request a one-time code (public)
//	GET  /api/event                 → event summary (public)
//	POST /api/auth/verify           → verify the code (session token)
//	GET  /api/me                    → session info, flips welcome flag
//	POST /api/auth/logout           → back to anonymous
//	GET  /api/registrations         → list entries
//	POST /api/registrations         → submit an entry
//	GET  /api/registrations/export  → CSV download
//	GET  /api/announcements         → list notices
//	GET  /api/gallery               → list image URLs
//	POST /api/admin/login           → admin gate
//	POST /api/admin/logout          → drop admin flag
//	POST /api/announcements         → post a notice (admin)
//	POST /api/gallery               → upload an image (admin, multipart)
//	GET  /gallery/*                 → static image files
//
// The JSON API enforces Content-Type: application/json; the gallery
// upload route is multipart and sits outside that check.
func NewRouter(
	authHandler *AuthHandler,
	adminHandler *AdminHandler,
	registrationHandler *RegistrationHandler,
	announcementHandler *AnnouncementHandler,
	galleryHandler *GalleryHandler,
	eventHandler *EventHandler,
	sessions *session.Manager,
	galleryDir string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			// Only allow requests with Content-Type: application/json
			r.Use(chiMiddleware.AllowContentType("application/json"))

			// Public endpoints
			r.Post("/auth/phone", authHandler.RequestCode)
			r.Get("/event", eventHandler.Info)

			// Requires a live session token (any stage)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSession(sessions))

				r.Post("/auth/verify", authHandler.Verify)

				// Requires a verified login
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAuthenticated)

					r.Get("/me", authHandler.Me)
					r.Post("/auth/logout", authHandler.Logout)

					r.Get("/registrations", registrationHandler.List)
					r.Post("/registrations", registrationHandler.Create)
					r.Get("/registrations/export", registrationHandler.Export)

					r.Get("/announcements", announcementHandler.List)
					r.Get("/gallery", galleryHandler.List)

					r.Post("/admin/login", adminHandler.Login)
					r.Post("/admin/logout", adminHandler.Logout)

					// Privileged writes
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAdmin)
						r.Post("/announcements", announcementHandler.Post)
					})
				})
			})
		})

		// Multipart upload, outside the JSON content-type check
		r.With(
			middleware.RequireSession(sessions),
			middleware.RequireAuthenticated,
			middleware.RequireAdmin,
		).Post("/gallery", galleryHandler.Upload)
	})

	// Static gallery images; a missing file is a plain 404
	r.Handle("/gallery/*", http.StripPrefix("/gallery/", http.FileServer(http.Dir(galleryDir))))

	return r
}
