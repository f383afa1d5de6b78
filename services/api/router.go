package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stitchcms/pkg/db"
)

// Routes constructs the chi router containing all API endpoints.
func (a *API) Routes() (http.Handler, error) {
	if a == nil {
		return nil, errors.New("nil api")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	origins := a.config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", a.handleHealthz)
	r.Get("/readyz", a.handleReadyz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/token", a.handleToken)
			r.Post("/refresh", a.handleRefresh)
			r.With(a.requireAuth).Get("/me", a.handleMe)
		})

		r.Route("/events", func(r chi.Router) {
			// Self-service RSVP endpoints are public; rate limited per IP.
			r.Group(func(r chi.Router) {
				r.Use(httprate.LimitByIP(publicRateLimit, publicRateWindow))
				r.Post("/{id}/rsvps", a.handleCreateRSVP)
				r.Put("/rsvps/{rsvp_id}", a.handleUpdateRSVP)
			})

			r.Group(func(r chi.Router) {
				r.Use(a.requireAuth)
				r.Get("/", a.handleListEvents)
				r.Post("/", a.handleCreateEvent)
				r.Get("/{id}", a.handleGetEvent)
				r.Put("/{id}", a.handleUpdateEvent)
				r.Get("/{id}/analytics", a.handleEventAnalytics)
				r.Post("/{id}/send-invitations", a.handleEventSendInvitations)
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(a.requireAuth)
			r.Get("/templates", a.handleListTemplates)
			r.Get("/{id}/communications", a.handleListCommunications)
			r.Get("/{id}/notification-stats", a.handleNotificationStats)

			r.Group(func(r chi.Router) {
				r.Use(requireRole("admin"))
				r.Post("/{id}/send-invitations", a.handleNotifySendInvitations)
				r.Post("/{id}/send-reminders", a.handleSendReminders)
				r.Post("/test-email", a.handleTestEmail)
			})
		})

		r.Route("/content", func(r chi.Router) {
			r.Use(a.requireAuth)
			r.Get("/", a.handleListContent)
			r.Post("/", a.handleCreateContent)
			r.Get("/{id}", a.handleGetContent)
			r.Put("/{id}", a.handleUpdateContent)
			r.Delete("/{id}", a.handleDeleteContent)
			r.Post("/{id}/ai-suggestions", a.handleContentAISuggestions)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Use(a.requireAuth)
			r.Get("/", a.handleListSettings)
			r.Get("/config/site", a.handleGetSiteConfig)
			r.Get("/{key}", a.handleGetSetting)

			r.Group(func(r chi.Router) {
				r.Use(requireRole("admin"))
				r.Post("/", a.handleCreateSetting)
				r.Put("/{key}", a.handleUpdateSetting)
				r.Delete("/{key}", a.handleDeleteSetting)
				r.Post("/config/site", a.handleUpdateSiteConfig)
				r.Post("/initialize-defaults", a.handleInitializeDefaults)
			})
		})

		r.Route("/modules", func(r chi.Router) {
			r.Use(a.requireAuth)
			r.Get("/available", a.handleAvailableModules)
			r.Get("/installed", a.handleInstalledModules)
			r.Post("/install/{name}", a.handleInstallModule)
			r.Put("/{id}", a.handleUpdateModule)
			r.Post("/{id}/activate", a.handleActivateModule)
			r.Post("/{id}/deactivate", a.handleDeactivateModule)
			r.Delete("/{id}", a.handleUninstallModule)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(a.requireAuth)
			r.Get("/stats", a.handleDashboardStats)
			r.Get("/quick-actions", a.handleQuickActions)
			r.Get("/analytics", a.handleDashboardAnalytics)
		})

		r.Route("/ai", func(r chi.Router) {
			r.Use(a.requireAuth)
			r.Get("/providers", a.handleListProviders)
			r.With(requireRole("admin")).Post("/providers", a.handleConfigureProvider)
			r.Post("/generate-content", a.handleGenerateContent)
		})
	})

	return r, nil
}

func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (a *API) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := db.Ping(r.Context(), a.store.DB); err != nil {
		respondError(w, http.StatusServiceUnavailable, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}
