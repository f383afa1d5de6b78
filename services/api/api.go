package api

import (
	"context"
	"errors"
	"time"

	"stitchcms/pkg/mailer"
	"stitchcms/pkg/render"
)

const (
	defaultAccessTokenTTL  = 30 * time.Minute
	defaultRefreshTokenTTL = 7 * 24 * time.Hour

	// Public RSVP endpoints carry no auth; rate limiting is the only guard.
	publicRateLimit  = 30
	publicRateWindow = time.Minute
	defaultListLimit = 50
	maxListLimit     = 100
)

// Config controls runtime behaviour for the API handlers.
type Config struct {
	FrontendURL     string
	JWTSigningKey   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	AllowedOrigins  []string
}

// API wires dependencies and configuration for HTTP handlers.
type API struct {
	store    *Store
	config   Config
	mailer   mailer.Sender
	renderer *render.Engine
	invites  *InvitationService
	catalog  []CatalogModule

	// userLookup resolves the bearer token's user; tests substitute
	// their own implementation.
	userLookup func(ctx context.Context, username string) (userModel, error)
}

// New initialises the API layer with sane defaults applied to the provided configuration.
func New(store *Store, sender mailer.Sender, renderer *render.Engine, cfg Config) (*API, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if store.ORM == nil {
		return nil, errors.New("store ORM is required")
	}
	if cfg.JWTSigningKey == "" {
		return nil, errors.New("jwt signing key is required")
	}

	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = defaultAccessTokenTTL
	}
	if cfg.RefreshTokenTTL <= 0 {
		cfg.RefreshTokenTTL = defaultRefreshTokenTTL
	}

	catalog, err := loadCatalog()
	if err != nil {
		return nil, err
	}

	a := &API{
		store:    store,
		config:   cfg,
		mailer:   sender,
		renderer: renderer,
		invites:  NewInvitationService(store),
		catalog:  catalog,
	}
	a.userLookup = a.lookupUserByName
	return a, nil
}
