package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

var errSettingNotFound = errors.New("setting not found")

// SiteConfig is the typed site configuration assembled from the
// site_settings rows, merged over these defaults.
type SiteConfig struct {
	SiteTitle       string         `json:"site_title"`
	SiteDescription string         `json:"site_description"`
	SiteLogo        *string        `json:"site_logo"`
	SiteFavicon     *string        `json:"site_favicon"`
	FooterText      string         `json:"footer_text"`
	ContactEmail    string         `json:"contact_email"`
	SocialLinks     map[string]any `json:"social_links"`
	ThemeSettings   map[string]any `json:"theme_settings"`
}

func defaultSiteConfig() SiteConfig {
	return SiteConfig{
		SiteTitle:       "My CMS Site",
		SiteDescription: "A powerful CMS built with Stitch",
		FooterText:      "© 2024 My CMS Site. All rights reserved.",
		ContactEmail:    "admin@example.com",
		SocialLinks:     map[string]any{},
		ThemeSettings: map[string]any{
			"primary_color":     "#3b82f6",
			"secondary_color":   "#64748b",
			"font_family":       "Inter",
			"dark_mode_enabled": true,
		},
	}
}

// siteConfigEntries flattens a SiteConfig to (key, value) pairs in a
// stable order for persistence.
func siteConfigEntries(cfg SiteConfig) []struct {
	Key   string
	Value any
} {
	return []struct {
		Key   string
		Value any
	}{
		{"site_title", cfg.SiteTitle},
		{"site_description", cfg.SiteDescription},
		{"site_logo", cfg.SiteLogo},
		{"site_favicon", cfg.SiteFavicon},
		{"footer_text", cfg.FooterText},
		{"contact_email", cfg.ContactEmail},
		{"social_links", cfg.SocialLinks},
		{"theme_settings", cfg.ThemeSettings},
	}
}

func (a *API) handleListSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var rows []settingModel
	if err := a.store.ORM.WithContext(ctx).Order("key").Find(&rows).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]Setting, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toAPI())
	}
	respondJSON(w, http.StatusOK, out)
}

func (a *API) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var row settingModel
	err := a.store.ORM.WithContext(ctx).Where("key = ?", key).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, errSettingNotFound)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, row.toAPI())
}

func (a *API) handleCreateSetting(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.Key == "" {
		respondError(w, http.StatusBadRequest, errors.New("key is required"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	orm := a.store.ORM.WithContext(ctx)

	var existing int64
	if err := orm.Model(&settingModel{}).Where("key = ?", req.Key).Count(&existing).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	if existing > 0 {
		respondError(w, http.StatusBadRequest, errors.New("setting already exists"))
		return
	}

	value, err := encodeSettingValue(req.Value)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	row := settingModel{Key: req.Key, Value: value, Description: req.Description}
	if err := orm.Create(&row).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, row.toAPI())
}

func (a *API) handleUpdateSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req struct {
		Value       any     `json:"value"`
		Description *string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	orm := a.store.ORM.WithContext(ctx)

	var row settingModel
	err := orm.Where("key = ?", key).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, errSettingNotFound)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	value, err := encodeSettingValue(req.Value)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	updates := map[string]any{"value": value}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if err := orm.Model(&row).Updates(updates).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	if err := orm.Where("key = ?", key).First(&row).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, row.toAPI())
}

func (a *API) handleDeleteSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	res := a.store.ORM.WithContext(ctx).Where("key = ?", key).Delete(&settingModel{})
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, errSettingNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": "Setting deleted successfully"})
}

func (a *API) handleGetSiteConfig(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var rows []settingModel
	if err := a.store.ORM.WithContext(ctx).Find(&rows).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	cfg := defaultSiteConfig()
	for _, row := range rows {
		value := decodeSettingValue(row.Value)
		switch row.Key {
		case "site_title":
			if s, ok := value.(string); ok {
				cfg.SiteTitle = s
			}
		case "site_description":
			if s, ok := value.(string); ok {
				cfg.SiteDescription = s
			}
		case "site_logo":
			if s, ok := value.(string); ok {
				cfg.SiteLogo = &s
			}
		case "site_favicon":
			if s, ok := value.(string); ok {
				cfg.SiteFavicon = &s
			}
		case "footer_text":
			if s, ok := value.(string); ok {
				cfg.FooterText = s
			}
		case "contact_email":
			if s, ok := value.(string); ok {
				cfg.ContactEmail = s
			}
		case "social_links":
			if m, ok := value.(map[string]any); ok {
				cfg.SocialLinks = m
			}
		case "theme_settings":
			if m, ok := value.(map[string]any); ok {
				cfg.ThemeSettings = m
			}
		}
	}
	respondJSON(w, http.StatusOK, cfg)
}

func (a *API) handleUpdateSiteConfig(w http.ResponseWriter, r *http.Request) {
	var cfg SiteConfig
	if err := decodeJSON(r, &cfg); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	orm := a.store.ORM.WithContext(ctx)

	for _, entry := range siteConfigEntries(cfg) {
		value, err := encodeSettingValue(entry.Value)
		if err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}

		var row settingModel
		err = orm.Where("key = ?", entry.Key).First(&row).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = settingModel{
				Key:         entry.Key,
				Value:       value,
				Description: fmt.Sprintf("Site configuration: %s", entry.Key),
			}
			if err := orm.Create(&row).Error; err != nil {
				respondError(w, http.StatusInternalServerError, err)
				return
			}
		case err != nil:
			respondError(w, http.StatusInternalServerError, err)
			return
		default:
			if err := orm.Model(&row).Update("value", value).Error; err != nil {
				respondError(w, http.StatusInternalServerError, err)
				return
			}
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{"message": "Site configuration updated successfully"})
}

func (a *API) handleInitializeDefaults(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	orm := a.store.ORM.WithContext(ctx)

	for _, entry := range siteConfigEntries(defaultSiteConfig()) {
		var existing int64
		if err := orm.Model(&settingModel{}).Where("key = ?", entry.Key).Count(&existing).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err)
			return
		}
		if existing > 0 {
			continue
		}

		value, err := encodeSettingValue(entry.Value)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err)
			return
		}
		row := settingModel{
			Key:         entry.Key,
			Value:       value,
			Description: fmt.Sprintf("Default site configuration: %s", entry.Key),
		}
		if err := orm.Create(&row).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err)
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{"message": "Default settings initialized successfully"})
}
