package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

var errModuleNotFound = errors.New("module not found")

type moduleInstallRequest struct {
	Description   string            `json:"description"`
	Version       string            `json:"version"`
	Configuration map[string]any    `json:"configuration"`
	APIKeys       map[string]string `json:"api_keys"`
}

type moduleUpdateRequest struct {
	Description   *string           `json:"description"`
	IsActive      *bool             `json:"is_active"`
	Configuration map[string]any    `json:"configuration"`
	APIKeys       map[string]string `json:"api_keys"`
}

func (a *API) handleAvailableModules(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	respondJSON(w, http.StatusOK, filterCatalog(a.catalog, category))
}

func (a *API) handleInstalledModules(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var rows []moduleModel
	if err := a.store.ORM.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]Module, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toAPI())
	}
	respondJSON(w, http.StatusOK, out)
}

func (a *API) handleInstallModule(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	entry, ok := findCatalogModule(a.catalog, name)
	if !ok {
		respondError(w, http.StatusNotFound, errors.New("module not available"))
		return
	}

	var req moduleInstallRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	orm := a.store.ORM.WithContext(ctx)

	var existing int64
	if err := orm.Model(&moduleModel{}).Where("name = ?", name).Count(&existing).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	if existing > 0 {
		respondError(w, http.StatusBadRequest, errors.New("module already installed"))
		return
	}

	description := req.Description
	if description == "" {
		description = entry.Description
	}
	version := req.Version
	if version == "" {
		version = entry.Version
	}

	keys := map[string]any{}
	for k, v := range req.APIKeys {
		keys[k] = v
	}

	// Modules start inactive until configured.
	model := moduleModel{
		Name:          name,
		Description:   description,
		Version:       version,
		IsActive:      false,
		Configuration: toJSONMap(req.Configuration),
		APIKeys:       toJSONMap(keys),
	}
	if err := orm.Create(&model).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":   fmt.Sprintf("Module %s installed successfully", name),
		"module_id": model.ID,
	})
}

func (a *API) loadModule(w http.ResponseWriter, r *http.Request) (moduleModel, bool) {
	var model moduleModel

	id, err := pathID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return model, false
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	err = a.store.ORM.WithContext(ctx).First(&model, "id = ?", id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, errModuleNotFound)
		return model, false
	case err != nil:
		respondError(w, http.StatusInternalServerError, err)
		return model, false
	}
	return model, true
}

func (a *API) handleUpdateModule(w http.ResponseWriter, r *http.Request) {
	var req moduleUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	model, ok := a.loadModule(w, r)
	if !ok {
		return
	}

	updates := map[string]any{}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Configuration != nil {
		updates["configuration"] = toJSONMap(req.Configuration)
	}
	if req.APIKeys != nil {
		keys := map[string]any{}
		for k, v := range req.APIKeys {
			keys[k] = v
		}
		updates["api_keys"] = toJSONMap(keys)
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	if len(updates) > 0 {
		if err := a.store.ORM.WithContext(ctx).Model(&model).Updates(updates).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err)
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": "Module updated successfully"})
}

func (a *API) handleActivateModule(w http.ResponseWriter, r *http.Request) {
	model, ok := a.loadModule(w, r)
	if !ok {
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	if err := a.store.ORM.WithContext(ctx).Model(&model).Update("is_active", true).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Module %s activated successfully", model.Name),
	})
}

func (a *API) handleDeactivateModule(w http.ResponseWriter, r *http.Request) {
	model, ok := a.loadModule(w, r)
	if !ok {
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	if err := a.store.ORM.WithContext(ctx).Model(&model).Update("is_active", false).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Module %s deactivated successfully", model.Name),
	})
}

func (a *API) handleUninstallModule(w http.ResponseWriter, r *http.Request) {
	model, ok := a.loadModule(w, r)
	if !ok {
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	if err := a.store.ORM.WithContext(ctx).Delete(&model).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Module %s uninstalled successfully", model.Name),
	})
}
