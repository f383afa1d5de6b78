package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

var errContentNotFound = errors.New("content not found")

type contentCreateRequest struct {
	Title           string `json:"title"`
	ContentType     string `json:"content_type"`
	Body            string `json:"body"`
	Excerpt         string `json:"excerpt"`
	Status          string `json:"status"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords"`
	AIGenerated     bool   `json:"ai_generated"`
}

type contentUpdateRequest struct {
	Title           *string `json:"title"`
	ContentType     *string `json:"content_type"`
	Body            *string `json:"body"`
	Excerpt         *string `json:"excerpt"`
	Status          *string `json:"status"`
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
	MetaKeywords    *string `json:"meta_keywords"`
}

func (a *API) handleCreateContent(w http.ResponseWriter, r *http.Request) {
	var req contentCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, errors.New("title is required"))
		return
	}
	if req.ContentType == "" {
		req.ContentType = "page"
	}
	if req.Status == "" {
		req.Status = contentStatusDraft
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	orm := a.store.ORM.WithContext(ctx)

	slug, err := uniqueSlug(ctx, orm, req.Title, 0)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	model := contentModel{
		Title:           req.Title,
		Slug:            slug,
		ContentType:     req.ContentType,
		Body:            req.Body,
		Excerpt:         req.Excerpt,
		Status:          req.Status,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		MetaKeywords:    req.MetaKeywords,
		AIGenerated:     req.AIGenerated,
	}
	if req.Status == contentStatusPublished {
		now := time.Now().UTC()
		model.PublishedAt = &now
	}
	if user, ok := userFrom(r.Context()); ok {
		model.AuthorID = &user.ID
	}

	if err := orm.Create(&model).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":    "Content created successfully",
		"content_id": model.ID,
		"slug":       model.Slug,
	})
}

func (a *API) handleListContent(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)

	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	q := a.store.ORM.WithContext(ctx).Model(&contentModel{})

	if t := r.URL.Query().Get("content_type"); t != "" {
		q = q.Where("content_type = ?", t)
	}
	if s := r.URL.Query().Get("status"); s != "" {
		q = q.Where("status = ?", s)
	}
	if search := r.URL.Query().Get("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("title ILIKE ? OR body ILIKE ? OR excerpt ILIKE ?", like, like, like)
	}

	var rows []contentModel
	if err := q.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]Content, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toAPI())
	}
	respondJSON(w, http.StatusOK, out)
}

func (a *API) handleGetContent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var model contentModel
	err = a.store.ORM.WithContext(ctx).First(&model, "id = ?", id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, errContentNotFound)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, model.toAPI())
}

func (a *API) handleUpdateContent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	var req contentUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	orm := a.store.ORM.WithContext(ctx)

	var model contentModel
	err = orm.First(&model, "id = ?", id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, errContentNotFound)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	updates := map[string]any{}
	if req.Title != nil && *req.Title != model.Title {
		updates["title"] = *req.Title
		slug, err := uniqueSlug(ctx, orm, *req.Title, model.ID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err)
			return
		}
		updates["slug"] = slug
	}
	if req.ContentType != nil {
		updates["content_type"] = *req.ContentType
	}
	if req.Body != nil {
		updates["body"] = *req.Body
	}
	if req.Excerpt != nil {
		updates["excerpt"] = *req.Excerpt
	}
	if req.Status != nil {
		updates["status"] = *req.Status
		if *req.Status == contentStatusPublished && model.PublishedAt == nil {
			updates["published_at"] = time.Now().UTC()
		}
	}
	if req.MetaTitle != nil {
		updates["meta_title"] = *req.MetaTitle
	}
	if req.MetaDescription != nil {
		updates["meta_description"] = *req.MetaDescription
	}
	if req.MetaKeywords != nil {
		updates["meta_keywords"] = *req.MetaKeywords
	}

	if len(updates) > 0 {
		if err := orm.Model(&model).Updates(updates).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err)
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{"message": "Content updated successfully"})
}

func (a *API) handleDeleteContent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	res := a.store.ORM.WithContext(ctx).Delete(&contentModel{}, "id = ?", id)
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, errContentNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": "Content deleted successfully"})
}

func (a *API) handleContentAISuggestions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	orm := a.store.ORM.WithContext(ctx)

	var model contentModel
	err = orm.First(&model, "id = ?", id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, errContentNotFound)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	suggestions := map[string]any{
		"seo_title":        "Optimized: " + model.Title,
		"meta_description": "AI-generated description for " + model.Title,
		"keywords":         []string{"cms", "content", model.ContentType},
		"readability":      "good",
		"generated_at":     time.Now().UTC().Format(time.RFC3339),
	}
	if err := orm.Model(&model).Update("ai_suggestions", toJSONMap(suggestions)).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"content_id":  model.ID,
		"suggestions": suggestions,
	})
}
