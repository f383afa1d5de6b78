package api

import (
	"net/http"
	"strconv"
	"time"

	"stitchcms/pkg/db"
)

func (a *API) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	type countsRow struct {
		TotalContent     int `db:"total_content"`
		PublishedContent int `db:"published_content"`
		DraftContent     int `db:"draft_content"`
		TotalUsers       int `db:"total_users"`
		ActiveModules    int `db:"active_modules"`
	}
	var counts countsRow
	err := db.Get(r.Context(), a.store.DB, &counts, `
SELECT (SELECT COUNT(*) FROM content)                              AS total_content,
       (SELECT COUNT(*) FROM content WHERE status = 'published')   AS published_content,
       (SELECT COUNT(*) FROM content WHERE status = 'draft')       AS draft_content,
       (SELECT COUNT(*) FROM users)                                AS total_users,
       (SELECT COUNT(*) FROM modules WHERE is_active)              AS active_modules`)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var recent []contentModel
	if err := a.store.ORM.WithContext(ctx).Order("updated_at DESC").Limit(10).Find(&recent).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	activity := make([]map[string]any, 0, len(recent))
	for _, c := range recent {
		action := "created"
		if c.UpdatedAt.After(c.CreatedAt) {
			action = "updated"
		}
		activity = append(activity, map[string]any{
			"id":        c.ID,
			"title":     c.Title,
			"type":      "content",
			"action":    action,
			"timestamp": c.UpdatedAt,
			"status":    c.Status,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"total_content":     counts.TotalContent,
		"published_content": counts.PublishedContent,
		"draft_content":     counts.DraftContent,
		"total_users":       counts.TotalUsers,
		"active_modules":    counts.ActiveModules,
		"recent_activity":   activity,
	})
}

func (a *API) handleQuickActions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, []map[string]any{
		{
			"id":          "create_article",
			"title":       "Create Article",
			"description": "Write a new article with AI assistance",
			"icon":        "article",
			"url":         "/content/create?type=article",
		},
		{
			"id":          "create_page",
			"title":       "Create Page",
			"description": "Build a new page for your site",
			"icon":        "page",
			"url":         "/content/create?type=page",
		},
		{
			"id":          "manage_modules",
			"title":       "Manage Modules",
			"description": "Install or configure modules",
			"icon":        "modules",
			"url":         "/modules",
		},
		{
			"id":          "seo_analysis",
			"title":       "SEO Analysis",
			"description": "Analyze and improve your site's SEO",
			"icon":        "seo",
			"url":         "/seo/analyze",
		},
	})
}

func (a *API) handleDashboardAnalytics(w http.ResponseWriter, r *http.Request) {
	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			days = v
		}
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	type dayRow struct {
		Day   time.Time `db:"day"`
		Count int       `db:"count"`
	}
	var timeline []dayRow
	err := db.Select(r.Context(), a.store.DB, &timeline, `
SELECT created_at::date AS day, COUNT(*) AS count
FROM content
WHERE created_at >= $1
GROUP BY created_at::date
ORDER BY day`, since)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	type typeRow struct {
		ContentType string `db:"content_type"`
		Count       int    `db:"count"`
	}
	var byType []typeRow
	err = db.Select(r.Context(), a.store.DB, &byType, `
SELECT content_type, COUNT(*) AS count
FROM content
GROUP BY content_type`)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	total := 0
	points := make([]map[string]any, 0, len(timeline))
	for _, p := range timeline {
		total += p.Count
		points = append(points, map[string]any{
			"date":  p.Day.Format("2006-01-02"),
			"count": p.Count,
		})
	}

	var popular *string
	best := 0
	types := make([]map[string]any, 0, len(byType))
	for _, t := range byType {
		if t.Count > best {
			best = t.Count
			name := t.ContentType
			popular = &name
		}
		types = append(types, map[string]any{
			"type":  t.ContentType,
			"count": t.Count,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"period_days":      days,
		"content_timeline": points,
		"content_by_type":  types,
		"summary": map[string]any{
			"total_content_created": total,
			"most_popular_type":     popular,
		},
	})
}
