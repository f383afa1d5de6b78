package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"gorm.io/gorm"
)

var errNoActiveProvider = errors.New("no active AI provider configured")

// ProviderSelector resolves which configured AI provider a generation
// request should use. Selection is a read over stored config, never an
// in-process flag.
type ProviderSelector interface {
	Active(ctx context.Context) (providerModel, error)
}

type storedProviderSelector struct {
	orm *gorm.DB
}

func (s storedProviderSelector) Active(ctx context.Context) (providerModel, error) {
	var provider providerModel
	err := s.orm.WithContext(ctx).Where("is_active").First(&provider).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return provider, errNoActiveProvider
	}
	return provider, err
}

type providerRequest struct {
	Endpoint string
	Headers  map[string]string
	Payload  map[string]any
}

// buildProviderRequest shapes the outbound generation call for the
// given provider. Each provider has its own auth headers, default
// model and endpoint path.
func buildProviderRequest(provider providerModel, prompt, model string) (providerRequest, error) {
	messages := []map[string]any{{"role": "user", "content": prompt}}

	switch provider.Name {
	case "openrouter":
		if model == "" {
			model = "meta-llama/llama-3.1-8b-instruct:free"
		}
		return providerRequest{
			Endpoint: provider.BaseURL + "/chat/completions",
			Headers: map[string]string{
				"Authorization": "Bearer " + provider.APIKey,
				"HTTP-Referer":  "https://your-cms-domain.com",
				"X-Title":       "Stitch CMS",
			},
			Payload: map[string]any{"model": model, "messages": messages},
		}, nil
	case "openai":
		if model == "" {
			model = "gpt-3.5-turbo"
		}
		return providerRequest{
			Endpoint: provider.BaseURL + "/chat/completions",
			Headers: map[string]string{
				"Authorization": "Bearer " + provider.APIKey,
				"Content-Type":  "application/json",
			},
			Payload: map[string]any{"model": model, "messages": messages},
		}, nil
	case "anthropic":
		if model == "" {
			model = "claude-3-haiku-20240307"
		}
		return providerRequest{
			Endpoint: provider.BaseURL + "/messages",
			Headers: map[string]string{
				"x-api-key":         provider.APIKey,
				"Content-Type":      "application/json",
				"anthropic-version": "2023-06-01",
			},
			Payload: map[string]any{"model": model, "max_tokens": 1000, "messages": messages},
		}, nil
	default:
		return providerRequest{}, fmt.Errorf("unsupported AI provider: %s", provider.Name)
	}
}

func (a *API) handleGenerateContent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
		Model  string `json:"model"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.Prompt == "" {
		respondError(w, http.StatusBadRequest, errors.New("prompt is required"))
		return
	}

	selector := storedProviderSelector{orm: a.store.ORM}
	provider, err := selector.Active(r.Context())
	switch {
	case errors.Is(err, errNoActiveProvider):
		respondError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	call, err := buildProviderRequest(provider, req.Prompt, req.Model)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	body, err := json.Marshal(call.Payload)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	httpReq, err := http.NewRequestWithContext(r.Context(), http.MethodPost, call.Endpoint, bytes.NewReader(body))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	for k, v := range call.Headers {
		httpReq.Header.Set(k, v)
	}

	// Generation can run long; the upstream call carries no timeout.
	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Errorf("AI generation failed: %w", err))
		return
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	if resp.StatusCode != http.StatusOK {
		respondError(w, resp.StatusCode, fmt.Errorf("AI provider error: %s", raw))
		return
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage map[string]any `json:"usage"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	content := ""
	if len(parsed.Choices) > 0 {
		content = parsed.Choices[0].Message.Content
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"content":  content,
		"provider": provider.Name,
		"model":    req.Model,
		"usage":    parsed.Usage,
	})
}

func (a *API) handleListProviders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var rows []providerModel
	if err := a.store.ORM.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]AIProviderInfo, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toAPI())
	}
	respondJSON(w, http.StatusOK, out)
}

func (a *API) handleConfigureProvider(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string         `json:"name"`
		DisplayName   string         `json:"display_name"`
		APIKey        string         `json:"api_key"`
		BaseURL       string         `json:"base_url"`
		IsActive      bool           `json:"is_active"`
		Configuration map[string]any `json:"configuration"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	orm := a.store.ORM.WithContext(ctx)

	var provider providerModel
	err := orm.Where("name = ?", req.Name).First(&provider).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		provider = providerModel{
			Name:          req.Name,
			DisplayName:   req.DisplayName,
			APIKey:        req.APIKey,
			BaseURL:       req.BaseURL,
			IsActive:      req.IsActive,
			Configuration: toJSONMap(req.Configuration),
		}
		if err := orm.Create(&provider).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err)
			return
		}
	case err != nil:
		respondError(w, http.StatusInternalServerError, err)
		return
	default:
		updates := map[string]any{
			"base_url":      req.BaseURL,
			"is_active":     req.IsActive,
			"configuration": toJSONMap(req.Configuration),
		}
		if req.APIKey != "" {
			updates["api_key"] = req.APIKey
		}
		if req.DisplayName != "" {
			updates["display_name"] = req.DisplayName
		}
		if err := orm.Model(&provider).Updates(updates).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err)
			return
		}
	}

	// Exactly one provider may be active at a time.
	if req.IsActive {
		err := orm.Model(&providerModel{}).
			Where("id <> ?", provider.ID).
			Update("is_active", false).Error
		if err != nil {
			respondError(w, http.StatusInternalServerError, err)
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":     "AI provider configured successfully",
		"provider_id": provider.ID,
	})
}
