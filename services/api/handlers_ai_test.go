package api

import "testing"

func TestBuildProviderRequest(t *testing.T) {
	tests := []struct {
		name         string
		provider     providerModel
		model        string
		wantEndpoint string
		wantModel    string
		wantHeader   string
		wantErr      bool
	}{
		{
			name: "openrouter defaults",
			provider: providerModel{
				Name:    "openrouter",
				APIKey:  "or-key",
				BaseURL: "https://openrouter.ai/api/v1",
			},
			wantEndpoint: "https://openrouter.ai/api/v1/chat/completions",
			wantModel:    "meta-llama/llama-3.1-8b-instruct:free",
			wantHeader:   "Authorization",
		},
		{
			name: "openai explicit model",
			provider: providerModel{
				Name:    "openai",
				APIKey:  "oa-key",
				BaseURL: "https://api.openai.com/v1",
			},
			model:        "gpt-4o",
			wantEndpoint: "https://api.openai.com/v1/chat/completions",
			wantModel:    "gpt-4o",
			wantHeader:   "Authorization",
		},
		{
			name: "anthropic uses messages endpoint",
			provider: providerModel{
				Name:    "anthropic",
				APIKey:  "an-key",
				BaseURL: "https://api.anthropic.com/v1",
			},
			wantEndpoint: "https://api.anthropic.com/v1/messages",
			wantModel:    "claude-3-haiku-20240307",
			wantHeader:   "x-api-key",
		},
		{
			name:     "unknown provider rejected",
			provider: providerModel{Name: "cohere"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildProviderRequest(tt.provider, "write a post", tt.model)
			if (err != nil) != tt.wantErr {
				t.Fatalf("buildProviderRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.Endpoint != tt.wantEndpoint {
				t.Fatalf("endpoint = %q, want %q", got.Endpoint, tt.wantEndpoint)
			}
			if got.Payload["model"] != tt.wantModel {
				t.Fatalf("model = %v, want %q", got.Payload["model"], tt.wantModel)
			}
			if _, ok := got.Headers[tt.wantHeader]; !ok {
				t.Fatalf("header %q missing, got %v", tt.wantHeader, got.Headers)
			}
			messages, ok := got.Payload["messages"].([]map[string]any)
			if !ok || len(messages) != 1 {
				t.Fatalf("payload messages malformed: %v", got.Payload["messages"])
			}
			if messages[0]["content"] != "write a post" {
				t.Fatalf("prompt = %v, want %q", messages[0]["content"], "write a post")
			}
		})
	}
}

func TestBuildProviderRequestAnthropicMaxTokens(t *testing.T) {
	got, err := buildProviderRequest(providerModel{
		Name:    "anthropic",
		BaseURL: "https://api.anthropic.com/v1",
	}, "hi", "")
	if err != nil {
		t.Fatalf("buildProviderRequest() error = %v", err)
	}
	if got.Payload["max_tokens"] != 1000 {
		t.Fatalf("max_tokens = %v, want 1000", got.Payload["max_tokens"])
	}
	if got.Headers["anthropic-version"] != "2023-06-01" {
		t.Fatalf("anthropic-version = %q, want 2023-06-01", got.Headers["anthropic-version"])
	}
}
