package api

import (
	"reflect"
	"testing"
)

func TestMaskValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty passes through",
			input: "",
			want:  "",
		},
		{
			name:  "short value fully masked",
			input: "abc123",
			want:  "****",
		},
		{
			name:  "long value keeps last four",
			input: "sk-0123456789abcdef",
			want:  "****cdef",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maskValue(tt.input); got != tt.want {
				t.Fatalf("maskValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMaskSecrets(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		keyHint string
		want    any
	}{
		{
			name:    "plain string untouched",
			input:   "hello",
			keyHint: "site_title",
			want:    "hello",
		},
		{
			name:    "sensitive hint masks string",
			input:   "sk-0123456789abcdef",
			keyHint: "openai_api_key",
			want:    "****cdef",
		},
		{
			name: "nested map masks by own keys",
			input: map[string]any{
				"tracking_id": "UA-1",
				"secret":      "hunter200000",
			},
			keyHint: "configuration",
			want: map[string]any{
				"tracking_id": "UA-1",
				"secret":      "****0000",
			},
		},
		{
			name:    "list inherits parent hint",
			input:   []any{"tok-aaaabbbbcccc", "short"},
			keyHint: "tokens",
			want:    []any{"****cccc", "****"},
		},
		{
			name:    "non-string sensitive value blanked",
			input:   42,
			keyHint: "password",
			want:    "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := maskSecrets(tt.input, tt.keyHint)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("maskSecrets() = %v, want %v", got, tt.want)
			}
		})
	}
}
