package api

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple title",
			input: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "punctuation collapsed",
			input: "What's New in 2025!?",
			want:  "what-s-new-in-2025",
		},
		{
			name:  "leading and trailing noise",
			input: "  --Launch Day--  ",
			want:  "launch-day",
		},
		{
			name:  "upper case and unicode stripped",
			input: "Café MENU",
			want:  "caf-menu",
		},
		{
			name:  "empty falls back",
			input: "!!!",
			want:  "untitled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := slugify(tt.input); got != tt.want {
				t.Fatalf("slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
