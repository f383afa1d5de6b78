package api

import "strings"

// Keys whose values are masked before leaving the API.
var sensitiveKeySubstrings = []string{
	"api_key",
	"apikey",
	"secret",
	"token",
	"password",
	"key",
}

func sensitiveKey(key string) bool {
	lowered := strings.ToLower(key)
	for _, k := range sensitiveKeySubstrings {
		if strings.Contains(lowered, k) {
			return true
		}
	}
	return false
}

// maskValue hides a secret, keeping the last four characters of long values.
func maskValue(v string) string {
	if v == "" {
		return v
	}
	if len(v) <= 8 {
		return "****"
	}
	return "****" + v[len(v)-4:]
}

// maskSecrets walks a decoded JSON value and masks anything reached through a
// sensitive-looking key. Lists inherit the key hint of their parent.
func maskSecrets(v any, keyHint string) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = maskSecrets(item, k)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = maskSecrets(item, keyHint)
		}
		return out
	case string:
		if sensitiveKey(keyHint) {
			return maskValue(val)
		}
		return val
	default:
		if sensitiveKey(keyHint) && v != nil {
			return "****"
		}
		return v
	}
}
