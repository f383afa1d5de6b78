package render

import "time"

// formatDate matches the long-form date style used in the outbound emails,
// e.g. "December 01, 2025 at 06:30 PM". Accepts both time.Time values and
// optional *time.Time fields.
func formatDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format("January 02, 2006 at 03:04 PM")
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format("January 02, 2006 at 03:04 PM")
	default:
		return ""
	}
}
