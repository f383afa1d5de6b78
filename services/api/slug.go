package api

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var slugStripPattern = regexp.MustCompile(`[^a-z0-9]+`)

// slugify lowercases the title and collapses every non-alphanumeric
// run into a single hyphen.
func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStripPattern.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "untitled"
	}
	return slug
}

// uniqueSlug appends -2, -3, ... until the slug is unused. excludeID
// lets an update keep its own slug.
func uniqueSlug(ctx context.Context, orm *gorm.DB, title string, excludeID int64) (string, error) {
	base := slugify(title)
	slug := base
	for n := 2; ; n++ {
		var count int64
		q := orm.WithContext(ctx).Model(&contentModel{}).Where("slug = ?", slug)
		if excludeID > 0 {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}
