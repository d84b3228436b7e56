package events

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify builds a URL-safe slug from an event title.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "event-" + time.Now().UTC().Format("20060102150405")
	}
	return slug
}

// UniqueSlug appends a counter until the slug is free. excludeID skips the
// event being updated.
func UniqueSlug(db *gorm.DB, base string, excludeID uint) (string, error) {
	slug := base
	for counter := 1; ; counter++ {
		var count int64
		query := db.Model(&Event{}).Where("slug = ?", slug)
		if excludeID != 0 {
			query = query.Where("id != ?", excludeID)
		}
		if err := query.Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}
