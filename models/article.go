// ABOUTME: Domain types for articles and their status metadata
// ABOUTME: Status flags are mutated both locally (user action) and remotely (sync)

package models

import "strings"

// Article represents one article row. Articles belong to exactly one
// feed and carry four independent status flags. IsTransientUnread is a
// client-only debounce copy of IsUnread and is never sent to the server.
type Article struct {
	ID             int64  `json:"id"`
	FeedID         int64  `json:"feed_id"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	ContentExcerpt string `json:"content_excerpt"`
	FlavorImageURI string `json:"flavor_image_uri"`
	Author         string `json:"author"`
	Link           string `json:"link"`
	Tags           string `json:"tags"`

	IsUnread          bool  `json:"unread"`
	IsTransientUnread bool  `json:"transient_unread"`
	IsStarred         bool  `json:"marked"`
	IsPublished       bool  `json:"published"`
	IsUpdated         bool  `json:"is_updated"`
	Score             int   `json:"score"`
	LastTimeUpdate    int64 `json:"last_time_update"`
}

// SetTags joins a tag list into the stored comma separated form.
func (a *Article) SetTags(tags []string) {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	a.Tags = strings.Join(cleaned, ", ")
}

// ArticleMetadata is the status-flag projection of an article, used by
// the status refresh stage to overwrite flags without touching content.
type ArticleMetadata struct {
	ID                int64 `json:"id"`
	IsUnread          bool  `json:"unread"`
	IsTransientUnread bool  `json:"transient_unread"`
	IsStarred         bool  `json:"marked"`
	IsPublished       bool  `json:"published"`
	IsUpdated         bool  `json:"is_updated"`
	LastTimeUpdate    int64 `json:"last_time_update"`
}

// MetadataFromArticle extracts the status metadata of an article.
func MetadataFromArticle(a *Article) ArticleMetadata {
	return ArticleMetadata{
		ID:                a.ID,
		IsUnread:          a.IsUnread,
		IsTransientUnread: a.IsTransientUnread,
		IsStarred:         a.IsStarred,
		IsPublished:       a.IsPublished,
		IsUpdated:         a.IsUpdated,
		LastTimeUpdate:    a.LastTimeUpdate,
	}
}
