// ABOUTME: Tiny Tiny RSS JSON API wire structures - Driver Layer
// ABOUTME: Request envelope and typed response payloads for each API operation

package driver

import (
	"encoding/json"

	"feed-sync/models"
)

// apiEnvelope is the response envelope every API operation returns.
// Status is 0 on success; on failure Content holds {"error": "<code>"}.
type apiEnvelope struct {
	Seq     int             `json:"seq"`
	Status  int             `json:"status"`
	Content json.RawMessage `json:"content"`
}

// apiErrorContent is the content payload of a failed call.
type apiErrorContent struct {
	Error string `json:"error"`
}

// loginContent is the content payload of the login operation.
type loginContent struct {
	SessionID string `json:"session_id"`
	APILevel  int    `json:"api_level"`
}

// apiLevelContent is the content payload of getApiLevel.
type apiLevelContent struct {
	Level int `json:"level"`
}

// versionContent is the content payload of getVersion.
type versionContent struct {
	Version string `json:"version"`
}

// configContent is the content payload of getConfig.
type configContent struct {
	IconsDir        string `json:"icons_dir"`
	IconsURL        string `json:"icons_url"`
	DaemonIsRunning bool   `json:"daemon_is_running"`
	NumFeeds        int    `json:"num_feeds"`
}

// wireFeed is one entry of the getFeeds response.
type wireFeed struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	DisplayTitle string `json:"display_title"`
	FeedURL      string `json:"feed_url"`
	Unread       int    `json:"unread"`
	HasIcon      bool   `json:"has_icon"`
	CategoryID   int64  `json:"cat_id"`
	LastUpdated  int64  `json:"last_updated"`
	OrderID      int    `json:"order_id"`
}

func (w wireFeed) toModel() models.Feed {
	return models.Feed{
		ID:             w.ID,
		CategoryID:     w.CategoryID,
		Title:          w.Title,
		DisplayTitle:   w.DisplayTitle,
		URL:            w.FeedURL,
		UnreadCount:    w.Unread,
		IsSubscribed:   true,
		LastTimeUpdate: w.LastUpdated,
	}
}

// wireCategory is one entry of the getCategories response.
type wireCategory struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Unread  int    `json:"unread"`
	OrderID int    `json:"order_id"`
}

func (w wireCategory) toModel() models.Category {
	return models.Category{
		ID:          w.ID,
		Title:       w.Title,
		UnreadCount: w.Unread,
	}
}

// wireHeadline is one entry of the getHeadlines response.
type wireHeadline struct {
	ID          int64    `json:"id"`
	GUID        string   `json:"guid"`
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Content     string   `json:"content"`
	Excerpt     string   `json:"excerpt"`
	Author      string   `json:"author"`
	Unread      bool     `json:"unread"`
	Marked      bool     `json:"marked"`
	Published   bool     `json:"published"`
	Score       int      `json:"score"`
	IsUpdated   bool     `json:"is_updated"`
	Tags        []string `json:"tags"`
	FeedID      *int64   `json:"feed_id"`
	FeedTitle   string   `json:"feed_title"`
	LastUpdated int64    `json:"updated"`
	FlavorImage string   `json:"flavor_image,omitempty"`
}

func (w wireHeadline) toModel() *models.Article {
	var feedID int64
	if w.FeedID != nil {
		feedID = *w.FeedID
	}
	article := &models.Article{
		ID:                w.ID,
		FeedID:            feedID,
		Title:             w.Title,
		Content:           w.Content,
		ContentExcerpt:    w.Excerpt,
		Author:            w.Author,
		Link:              w.Link,
		IsUnread:          w.Unread,
		IsTransientUnread: w.Unread,
		IsStarred:         w.Marked,
		IsPublished:       w.Published,
		IsUpdated:         w.IsUpdated,
		Score:             w.Score,
		LastTimeUpdate:    w.LastUpdated,
	}
	article.SetTags(w.Tags)
	return article
}

// updateArticleContent is the content payload of updateArticle.
type updateArticleContent struct {
	Status  string `json:"status"`
	Updated int    `json:"updated"`
}

// subscribeContent is the content payload of subscribeToFeed.
// Result codes: 0 feed already exists, 1 feed added, 2 invalid URL,
// 3 no feeds found at URL, 4 multiple feeds found, 5 download error,
// 6 invalid content at URL.
type subscribeContent struct {
	Status struct {
		Code int `json:"code"`
	} `json:"status"`
}

// unsubscribeContent is the content payload of unsubscribeFeed.
type unsubscribeContent struct {
	Status string `json:"status"`
}

// mapErrorCode translates a server error string into a typed API error code.
func mapErrorCode(remote string) models.APIErrorCode {
	switch remote {
	case "LOGIN_ERROR":
		return models.APIErrorLoginFailed
	case "NOT_LOGGED_IN":
		return models.APIErrorNotLoggedIn
	case "API_DISABLED":
		return models.APIErrorDisabled
	case "INCORRECT_USAGE":
		return models.APIErrorIncorrectUsage
	case "FEED_NOT_FOUND":
		return models.APIErrorFeedNotFound
	case "UNKNOWN_METHOD":
		return models.APIErrorUnknownMethod
	default:
		return models.APIErrorUnknown
	}
}
