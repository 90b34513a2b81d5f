// ABOUTME: Domain types for feeds and categories mirrored from the RSS server
// ABOUTME: Negative category ids are server-side virtual groupings

package models

// Feed represents one subscribed feed. IconURL is resolved locally by
// the icon sync stage and is never overwritten by a feed upsert.
type Feed struct {
	ID             int64  `json:"id"`
	CategoryID     int64  `json:"cat_id"`
	Title          string `json:"title"`
	DisplayTitle   string `json:"display_title"`
	URL            string `json:"feed_url"`
	UnreadCount    int    `json:"unread_count"`
	IsSubscribed   bool   `json:"is_subscribed"`
	IconURL        string `json:"feed_icon_url"`
	LastTimeUpdate int64  `json:"last_time_update"`
}

// EffectiveTitle returns the display title when the user renamed the feed.
func (f *Feed) EffectiveTitle() string {
	if f.DisplayTitle != "" {
		return f.DisplayTitle
	}
	return f.Title
}

// Category represents one feed category.
type Category struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	UnreadCount int    `json:"unread_count"`
}

// IsVirtual reports whether the category is a server-side virtual one,
// such as special feeds or labels.
func (c *Category) IsVirtual() bool {
	return c.ID < 0
}
