// ABOUTME: Ephemeral server information read once per sync pass
// ABOUTME: Gates which API endpoints are safe to call, never persisted

package models

// ServerInfo describes the remote Tiny Tiny RSS instance.
type ServerInfo struct {
	APILevel int    `json:"api_level"`
	Version  string `json:"version"`
	IconsURL string `json:"icons_url"`
	NumFeeds int    `json:"num_feeds"`
}
