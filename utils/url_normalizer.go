// Package utils provides utility helpers for the feed-sync service
package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeImageURL makes an image URL from article markup absolute.
// Protocol-relative URLs (//cdn.example/a.png) are pinned to https.
func NormalizeImageURL(rawURL string) string {
	if strings.HasPrefix(rawURL, "//") {
		return "https:" + rawURL
	}
	return rawURL
}

// SiteRootURL reduces a page URL to the root of its site, the place
// favicon discovery starts from.
func SiteRootURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("url %q has no scheme or host", rawURL)
	}

	parsed.Path = "/"
	parsed.RawQuery = ""
	parsed.Fragment = ""
	parsed.User = nil

	return strings.TrimSuffix(parsed.String(), "/"), nil
}

// IsHTTPURL reports whether the URL is a fetchable http(s) URL.
func IsHTTPURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
