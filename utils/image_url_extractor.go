// ABOUTME: Extracts image URLs from article HTML for cache pre-warming
// ABOUTME: Collects img sources in document order, skipping data URIs

package utils

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractImageURLs returns the absolute URLs of every <img> in the HTML
// fragment, in document order. Protocol-relative sources are normalized
// to https; inline data URIs and empty sources are skipped.
func ExtractImageURLs(htmlContent string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil
	}

	var urls []string
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok {
			return
		}
		src = strings.TrimSpace(src)
		if src == "" || strings.HasPrefix(src, "data:") {
			return
		}
		src = NormalizeImageURL(src)
		if IsHTTPURL(src) {
			urls = append(urls, src)
		}
	})
	return urls
}
